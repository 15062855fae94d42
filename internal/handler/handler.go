package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// contentDisposition 同时提供 ASCII 回退文件名和 RFC 5987 的 UTF-8 文件名
func contentDisposition(disposition, filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r > 0x7e || r < 0x20 || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return disposition + `; filename="` + fallback + `"; filename*=UTF-8''` + url.PathEscape(filename)
}

// limitBody 限制请求体大小，maxBytes <= 0 时不限制
func limitBody(c *gin.Context, maxBytes int64) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
}
