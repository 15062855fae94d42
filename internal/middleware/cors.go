package middleware

import (
	"net/http"
	"strings"

	"survey-go/internal/config"

	"github.com/gin-gonic/gin"
)

// CORS 跨域中间件；表单页面和后端可能不同源
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && originAllowed(cfg.Origins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			// 下载报告时前端需要读取文件名
			c.Header("Access-Control-Expose-Headers", "Content-Disposition")

			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
			if methods != "" {
				c.Header("Access-Control-Allow-Methods", methods)
			}
			if headers != "" {
				c.Header("Access-Control-Allow-Headers", headers)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origins []string, origin string) bool {
	for _, o := range origins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
