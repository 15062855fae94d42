package handler

import (
	"errors"
	"net/http"
	"os"

	"survey-go/internal/service"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// FileHandler 上传目录的文件服务
type FileHandler struct {
	fileService *service.FileService
}

// NewFileHandler 创建文件处理器
func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// ServeFile 输出文件，越界 403，不存在 404
func (h *FileHandler) ServeFile(c *gin.Context) {
	file, err := h.fileService.Resolve(c.Param("path"))
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		utils.APIErrorResponse(c, http.StatusForbidden, "禁止訪問", "")
		return
	case err != nil:
		utils.APIErrorResponse(c, http.StatusNotFound, "找不到文件", "")
		return
	}

	f, err := os.Open(file.Path)
	if err != nil {
		utils.APIErrorResponse(c, http.StatusNotFound, "找不到文件", "")
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		utils.APIErrorResponse(c, http.StatusInternalServerError, "讀取文件失敗", "")
		return
	}

	c.Header("Content-Type", file.MimeType)
	c.Header("Content-Disposition", contentDisposition("inline", file.Name))
	c.Header("Cache-Control", "public, max-age=86400")
	http.ServeContent(c.Writer, c.Request, file.Name, stat.ModTime(), f)
}
