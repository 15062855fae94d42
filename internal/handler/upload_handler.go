package handler

import (
	"errors"
	"net/http"

	"survey-go/internal/dto"
	"survey-go/internal/service"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// UploadHandler 客户端PDF上传处理器
type UploadHandler struct {
	uploadService *service.UploadService
	maxBodyBytes  int64
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(uploadService *service.UploadService, maxBodyBytes int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxBodyBytes:  maxBodyBytes,
	}
}

// UploadPDF 保存上传的PDF并记录为附件
func (h *UploadHandler) UploadPDF(c *gin.Context) {
	limitBody(c, h.maxBodyBytes)

	var req dto.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.APIErrorResponse(c, http.StatusBadRequest, "缺少必要參數", err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.APIErrorResponse(c, http.StatusBadRequest, "缺少必要參數", err.Error())
		return
	}
	if req.SurveyID == "" || req.ResponseID == "" {
		utils.APIErrorResponse(c, http.StatusBadRequest, "缺少必要參數", "surveyId 和 responseId 不能为空")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.APIErrorResponse(c, http.StatusBadRequest, "讀取文件失敗", err.Error())
		return
	}
	defer src.Close()

	result, err := h.uploadService.Upload(req.SurveyID, req.ResponseID, src)
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, service.ErrInvalidUpload):
			utils.APIErrorResponse(c, http.StatusBadRequest, "上傳失敗", err.Error())
		case errors.Is(err, service.ErrResponseNotFound):
			utils.APIErrorResponse(c, http.StatusNotFound, "找不到回覆", err.Error())
		default:
			utils.APIErrorResponse(c, http.StatusInternalServerError, "上傳失敗", err.Error())
		}
		return
	}

	message := "PDF 已成功上傳"
	if !result.Mirrored {
		message = "PDF 已成功上傳，未同步到共享目錄"
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Success:  true,
		FileID:   result.File.ID,
		FileURL:  result.File.FileURL,
		Mirrored: result.Mirrored,
		Message:  message,
	})
}
