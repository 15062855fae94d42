package handler

import (
	"errors"
	"net/http"

	"survey-go/internal/dto"
	"survey-go/internal/report"
	"survey-go/internal/service"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// SubmissionHandler 签名提交处理器
type SubmissionHandler struct {
	submissionService *service.SubmissionService
	maxBodyBytes      int64
}

// NewSubmissionHandler 创建提交处理器
func NewSubmissionHandler(submissionService *service.SubmissionService, maxBodyBytes int64) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		maxBodyBytes:      maxBodyBytes,
	}
}

// GeneratePDF 渲染报告、生成PDF并保存回覆
// @Summary 提交问卷并生成PDF
// @Tags 问卷
// @Accept multipart/form-data
// @Produce json
// @Param signature1 formData string false "业者签名 data URI"
// @Param signature2 formData string false "检查人员签名 data URI"
// @Param surveyData formData string true "答案JSON"
// @Param surveyUUID formData string true "问卷UUID"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} utils.APIError
// @Router /api/generate-pdf [post]
func (h *SubmissionHandler) GeneratePDF(c *gin.Context) {
	limitBody(c, h.maxBodyBytes)

	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.APIErrorResponse(c, http.StatusBadRequest, "無效的請求", err.Error())
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), service.SubmissionInput{
		SurveyID:           req.SurveyUUID,
		SurveyData:         req.SurveyData,
		OperatorSignature:  req.Signature1,
		InspectorSignature: req.Signature2,
	})
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, service.ErrInvalidSubmission):
			utils.APIErrorResponse(c, http.StatusBadRequest, "缺少必要參數", err.Error())
		case errors.Is(err, report.ErrInvalidAnswers):
			utils.APIErrorResponse(c, http.StatusBadRequest, "無效的調查數據格式", err.Error())
		case errors.Is(err, service.ErrSurveyNotFound):
			utils.APIErrorResponse(c, http.StatusNotFound, "找不到問卷", req.SurveyUUID)
		default:
			utils.APIErrorResponse(c, http.StatusInternalServerError, "生成 PDF 失敗", err.Error())
		}
		return
	}

	resp := dto.SubmitResponse{
		Success: true,
		FileURL: result.FileURL,
		Message: "PDF 已成功生成",
	}
	if result.Persisted {
		resp.ResponseID = result.ResponseID
		resp.FileID = result.FileID
	} else {
		resp.Message = "PDF 已成功生成，但保存記錄失敗: " + result.PersistError.Error()
	}

	c.JSON(http.StatusOK, resp)
}
