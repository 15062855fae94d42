package handler

import (
	"errors"
	"net/http"

	"survey-go/internal/dto"
	"survey-go/internal/service"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 回覆审阅处理器
type AdminHandler struct {
	responseService *service.ResponseService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(responseService *service.ResponseService) *AdminHandler {
	return &AdminHandler{
		responseService: responseService,
	}
}

// ListResponses 分页获取问卷的回覆
func (h *AdminHandler) ListResponses(c *gin.Context) {
	var q dto.PaginationQuery
	_ = c.ShouldBindQuery(&q)
	q.Normalize()

	result, err := h.responseService.List(c.Param("id"), q.Page, q.PerPage)
	if errors.Is(err, service.ErrSurveyNotFound) {
		utils.NotFound(c, "问卷不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, result.Items, result.Total, result.Page, result.PerPage)
}

// ExportResponses 导出问卷的全部回覆
func (h *AdminHandler) ExportResponses(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	result, err := h.responseService.Export(c.Param("id"), q.Format)
	if errors.Is(err, service.ErrSurveyNotFound) {
		utils.NotFound(c, "问卷不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", contentDisposition("attachment", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// GetResponse 获取回覆详情
func (h *AdminHandler) GetResponse(c *gin.Context) {
	detail, err := h.responseService.Get(c.Param("id"))
	if errors.Is(err, service.ErrResponseNotFound) {
		utils.NotFound(c, "回覆不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, detail)
}

// PreviewResponse 重新渲染报告HTML，不生成PDF
func (h *AdminHandler) PreviewResponse(c *gin.Context) {
	html, err := h.responseService.Preview(c.Param("id"))
	switch {
	case errors.Is(err, service.ErrResponseNotFound), errors.Is(err, service.ErrSurveyNotFound):
		utils.NotFound(c, "回覆不存在")
		return
	case err != nil:
		utils.InternalError(c, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
