package handler

import (
	"encoding/json"
	"errors"

	"survey-go/internal/dto"
	"survey-go/internal/service"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// SurveyHandler 问卷处理器
type SurveyHandler struct {
	surveyService *service.SurveyService
}

// NewSurveyHandler 创建问卷处理器
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// GetSurvey 按UUID或代码获取问卷定义
// @Summary 获取问卷定义
// @Tags 问卷
// @Produce json
// @Param codeOrId path string true "问卷UUID或代码"
// @Success 200 {object} dto.SurveyResponse
// @Router /api/surveys/{codeOrId} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	survey, err := h.surveyService.Get(c.Param("codeOrId"))
	if errors.Is(err, service.ErrSurveyNotFound) {
		utils.APIErrorResponse(c, 404, "找不到問卷", "")
		return
	}
	if err != nil {
		utils.APIErrorResponse(c, 500, "讀取問卷失敗", err.Error())
		return
	}

	c.JSON(200, dto.SurveyResponse{
		Success:    true,
		ID:         survey.ID,
		Code:       survey.Code,
		Title:      survey.Title,
		JSONSchema: json.RawMessage(survey.JSONSchema),
	})
}

// CreateSurvey 创建问卷
// @Summary 创建问卷
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSurveyRequest true "问卷定义"
// @Success 200 {object} utils.Response{data=dto.SurveySummary}
// @Router /api/admin/surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req dto.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	survey, err := h.surveyService.Create(&req)
	switch {
	case errors.Is(err, service.ErrInvalidSchema):
		utils.BadRequest(c, err.Error())
		return
	case errors.Is(err, service.ErrSurveyCodeExists):
		utils.Conflict(c, "问卷代码已存在")
		return
	case err != nil:
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "问卷已创建", service.ToSurveySummary(survey))
}

// ListSurveys 获取问卷列表
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	var q dto.PaginationQuery
	_ = c.ShouldBindQuery(&q)
	q.Normalize()

	result, err := h.surveyService.List(q.Page, q.PerPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, result.Items, result.Total, result.Page, result.PerPage)
}
