package dto

import "encoding/json"

// CreateSurveyRequest 创建问卷请求
type CreateSurveyRequest struct {
	Code       string          `json:"code" binding:"required,surveycode"`
	Title      string          `json:"title" binding:"required,max=255"`
	JSONSchema json.RawMessage `json:"jsonSchema" binding:"required"`
}

// SurveyResponse 问卷定义，前端据此渲染表单
type SurveyResponse struct {
	Success    bool            `json:"success"`
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Title      string          `json:"title"`
	JSONSchema json.RawMessage `json:"jsonSchema"`
}

// SurveySummary 问卷列表项
type SurveySummary struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
