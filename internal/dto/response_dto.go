package dto

import "encoding/json"

// 导出格式
const (
	ExportFormatJSONL = "jsonl"
	ExportFormatCSV   = "csv"
)

// ExportQuery 导出参数
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=jsonl csv"`
}

// FileInfo 文件信息
type FileInfo struct {
	ID           string `json:"id"`
	FileName     string `json:"fileName"`
	FileType     string `json:"fileType"`
	FileURL      string `json:"fileUrl"`
	FileSize     int64  `json:"fileSize"`
	FileCategory string `json:"fileCategory"`
	UploadedAt   string `json:"uploadedAt"`
}

// ResponseSummary 回覆列表项
type ResponseSummary struct {
	ID          string     `json:"id"`
	SurveyID    string     `json:"surveyId"`
	SubmittedAt string     `json:"submittedAt"`
	Files       []FileInfo `json:"files"`
}

// ResponseDetail 回覆详情，answers 保持题目顺序
type ResponseDetail struct {
	ID          string          `json:"id"`
	SurveyID    string          `json:"surveyId"`
	SurveyCode  string          `json:"surveyCode"`
	SurveyTitle string          `json:"surveyTitle"`
	Answers     json.RawMessage `json:"answers"`
	SubmittedAt string          `json:"submittedAt"`
	Files       []FileInfo      `json:"files"`
}
