package dto

// SubmitRequest 提交问卷的表单字段
type SubmitRequest struct {
	Signature1 string `form:"signature1"`
	Signature2 string `form:"signature2"`
	SurveyData string `form:"surveyData"`
	SurveyUUID string `form:"surveyUUID"`
}

// SubmitResponse 提交结果，落库失败时不带 responseId/fileId
type SubmitResponse struct {
	Success    bool   `json:"success"`
	FileURL    string `json:"fileUrl"`
	Message    string `json:"message"`
	ResponseID string `json:"responseId,omitempty"`
	FileID     string `json:"fileId,omitempty"`
}

// UploadRequest 上传PDF的表单字段，文件在 file 字段
type UploadRequest struct {
	SurveyID   string `form:"surveyId"`
	ResponseID string `form:"responseId"`
}

// UploadResponse 上传结果
type UploadResponse struct {
	Success  bool   `json:"success"`
	FileID   string `json:"fileId"`
	FileURL  string `json:"fileUrl"`
	Mirrored bool   `json:"mirrored"`
	Message  string `json:"message"`
}
