package service

import "errors"

var (
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrSurveyCodeExists   = errors.New("survey code already exists")
	ErrInvalidSchema      = errors.New("invalid survey schema")
	ErrResponseNotFound   = errors.New("response not found")
	ErrInvalidSubmission  = errors.New("invalid submission")
	ErrInvalidUpload      = errors.New("invalid upload")
	ErrAccessDenied       = errors.New("access denied")
	ErrFileNotFound       = errors.New("file not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// timeLayout 接口中的时间格式
const timeLayout = "2006-01-02 15:04:05"

// fileURLPrefix 生成文件的访问路径前缀
const fileURLPrefix = "/api/serve-file/"

// FileURL 文件名对应的访问路径
func FileURL(fileName string) string {
	return fileURLPrefix + fileName
}
