package utils

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// surveyCodePattern 大写前缀决定报告模板，例如 SUPV-2025-01
var surveyCodePattern = regexp.MustCompile(`^[A-Z]+[A-Za-z0-9_-]*$`)

// InitValidator 初始化验证器，同时注册到 gin 的 binding 引擎
func InitValidator() {
	validateOnce.Do(func() {
		validate = validator.New()
		registerRules(validate)

		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerRules(v)
		}
	})
}

func registerRules(v *validator.Validate) {
	v.RegisterValidation("surveycode", validateSurveyCode)
}

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	InitValidator()
	return validate
}

// validateSurveyCode 验证问卷代码
func validateSurveyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) > 100 {
		return false
	}
	return surveyCodePattern.MatchString(code)
}

// IsValidSurveyCode 供非结构体场景使用
func IsValidSurveyCode(code string) bool {
	return len(code) <= 100 && surveyCodePattern.MatchString(code)
}

// ValidateStruct 验证结构体
func ValidateStruct(s interface{}) error {
	v := GetValidator()
	if err := v.Struct(s); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// FormatValidationError 格式化验证错误
func FormatValidationError(err error) error {
	var messages []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			param := e.Param()

			var message string
			switch e.Tag() {
			case "required":
				message = fmt.Sprintf("%s是必填字段", field)
			case "min":
				message = fmt.Sprintf("%s长度不能小于%s", field, param)
			case "max":
				message = fmt.Sprintf("%s长度不能大于%s", field, param)
			case "oneof":
				message = fmt.Sprintf("%s只能是 %s 之一", field, param)
			case "surveycode":
				message = fmt.Sprintf("%s必须以大写字母开头，只能包含字母、数字、下划线和连字符", field)
			default:
				message = fmt.Sprintf("%s验证失败: %s", field, e.Tag())
			}

			messages = append(messages, message)
		}
	}

	if len(messages) > 0 {
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}

	return err
}
