package report

import (
	"html/template"
	"regexp"
	"strings"
)

var signatureURIPattern = regexp.MustCompile(`^data:image/(png|jpeg|svg\+xml);base64,[A-Za-z0-9+/=]+$`)

// Signatures 业者与检查人员的签名图（data URI）
type Signatures struct {
	Operator  string
	Inspector string
}

// SignatureURL 校验签名，非 data:image 的内容一律视为未签名
func SignatureURL(raw string) (template.URL, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || !signatureURIPattern.MatchString(s) {
		return "", false
	}
	return template.URL(s), true
}

// IsValidSignature 判断是否为可嵌入报告的签名
func IsValidSignature(raw string) bool {
	_, ok := SignatureURL(raw)
	return ok
}
