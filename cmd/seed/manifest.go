package main

import (
	"fmt"
	"os"
	"strings"

	"survey-go/internal/report"
	"survey-go/internal/utils"

	"gopkg.in/yaml.v3"
)

// Manifest 问卷种子清单
type Manifest struct {
	Surveys []ManifestEntry `yaml:"surveys"`
}

// ManifestEntry 单个问卷
type ManifestEntry struct {
	Code       string `yaml:"code"`
	Title      string `yaml:"title"`
	SchemaFile string `yaml:"schema_file"`
}

// LoadManifest 读取并检查清单
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取清单失败: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("解析清单失败: %w", err)
	}

	seen := make(map[string]bool, len(m.Surveys))
	for i, s := range m.Surveys {
		if !utils.IsValidSurveyCode(s.Code) {
			return nil, fmt.Errorf("第 %d 项问卷代码无效: %q", i+1, s.Code)
		}
		if !hasReportTemplate(s.Code) {
			return nil, fmt.Errorf("问卷 %s 没有对应的报告模板，支持的前缀: %s", s.Code, strings.Join(report.SupportedPrefixes(), ", "))
		}
		if s.Title == "" || s.SchemaFile == "" {
			return nil, fmt.Errorf("问卷 %s 缺少 title 或 schema_file", s.Code)
		}
		if seen[s.Code] {
			return nil, fmt.Errorf("问卷代码重复: %s", s.Code)
		}
		seen[s.Code] = true
	}

	return &m, nil
}

func hasReportTemplate(code string) bool {
	for _, prefix := range report.SupportedPrefixes() {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}
