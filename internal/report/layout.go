package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedSurveyType 问卷代码前缀没有对应的报告模板
var ErrUnsupportedSurveyType = errors.New("unsupported survey type")

// ChemicalDetailKey 化学品明细题目
const ChemicalDetailKey = "化學品詳細資訊"

// ItemsPerSection 每个分节的检查项数量，用于打印分页
const ItemsPerSection = 4

// basicInfoLabels 基本资料题目白名单
var basicInfoLabels = map[string]bool{
	"受檢單位名稱": true,
	"受檢單位地址": true,
	"統一編號":   true,
	"負責人":    true,
	"聯絡人":    true,
	"聯絡電話":   true,
	"督導日期":   true,
	"輔導日期":   true,
	"檢查日期":   true,
	"督導人員":   true,
	"輔導人員":   true,
	"場所類別":   true,
	"運作行為":   true,
	"列管編號":   true,
}

// IsBasicInfo 判断题目是否属于基本资料
func IsBasicInfo(label string) bool {
	return basicInfoLabels[label]
}

// Layout 报告模板
type Layout struct {
	Prefix          string
	Title           string
	ChecksHeading   string
	VerdictHeading  string
	VerdictKeywords []string
	SignerLabels    [2]string
	// ChemicalPlaceholder 为 true 时无化学品数据也输出占位段落，否则省略整段
	ChemicalPlaceholder bool
}

// IsVerdict 判断题目是否属于最终结果
func (l *Layout) IsVerdict(label string) bool {
	for _, kw := range l.VerdictKeywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

var layouts = []*Layout{
	{
		Prefix:              "SUPV",
		Title:               "化學品安全督導報告",
		ChecksHeading:       "督導檢查項目",
		VerdictHeading:      "督導結果",
		VerdictKeywords:     []string{"督導結果", "違反法規條款", "違反事實"},
		SignerLabels:        [2]string{"業者簽名", "督導人員簽名"},
		ChemicalPlaceholder: true,
	},
	{
		Prefix:              "GUIDE",
		Title:               "化學品安全輔導報告",
		ChecksHeading:       "輔導訪視項目",
		VerdictHeading:      "輔導結果與建議",
		VerdictKeywords:     []string{"輔導結果", "改善建議", "輔導建議"},
		SignerLabels:        [2]string{"業者簽名", "輔導人員簽名"},
		ChemicalPlaceholder: false,
	},
}

// SelectLayout 按问卷代码前缀选择模板
func SelectLayout(code string) (*Layout, error) {
	for _, l := range layouts {
		if strings.HasPrefix(code, l.Prefix) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (支持的前缀: %s)", ErrUnsupportedSurveyType, code, strings.Join(SupportedPrefixes(), ", "))
}

// SupportedPrefixes 返回所有模板前缀
func SupportedPrefixes() []string {
	prefixes := make([]string, len(layouts))
	for i, l := range layouts {
		prefixes[i] = l.Prefix
	}
	return prefixes
}
