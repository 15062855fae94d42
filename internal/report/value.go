package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// 答案的展示方式
const (
	KindText   = "text"
	KindBadge  = "badge"
	KindBadges = "badges"
	KindBlock  = "block"
)

// 徽章样式
const (
	BadgeSuccess = "badge-success"
	BadgeError   = "badge-error"
	BadgeInfo    = "badge-info"
	BadgeOutline = "badge-outline"
)

// 空值占位
const nullPlaceholder = "無"

// longLabelRunes 超过该长度的题目标题单独占一行
const longLabelRunes = 60

// ValueView 单个答案的展示模型
type ValueView struct {
	Kind  string
	Class string
	Text  string
	Items []string
}

// Item 一个检查项
type Item struct {
	Label string
	Long  bool
	Value ValueView
}

func newItem(label string, value interface{}) Item {
	return Item{
		Label: label,
		Long:  utf8.RuneCountInString(label) > longLabelRunes,
		Value: RenderValue(value),
	}
}

// RenderValue 按运行时类型决定答案的展示方式
func RenderValue(value interface{}) ValueView {
	switch v := value.(type) {
	case nil:
		return ValueView{Kind: KindText, Text: nullPlaceholder}
	case bool:
		if v {
			return ValueView{Kind: KindBadge, Class: BadgeSuccess, Text: "是"}
		}
		return ValueView{Kind: KindBadge, Class: BadgeError, Text: "否"}
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = ScalarText(item)
		}
		return ValueView{Kind: KindBadges, Class: BadgeOutline, Items: items}
	case Object, map[string]interface{}:
		return ValueView{Kind: KindBlock, Text: prettyJSON(v)}
	case string:
		if class := StatusBadgeClass(v); class != "" {
			return ValueView{Kind: KindBadge, Class: class, Text: v}
		}
		return ValueView{Kind: KindText, Text: v}
	default:
		return ValueView{Kind: KindText, Text: ScalarText(v)}
	}
}

// StatusBadgeClass 根据答案前缀判断合规状态，无匹配返回空串
func StatusBadgeClass(answer string) string {
	switch {
	case strings.HasPrefix(answer, "不符合"):
		return BadgeError
	case strings.HasPrefix(answer, "符合"):
		return BadgeSuccess
	case strings.HasPrefix(answer, "不適用"):
		return BadgeInfo
	}
	return ""
}

// ScalarText 答案的纯文本形式，用于徽章内容和导出
func ScalarText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return nullPlaceholder
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "是"
		}
		return "否"
	case Object, []interface{}, map[string]interface{}:
		b, err := marshalNoEscape(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
