package report

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// ChecksGroup 一个打印分节
type ChecksGroup struct {
	PageBreak bool
	Items     []Item
}

// SignatureView 签名栏
type SignatureView struct {
	Label  string
	Image  template.URL
	Signed bool
}

// Document 报告模板的数据
type Document struct {
	Title          string
	Date           string
	ChecksHeading  string
	VerdictHeading string
	Basic          []Item
	CheckGroups    []ChecksGroup
	Verdict        []Item
	Chemicals      []ChemicalView
	ShowChemicals  bool
	Signatures     []SignatureView
}

// FormatDate 报告日期，格式 YYYY/M/D
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

// Build 组装报告数据，未知代码前缀返回 ErrUnsupportedSurveyType
func Build(code string, answers Object, sigs Signatures, now time.Time) (*Document, error) {
	layout, err := SelectLayout(code)
	if err != nil {
		return nil, err
	}

	sections := Partition(answers, layout)

	doc := &Document{
		Title:          layout.Title,
		Date:           FormatDate(now),
		ChecksHeading:  layout.ChecksHeading,
		VerdictHeading: layout.VerdictHeading,
		Basic:          sections.Basic,
		Verdict:        sections.Verdict,
		Chemicals:      chemicalViews(sections.Chemicals),
	}
	doc.ShowChemicals = len(doc.Chemicals) > 0 || layout.ChemicalPlaceholder

	for i, group := range Chunk(sections.Checks, ItemsPerSection) {
		doc.CheckGroups = append(doc.CheckGroups, ChecksGroup{PageBreak: i > 0, Items: group})
	}

	for i, raw := range []string{sigs.Operator, sigs.Inspector} {
		view := SignatureView{Label: layout.SignerLabels[i]}
		view.Image, view.Signed = SignatureURL(raw)
		doc.Signatures = append(doc.Signatures, view)
	}

	return doc, nil
}

// Render 生成完整的 HTML 报告
func Render(code string, answers Object, sigs Signatures, now time.Time) (string, error) {
	doc, err := Build(code, answers, sigs, now)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, doc); err != nil {
		return "", fmt.Errorf("渲染报告模板失败: %w", err)
	}
	return sb.String(), nil
}
