package report

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const pngSignature = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func mustParse(t *testing.T, data string) Object {
	t.Helper()
	obj, err := ParseAnswers([]byte(data))
	if err != nil {
		t.Fatalf("ParseAnswers: %v", err)
	}
	return obj
}

func TestParseAnswersKeepsOrder(t *testing.T) {
	obj := mustParse(t, `{"z":1,"a":"x","m":[1,{"k2":true,"k1":null}],"n":{"b":2,"a":1}}`)

	got := strings.Join(obj.Labels(), ",")
	if got != "z,a,m,n" {
		t.Fatalf("labels out of order: %s", got)
	}

	nested, _ := obj.Get("n")
	inner, ok := nested.(Object)
	if !ok {
		t.Fatalf("expected nested Object, got %T", nested)
	}
	if strings.Join(inner.Labels(), ",") != "b,a" {
		t.Errorf("nested labels out of order: %v", inner.Labels())
	}

	b, err := obj.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"z":1,"a":"x","m":[1,{"k2":true,"k1":null}],"n":{"b":2,"a":1}}`
	if string(b) != want {
		t.Errorf("MarshalJSON = %s, want %s", b, want)
	}
}

func TestParseAnswersDuplicateKey(t *testing.T) {
	obj := mustParse(t, `{"a":1,"b":2,"a":3}`)
	if len(obj) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(obj))
	}
	v, _ := obj.Get("a")
	if v.(interface{ String() string }).String() != "3" {
		t.Errorf("expected last value 3, got %v", v)
	}
	if obj[0].Label != "a" {
		t.Errorf("expected first position kept, got %s", obj[0].Label)
	}
}

func TestParseAnswersRejects(t *testing.T) {
	tests := []string{``, `[]`, `"x"`, `{"a":1`, `{"a":1} {"b":2}`, `not json`}
	for _, in := range tests {
		if _, err := ParseAnswers([]byte(in)); !errors.Is(err, ErrInvalidAnswers) {
			t.Errorf("ParseAnswers(%q) err = %v, want ErrInvalidAnswers", in, err)
		}
	}
}

func TestStatusBadgeClass(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"符合", BadgeSuccess},
		{"符合規定", BadgeSuccess},
		{"不符合", BadgeError},
		{"不符合：未張貼標示", BadgeError},
		{"不適用", BadgeInfo},
		{"不適用（無此作業）", BadgeInfo},
		{"部分符合", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := StatusBadgeClass(tt.answer); got != tt.want {
				t.Errorf("StatusBadgeClass(%q) = %q, want %q", tt.answer, got, tt.want)
			}
		})
	}
}

func TestRenderValue(t *testing.T) {
	obj := mustParse(t, `{"t":true,"f":false,"n":null,"num":3.5,"arr":["a",2,null],"obj":{"x":1},"s":"hello","bad":"不符合"}`)

	tests := []struct {
		label string
		kind  string
		class string
		text  string
	}{
		{"t", KindBadge, BadgeSuccess, "是"},
		{"f", KindBadge, BadgeError, "否"},
		{"n", KindText, "", "無"},
		{"num", KindText, "", "3.5"},
		{"arr", KindBadges, BadgeOutline, ""},
		{"obj", KindBlock, "", "{\n  \"x\": 1\n}"},
		{"s", KindText, "", "hello"},
		{"bad", KindBadge, BadgeError, "不符合"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			v, _ := obj.Get(tt.label)
			view := RenderValue(v)
			if view.Kind != tt.kind || view.Class != tt.class {
				t.Fatalf("RenderValue(%s) = %+v", tt.label, view)
			}
			if tt.text != "" && view.Text != tt.text {
				t.Errorf("text = %q, want %q", view.Text, tt.text)
			}
		})
	}

	arr, _ := obj.Get("arr")
	if items := RenderValue(arr).Items; strings.Join(items, "|") != "a|2|無" {
		t.Errorf("array items = %v", items)
	}
}

func TestPartition(t *testing.T) {
	layout, err := SelectLayout("SUPV-01")
	if err != nil {
		t.Fatal(err)
	}
	answers := mustParse(t, `{
		"受檢單位名稱": "甲公司",
		"是否設置安全資料表": "符合",
		"統一編號": "12345678",
		"化學品詳細資訊": [{"化學品名稱": "甲苯"}],
		"督導結果": "不符合",
		"違反事實說明": "未標示",
		"容器是否依規定標示": "不符合"
	}`)

	s := Partition(answers, layout)

	if len(s.Basic) != 2 || s.Basic[0].Label != "受檢單位名稱" || s.Basic[1].Label != "統一編號" {
		t.Errorf("basic = %+v", s.Basic)
	}
	if len(s.Checks) != 2 {
		t.Errorf("checks = %+v", s.Checks)
	}
	for _, item := range s.Checks {
		if IsBasicInfo(item.Label) {
			t.Errorf("basic label %q leaked into checks", item.Label)
		}
	}
	if len(s.Verdict) != 2 {
		t.Errorf("verdict = %+v", s.Verdict)
	}
	if len(s.Chemicals) != 1 {
		t.Errorf("chemicals = %+v", s.Chemicals)
	}
}

func TestPartitionBasicInfoWinsOverVerdict(t *testing.T) {
	layout, _ := SelectLayout("GUIDE-1")
	// 輔導人員 is basic info even though the layout matches 輔導 keywords elsewhere
	answers := mustParse(t, `{"輔導人員":"王小明","輔導結果":"完成"}`)
	s := Partition(answers, layout)
	if len(s.Basic) != 1 || len(s.Verdict) != 1 || len(s.Checks) != 0 {
		t.Errorf("unexpected partition: %+v", s)
	}
}

func TestChunk(t *testing.T) {
	items := make([]Item, 9)
	groups := Chunk(items, ItemsPerSection)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if len(groups[0]) != 4 || len(groups[1]) != 4 || len(groups[2]) != 1 {
		t.Errorf("unexpected group sizes: %d %d %d", len(groups[0]), len(groups[1]), len(groups[2]))
	}
	if Chunk(nil, 4) != nil {
		t.Error("expected nil for no items")
	}
}

func TestSelectLayout(t *testing.T) {
	tests := []struct {
		code    string
		title   string
		wantErr bool
	}{
		{"SUPV-2025-01", "化學品安全督導報告", false},
		{"SUPV", "化學品安全督導報告", false},
		{"GUIDE-A", "化學品安全輔導報告", false},
		{"AUDIT-1", "", true},
		{"supv-1", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			l, err := SelectLayout(tt.code)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedSurveyType) {
					t.Fatalf("expected ErrUnsupportedSurveyType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if l.Title != tt.title {
				t.Errorf("title = %s", l.Title)
			}
		})
	}
}

func TestRenderSupervisionReport(t *testing.T) {
	answers := mustParse(t, `{
		"受檢單位名稱": "甲公司",
		"項目一": "符合",
		"項目二": "不符合",
		"項目三": "不適用",
		"項目四": true,
		"項目五": ["製造", "使用"],
		"督導結果": "不符合",
		"化學品詳細資訊": []
	}`)
	now := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

	html, err := Render("SUPV-1", answers, Signatures{Operator: pngSignature}, now)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	mustContain := []string{
		"<title>化學品安全督導報告</title>",
		"日期: 2025/3/7",
		`<span class="badge badge-success">符合</span>`,
		`<span class="badge badge-error">不符合</span>`,
		`<span class="badge badge-info">不適用</span>`,
		`<span class="badge badge-success">是</span>`,
		`<span class="badge badge-outline">製造</span>`,
		`class="section check-items page-break"`,
		`<p class="no-chemical">無化學品資訊</p>`,
		`src="` + pngSignature + `"`,
		`<p class="no-signature">無簽名</p>`,
		"督導人員簽名",
		"本文件由系統自動生成 - 2025/3/7",
	}
	for _, s := range mustContain {
		if !strings.Contains(html, s) {
			t.Errorf("report missing %q", s)
		}
	}

	if !strings.HasPrefix(strings.TrimSpace(html), "<!DOCTYPE html>") {
		t.Error("report should start with doctype")
	}

	// basic info precedes checks, checks precede verdict, verdict precedes signatures
	order := []string{"基本資料", "督導檢查項目", "化學品詳細資訊</h2>", `<h2>督導結果</h2>`, "簽名確認"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(html, marker)
		if idx < 0 || idx < last {
			t.Fatalf("section %q out of order (idx %d, previous %d)", marker, idx, last)
		}
		last = idx
	}
}

func TestRenderGuidanceOmitsEmptyChemicals(t *testing.T) {
	answers := mustParse(t, `{"受檢單位名稱":"乙公司","輔導建議":"加強通風"}`)
	html, err := Render("GUIDE-1", answers, Signatures{}, time.Now())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, `chemical-section`) {
		t.Error("guidance report should omit empty chemical section")
	}
	if strings.Count(html, `<p class="no-signature">無簽名</p>`) != 2 {
		t.Error("expected two unsigned placeholders")
	}
	if !strings.Contains(html, "輔導結果與建議") {
		t.Error("expected guidance verdict heading")
	}
}

func TestRenderChemicalTable(t *testing.T) {
	answers := mustParse(t, `{"化學品詳細資訊":[{"化學品名稱":"甲苯","運作行為":["使用","貯存"]},"oops"]}`)
	html, err := Render("GUIDE-1", answers, Signatures{}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"化學品 #1", "<td>化學品名稱</td>", `<span class="badge badge-outline">貯存</span>`, "化學品 #2", "資料格式錯誤"} {
		if !strings.Contains(html, s) {
			t.Errorf("missing %q", s)
		}
	}
}

func TestRenderEscapesAnswers(t *testing.T) {
	answers := mustParse(t, `{"<b>題目</b>":"<script>alert(1)</script>"}`)
	html, err := Render("SUPV-1", answers, Signatures{Operator: "javascript:alert(1)"}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") || strings.Contains(html, "<b>題目</b>") {
		t.Error("answers must be escaped")
	}
	if strings.Contains(html, "javascript:alert") {
		t.Error("non data-URI signature must not be embedded")
	}
}

func TestRenderUnsupportedCode(t *testing.T) {
	_, err := Render("AUDIT-1", Object{}, Signatures{}, time.Now())
	if !errors.Is(err, ErrUnsupportedSurveyType) {
		t.Fatalf("expected ErrUnsupportedSurveyType, got %v", err)
	}
	for _, prefix := range SupportedPrefixes() {
		if !strings.Contains(err.Error(), prefix) {
			t.Errorf("error should list supported prefix %s: %v", prefix, err)
		}
	}
}

func TestRenderChemicalNonArrayIsEmpty(t *testing.T) {
	for _, raw := range []string{
		`{"化學品詳細資訊":{"化學品名稱":"甲苯"}}`,
		`{"化學品詳細資訊":"甲苯"}`,
	} {
		html, err := Render("SUPV-1", mustParse(t, raw), Signatures{}, time.Now())
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(html, "無化學品資訊") || strings.Contains(html, "化學品 #1") {
			t.Errorf("%s: non-array chemical detail should render the placeholder", raw)
		}
	}
}

func TestSignatureURL(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{pngSignature, true},
		{"data:image/jpeg;base64,/9j/4AAQSkZJRg==", true},
		{"data:text/html;base64,PHNjcmlwdD4=", false},
		{"https://example.com/a.png", false},
		{"", false},
		{"data:image/png;base64,abc\" onerror=\"x", false},
	}
	for _, tt := range tests {
		if got := IsValidSignature(tt.in); got != tt.ok {
			t.Errorf("IsValidSignature(%q) = %v, want %v", tt.in, got, tt.ok)
		}
	}
}
