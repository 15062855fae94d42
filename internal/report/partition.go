package report

// Sections 按报告段落划分后的答案
type Sections struct {
	Basic   []Item
	Checks  []Item
	Verdict []Item
	// Chemicals 化学品明细原始记录
	Chemicals []interface{}
}

// Partition 把答案分到基本资料、化学品明细、最终结果和检查项
func Partition(answers Object, layout *Layout) Sections {
	var s Sections

	for _, f := range answers {
		switch {
		case IsBasicInfo(f.Label):
			s.Basic = append(s.Basic, newItem(f.Label, f.Value))
		case f.Label == ChemicalDetailKey:
			s.Chemicals = chemicalRecords(f.Value)
		case layout.IsVerdict(f.Label):
			s.Verdict = append(s.Verdict, newItem(f.Label, f.Value))
		default:
			s.Checks = append(s.Checks, newItem(f.Label, f.Value))
		}
	}

	return s
}

// chemicalRecords 只接受数组，其它值一律视为无数据
func chemicalRecords(value interface{}) []interface{} {
	if v, ok := value.([]interface{}); ok {
		return v
	}
	return nil
}

// Chunk 按固定大小切分检查项
func Chunk(items []Item, size int) [][]Item {
	if size <= 0 {
		size = ItemsPerSection
	}
	var groups [][]Item
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[start:end])
	}
	return groups
}

// ChemicalView 一条化学品记录的展示模型
type ChemicalView struct {
	Number int
	Valid  bool
	Rows   []Item
}

func chemicalViews(records []interface{}) []ChemicalView {
	views := make([]ChemicalView, 0, len(records))
	for i, rec := range records {
		view := ChemicalView{Number: i + 1}
		if obj, ok := rec.(Object); ok {
			view.Valid = true
			for _, f := range obj {
				view.Rows = append(view.Rows, newItem(f.Label, f.Value))
			}
		}
		views = append(views, view)
	}
	return views
}
