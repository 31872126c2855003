package attendance

import (
	"sort"

	"attendsheet/internal/model"
	"attendsheet/internal/parser"
)

// Compare 对比 label 指定的周与其前一有效周
// weeks 须已按日期升序（同日期保留源列顺序），前一周取列表中紧邻的前一项。
// 找不到 label 时返回 false。
func Compare(weeks []*model.WeekResult, label, delimiter string) (*model.Comparison, bool) {
	idx := -1
	for i, w := range weeks {
		if w.Label == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	cur := weeks[idx]
	cmp := &model.Comparison{
		Week:        cur,
		Districts:   parser.SortDistricts(cur.Snapshot.Districts(), delimiter),
		Attended:    make(map[string][]model.MarkedName, len(cur.Snapshot.Attended)),
		NotAttended: make(map[string][]model.MarkedName, len(cur.Snapshot.NotAttended)),
	}
	if idx > 0 {
		cmp.Previous = weeks[idx-1]
	}

	for district, names := range cur.Snapshot.Attended {
		var flipped map[string]struct{}
		if cmp.Previous != nil {
			flipped = nameSet(cmp.Previous.Snapshot.NotAttended[district])
		}
		cmp.Attended[district] = mark(names, flipped, model.HighlightNewlyAttended, cmp.Previous != nil)
	}
	for district, names := range cur.Snapshot.NotAttended {
		var flipped map[string]struct{}
		if cmp.Previous != nil {
			flipped = nameSet(cmp.Previous.Snapshot.Attended[district])
		}
		cmp.NotAttended[district] = mark(names, flipped, model.HighlightNewlyAbsent, cmp.Previous != nil)
	}
	return cmp, true
}

// CompareLatest 对比最新周
func CompareLatest(r *model.Result, delimiter string) (*model.Comparison, bool) {
	if !r.HasData() || r.Latest == nil {
		return nil, false
	}
	return Compare(r.Weeks, r.Latest.Label, delimiter)
}

// mark 标注高亮；没有前一周时保留行顺序
func mark(names []string, flipped map[string]struct{}, h model.Highlight, reorder bool) []model.MarkedName {
	out := make([]model.MarkedName, len(names))
	for i, n := range names {
		out[i] = model.MarkedName{Name: n}
		if _, ok := flipped[n]; ok {
			out[i].Highlight = h
		}
	}
	if !reorder {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		hi, hj := out[i].Highlight != model.HighlightNone, out[j].Highlight != model.HighlightNone
		if hi != hj {
			return hi
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
