package model

import "sort"

// ResultStatus 处理结果状态
type ResultStatus string

const (
	StatusOK     ResultStatus = "ok"      // 有出席数据
	StatusNoData ResultStatus = "no_data" // 处理成功但无出席数据
)

// Result 一次上传的完整处理结果，由调用方（会话）持有
type Result struct {
	Status       ResultStatus  `json:"status"`
	Warning      string        `json:"warning,omitempty"`
	InputSheet   string        `json:"inputSheet"`
	WeekColumns  []WeekColumn  `json:"weekColumns"`
	Weeks        []*WeekResult `json:"weeks"` // 按推导日期升序
	Latest       *WeekResult   `json:"latest,omitempty"`
	MainDistrict string        `json:"mainDistrict"`
}

// HasData 是否有可展示的周
func (r *Result) HasData() bool {
	return r != nil && r.Status == StatusOK && len(r.Weeks) > 0
}

// Week 按展示名查找周
func (r *Result) Week(label string) *WeekResult {
	if r == nil {
		return nil
	}
	for _, w := range r.Weeks {
		if w.Label == label {
			return w
		}
	}
	return nil
}

// Labels 所有周展示名（日期升序）
func (r *Result) Labels() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Weeks))
	for _, w := range r.Weeks {
		out = append(out, w.Label)
	}
	return out
}

// AnalyticDate 最新周日期，格式 2025年03月21日
func (r *Result) AnalyticDate() string {
	if r == nil || r.Latest == nil {
		return ""
	}
	return r.Latest.Date.Format("2006年01月02日")
}

// SortWeeksByDate 按推导日期稳定排序（同日期保留源列顺序）
func SortWeeksByDate(weeks []*WeekResult) []*WeekResult {
	out := make([]*WeekResult, len(weeks))
	copy(out, weeks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
