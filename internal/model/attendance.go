package model

import (
	"sort"
	"time"
)

// 汇总表 / 报表中使用的固定文案
const (
	AttendedHeader   = "本週到會"
	AbsentHeader     = "未到會"
	GrandTotalKey    = "總計"
	UnknownMainLabel = "未知大區"
)

// DistrictKey 区排序键：(大区文本, 小区序号)；序号无法解析时为 0
type DistrictKey struct {
	Main string
	Sub  int
}

// Less 先按大区文本，再按小区序号
func (k DistrictKey) Less(o DistrictKey) bool {
	if k.Main != o.Main {
		return k.Main < o.Main
	}
	return k.Sub < o.Sub
}

// WeekColumn 扫描出的周列
type WeekColumn struct {
	Column     int    `json:"column"`     // 源表列索引（0 基）
	WeekLabel  string `json:"weekLabel"`  // 如 "第三週"
	MonthLabel string `json:"monthLabel"` // 如 "2025年3月"
}

// Display 周展示名，如 "2025年3月第三週"
func (w WeekColumn) Display() string {
	return w.MonthLabel + w.WeekLabel
}

// Snapshot 单周出席划分：区 -> 姓名列表（保持行顺序）
type Snapshot struct {
	Attended    map[string][]string `json:"attended"`
	NotAttended map[string][]string `json:"notAttended"`
}

// NewSnapshot 创建空快照
func NewSnapshot() Snapshot {
	return Snapshot{
		Attended:    make(map[string][]string),
		NotAttended: make(map[string][]string),
	}
}

// Districts 出现在任一列表中的区（按字面排序，业务排序见 parser.SortDistricts）
func (s Snapshot) Districts() []string {
	seen := make(map[string]struct{}, len(s.Attended)+len(s.NotAttended))
	for d := range s.Attended {
		seen[d] = struct{}{}
	}
	for d := range s.NotAttended {
		seen[d] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// AttendedTotal 出席总人数
func (s Snapshot) AttendedTotal() int {
	n := 0
	for _, names := range s.Attended {
		n += len(names)
	}
	return n
}

// AbsentTotal 未出席总人数
func (s Snapshot) AbsentTotal() int {
	n := 0
	for _, names := range s.NotAttended {
		n += len(names)
	}
	return n
}

// DistrictCount 单个区的出席统计
type DistrictCount struct {
	Total int            `json:"total"`
	Ages  map[string]int `json:"ages"`
}

// Counts 按区聚合的出席统计；GrandTotal 单独存放，不与任何区键冲突
type Counts struct {
	Districts  map[string]*DistrictCount `json:"districts"`
	GrandTotal int                       `json:"grandTotal"`
}

// NewCounts 创建空统计
func NewCounts() Counts {
	return Counts{Districts: make(map[string]*DistrictCount)}
}

// Get 读取某区统计；不存在时返回 nil
func (c Counts) Get(district string) *DistrictCount {
	return c.Districts[district]
}

// WeekResult 单周处理结果
type WeekResult struct {
	Week         WeekColumn `json:"week"`
	Label        string     `json:"label"`
	Date         time.Time  `json:"date"`
	SheetName    string     `json:"sheetName"`
	Snapshot     Snapshot   `json:"snapshot"`
	Counts       Counts     `json:"counts"`
	MainCounts   Counts     `json:"mainCounts"`
	MainDistrict string     `json:"mainDistrict"`
}

// Highlight 周对比高亮
type Highlight string

const (
	HighlightNone          Highlight = ""
	HighlightNewlyAttended Highlight = "highlight-green"
	HighlightNewlyAbsent   Highlight = "highlight-red"
)

// MarkedName 带高亮标记的姓名
type MarkedName struct {
	Name      string    `json:"name"`
	Highlight Highlight `json:"highlight,omitempty"`
}

// Comparison 某周与前一有效周的对比结果
type Comparison struct {
	Week        *WeekResult             `json:"week"`
	Previous    *WeekResult             `json:"previous,omitempty"`
	Districts   []string                `json:"districts"`
	Attended    map[string][]MarkedName `json:"attended"`
	NotAttended map[string][]MarkedName `json:"notAttended"`
}
