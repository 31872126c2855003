package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"

	"attendsheet/internal/config"
	"attendsheet/internal/model"
	"attendsheet/internal/parser"
)

//go:embed templates/*.html
var templateFiles embed.FS

// 空数据占位
const (
	NoAttendanceText = "無出席資料"
	NoStatsText      = "無統計資料"
)

// Renderer 将分类与对比结果渲染为 HTML 片段
// 只读取输入，不修改任何数据；相同输入得到相同输出
type Renderer struct {
	cfg  config.AttendanceConfig
	tmpl *template.Template
}

// PageData 首页数据
type PageData struct {
	AnalyticDate string
	Selected     string
	Weeks        []string
	Report       template.HTML
	CanDownload  bool
	Message      string
	Error        string
}

type nameCell struct {
	Display string
	Class   string
}

type attendanceRow struct {
	Class string
	Cells []nameCell
}

type districtGroup struct {
	Main      string
	Districts []string
	Columns   int
	Rows      []attendanceRow
}

type attendanceView struct {
	Title          string
	AttendedHeader string
	AbsentHeader   string
	Groups         []districtGroup
}

type statsRow struct {
	Class  string
	Label  string
	Header bool
	Count  int
}

type combinedView struct {
	Attendance template.HTML
	Stats      template.HTML
}

// NewRenderer 解析内置模板
func NewRenderer(cfg config.AttendanceConfig) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &Renderer{cfg: cfg, tmpl: tmpl}, nil
}

// AttendanceTable 出席表：外层按大区分组，内层每个小区一组 本週到會/未到會 两列
func (r *Renderer) AttendanceTable(cmp *model.Comparison) (template.HTML, error) {
	if cmp == nil || cmp.Week == nil || len(cmp.Districts) == 0 {
		return r.execute("placeholder", NoAttendanceText)
	}

	view := attendanceView{
		Title:          cmp.Week.Label,
		AttendedHeader: model.AttendedHeader,
		AbsentHeader:   model.AbsentHeader,
	}
	mains, groups := parser.GroupByMain(cmp.Districts, r.cfg.DistrictDelimiter)
	for _, main := range mains {
		districts := groups[main]
		view.Groups = append(view.Groups, districtGroup{
			Main:      main,
			Districts: districts,
			Columns:   len(districts) * 2,
			Rows:      r.attendanceRows(cmp, districts),
		})
	}
	return r.execute("attendance", view)
}

func (r *Renderer) attendanceRows(cmp *model.Comparison, districts []string) []attendanceRow {
	maxLen := 0
	for _, d := range districts {
		if n := len(cmp.Attended[d]); n > maxLen {
			maxLen = n
		}
		if n := len(cmp.NotAttended[d]); n > maxLen {
			maxLen = n
		}
	}

	rows := make([]attendanceRow, maxLen)
	for i := range rows {
		cells := make([]nameCell, 0, len(districts)*2)
		for _, d := range districts {
			cells = append(cells, r.cellAt(cmp.Attended[d], i), r.cellAt(cmp.NotAttended[d], i))
		}
		rows[i] = attendanceRow{Class: rowClass(i), Cells: cells}
	}
	return rows
}

func (r *Renderer) cellAt(names []model.MarkedName, i int) nameCell {
	if i >= len(names) {
		return nameCell{}
	}
	return nameCell{
		Display: TruncateName(names[i].Name, r.cfg.NameDisplayWidth),
		Class:   string(names[i].Highlight),
	}
}

// StatsTable 统计表：每个小区按年龄层列出人数与总计，最后是大区汇总
func (r *Renderer) StatsTable(week *model.WeekResult) (template.HTML, error) {
	if week == nil || len(week.Counts.Districts) == 0 {
		return r.execute("placeholder", NoStatsText)
	}

	var rows []statsRow
	add := func(label string, header bool, count int) {
		rows = append(rows, statsRow{Class: rowClass(len(rows)), Label: label, Header: header, Count: count})
	}
	block := func(label string, dc *model.DistrictCount) {
		add(label, true, 0)
		for _, age := range r.cfg.AgeCategories {
			add(age, false, dc.Ages[age])
		}
		add(model.GrandTotalKey, false, dc.Total)
	}

	districts := make([]string, 0, len(week.Counts.Districts))
	for d := range week.Counts.Districts {
		districts = append(districts, d)
	}
	for _, d := range parser.SortDistricts(districts, r.cfg.DistrictDelimiter) {
		block(d, week.Counts.Districts[d])
	}

	mains := make([]string, 0, len(week.MainCounts.Districts))
	for m := range week.MainCounts.Districts {
		mains = append(mains, m)
	}
	sort.Strings(mains)
	for _, m := range mains {
		label := m
		if label == "" {
			label = model.UnknownMainLabel
		}
		block(label, week.MainCounts.Districts[m])
	}
	return r.execute("stats", rows)
}

// Combined 出席表与统计表并排
func (r *Renderer) Combined(cmp *model.Comparison) (template.HTML, error) {
	attendance, err := r.AttendanceTable(cmp)
	if err != nil {
		return "", err
	}
	var week *model.WeekResult
	if cmp != nil {
		week = cmp.Week
	}
	stats, err := r.StatsTable(week)
	if err != nil {
		return "", err
	}
	return r.execute("combined", combinedView{Attendance: attendance, Stats: stats})
}

// Page 渲染完整首页
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// TruncateName 按字符截取展示名；width <= 0 时不截取
func TruncateName(name string, width int) string {
	if width <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	return string(runes[:width])
}

func rowClass(i int) string {
	if i%2 == 0 {
		return "even"
	}
	return "odd"
}
