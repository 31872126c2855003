package parser

import (
	"fmt"
	"strings"
	"time"

	"attendsheet/internal/model"
)

// 表头行：第 1 行为月份，第 2 行为周
const (
	monthHeaderRow = 0
	weekHeaderRow  = 1
)

// ScanOptions 周列扫描参数
type ScanOptions struct {
	StartColumn  int
	DefaultMonth string
	WeekMarker   string
}

// ScanWeekColumns 从 StartColumn 起扫描表头，返回所有周列（源列顺序）
// 月份表头只出现在月份切换的列，之后的列沿用最近一次出现的月份
func ScanWeekColumns(t *model.Table, opts ScanOptions) []model.WeekColumn {
	currentMonth := NormalizeLabel(opts.DefaultMonth)
	var out []model.WeekColumn

	for col := opts.StartColumn; col < t.ColCount(); col++ {
		monthHeader := CompactLabel(t.Cell(monthHeaderRow, col).String())
		weekHeader := CompactLabel(t.Cell(weekHeaderRow, col).String())

		if IsMonthHeader(monthHeader) {
			currentMonth = monthHeader
		}
		if opts.WeekMarker != "" && strings.Contains(weekHeader, opts.WeekMarker) {
			out = append(out, model.WeekColumn{
				Column:     col,
				WeekLabel:  weekHeader,
				MonthLabel: currentMonth,
			})
		}
	}
	return out
}

// WeekDate 推导周日期：(年, 月, min(周序号*7, 28))，仅用作排序键
// 周序号无法识别时日取 1，避免落到上个月
func WeekDate(w model.WeekColumn, marker string) (time.Time, error) {
	year, month, ok := ExtractYearMonth(w.MonthLabel)
	if !ok {
		return time.Time{}, fmt.Errorf("cannot parse month label %q", w.MonthLabel)
	}
	day := WeekOrdinal(w.WeekLabel, marker) * 7
	if day > 28 {
		day = 28
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// SheetName 周汇总表名，如 "2025年3月第一週 主日"
func SheetName(w model.WeekColumn, suffix string) (string, error) {
	year, _, ok := ExtractYearMonth(w.MonthLabel)
	if !ok {
		return "", fmt.Errorf("cannot parse month label %q", w.MonthLabel)
	}
	monthPart := w.MonthLabel
	if idx := strings.Index(monthPart, "年"); idx >= 0 {
		monthPart = monthPart[idx+len("年"):]
	}
	name := fmt.Sprintf("%d年%s%s", year, monthPart, w.WeekLabel)
	if suffix != "" {
		name += " " + suffix
	}
	return name, nil
}
