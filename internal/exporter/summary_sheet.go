package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"attendsheet/internal/model"
)

const (
	headerFillColor    = "#107C10"
	subheaderFillColor = "#5DBB63"
	nameColumnWidth    = 12
)

type summaryStyles struct {
	header    int
	subheader int
}

func newSummaryStyles(f *excelize.File) (summaryStyles, error) {
	font := &excelize.Font{Bold: true, Color: "#FFFFFF"}
	align := &excelize.Alignment{Horizontal: "center"}

	header, err := f.NewStyle(&excelize.Style{
		Font:      font,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: align,
	})
	if err != nil {
		return summaryStyles{}, fmt.Errorf("create header style: %w", err)
	}
	subheader, err := f.NewStyle(&excelize.Style{
		Font:      font,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{subheaderFillColor}, Pattern: 1},
		Alignment: align,
	})
	if err != nil {
		return summaryStyles{}, fmt.Errorf("create subheader style: %w", err)
	}
	return summaryStyles{header: header, subheader: subheader}, nil
}

// WriteSummarySheet 追加一张周汇总表
// 每个区占两列：第 1 行区名，第 2 行 本週到會/未到會，第 3 行起逐行列出姓名，
// 两列互相独立，较短的一列留空。districts 需已按区排序键排好。
// 表名已存在时返回 *model.DuplicateSheetError，不做任何写入。
func WriteSummarySheet(f *excelize.File, sheet string, districts []string, snap model.Snapshot) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("check sheet %s: %w", sheet, err)
	}
	if idx >= 0 {
		return &model.DuplicateSheetError{SheetName: sheet}
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if len(districts) == 0 {
		return nil
	}

	styles, err := newSummaryStyles(f)
	if err != nil {
		return err
	}

	for i, district := range districts {
		attendedCol := i*2 + 1
		absentCol := i*2 + 2

		if err := setStyledCell(f, sheet, attendedCol, 1, district, styles.header); err != nil {
			return err
		}
		if err := setStyledCell(f, sheet, absentCol, 1, district, styles.header); err != nil {
			return err
		}
		if err := setStyledCell(f, sheet, attendedCol, 2, model.AttendedHeader, styles.subheader); err != nil {
			return err
		}
		if err := setStyledCell(f, sheet, absentCol, 2, model.AbsentHeader, styles.subheader); err != nil {
			return err
		}

		if err := writeNameColumn(f, sheet, attendedCol, snap.Attended[district]); err != nil {
			return err
		}
		if err := writeNameColumn(f, sheet, absentCol, snap.NotAttended[district]); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(districts) * 2)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, nameColumnWidth)
}

func writeNameColumn(f *excelize.File, sheet string, col int, names []string) error {
	for r, name := range names {
		cell, err := excelize.CoordinatesToCellName(col, r+3)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, name); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func setStyledCell(f *excelize.File, sheet string, col, row int, value string, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStr(sheet, cell, value); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}
