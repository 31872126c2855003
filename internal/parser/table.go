package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"attendsheet/internal/model"
)

// OpenWorkbook 打开 xlsx 工作簿
func OpenWorkbook(reader io.Reader) (*excelize.File, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	return file, nil
}

// InputSheetName 输入表：活动工作表，缺省为第一个
func InputSheetName(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", model.ErrEmptyWorkbook
	}
	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != "" {
		return name, nil
	}
	return sheets[0], nil
}

// ReadTable 将工作表读为带类型的单元格表格
func ReadTable(f *excelize.File, sheet string) (*model.Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	out := make([][]model.Cell, len(rows))
	for r, row := range rows {
		cells := make([]model.Cell, len(row))
		for c, raw := range row {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheet, cellName)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell %s!%s: %w", sheet, cellName, err)
			}
			cells[c] = typedCell(cellType, raw)
		}
		out[r] = cells
	}
	return model.NewTable(sheet, out), nil
}

// typedCell 数值单元格（无类型标记或 n）解析为数值，其余一律作为文本
func typedCell(cellType excelize.CellType, raw string) model.Cell {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return model.NumberCell(v)
		}
	}
	return model.TextCell(raw)
}
