package model

import (
	"strconv"
	"strings"
)

// CellKind 单元格取值类型
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell 源表单元格（文本 / 数值 / 空）
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell 文本单元格，空白文本视为空单元格
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell 数值单元格
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// IsEmpty 是否为空
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// IsOne 数值且等于 1（出席标记）；文本 "1" 不算
func (c Cell) IsOne() bool {
	return c.Kind == CellNumber && c.Number == 1
}

// String 返回展示文本；整数值不带小数
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}
