package model

// Table 已反序列化的二维表格（0 基行列）
type Table struct {
	Name string
	Rows [][]Cell
}

// NewTable 由行数据构建表格
func NewTable(name string, rows [][]Cell) *Table {
	return &Table{Name: name, Rows: rows}
}

// Cell 读取单元格；越界返回空单元格
func (t *Table) Cell(row, col int) Cell {
	if t == nil || row < 0 || col < 0 || row >= len(t.Rows) {
		return Cell{}
	}
	r := t.Rows[row]
	if col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// RowCount 行数
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColCount 最宽一行的列数
func (t *Table) ColCount() int {
	if t == nil {
		return 0
	}
	max := 0
	for _, r := range t.Rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}
