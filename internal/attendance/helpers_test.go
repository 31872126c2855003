package attendance

import (
	"attendsheet/internal/config"
	"attendsheet/internal/model"
)

// row 按列构造一行；string 为文本，int/float64 为数值，nil 为空
func row(vals ...any) []model.Cell {
	out := make([]model.Cell, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
			out[i] = model.Cell{}
		case string:
			out[i] = model.TextCell(x)
		case int:
			out[i] = model.NumberCell(float64(x))
		case float64:
			out[i] = model.NumberCell(x)
		}
	}
	return out
}

// testConfig 测试用布局：A 大区，B 小区，C 姓名，D 年龄，周列从 E 开始
func testConfig() config.AttendanceConfig {
	cfg := config.DefaultAttendanceConfig()
	cfg.MainDistrictColumn = 0
	cfg.SubDistrictColumn = 1
	cfg.NameColumn = 2
	cfg.AgeColumn = 3
	cfg.StartColumn = 4
	return cfg
}

// twoWeekRows 二大區一：A 第一週到、第二週未到；B 相反；C 两周都到
func twoWeekRows() [][]model.Cell {
	return [][]model.Cell{
		row(nil, nil, nil, nil, "2025年3月"),
		row(nil, nil, nil, nil, "第一週", "第二週"),
		row("二大區", "一", "A", "大專", 1, 0),
		row("二大區", "一", "B", "中學", 0, 1),
		row("二大區", "一", "C", "年長", 1, 1),
	}
}
