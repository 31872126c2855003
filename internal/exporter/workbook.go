package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// EvaluationSheetName 转换工具可能留下的评估提示表
const EvaluationSheetName = "Evaluation Warning"

// DropEvaluationSheet 删除评估提示表（若存在）
func DropEvaluationSheet(f *excelize.File) (bool, error) {
	idx, err := f.GetSheetIndex(EvaluationSheetName)
	if err != nil {
		return false, err
	}
	if idx < 0 {
		return false, nil
	}
	if err := f.DeleteSheet(EvaluationSheetName); err != nil {
		return false, fmt.Errorf("delete %s: %w", EvaluationSheetName, err)
	}
	return true, nil
}

// WorkbookBytes 序列化工作簿
func WorkbookBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
