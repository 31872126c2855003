package model

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateSheet = errors.New("duplicate summary sheet")
	ErrNoWeekColumns  = errors.New("no week columns detected")
	ErrNoAttendance   = errors.New("no weeks with attendees")
	ErrEmptyWorkbook  = errors.New("workbook has no sheets")
)

// DuplicateSheetError 生成的汇总表名已存在
type DuplicateSheetError struct {
	SheetName string
}

func (e *DuplicateSheetError) Error() string {
	return fmt.Sprintf("sheet name '%s' already exists", e.SheetName)
}

func (e *DuplicateSheetError) Unwrap() error {
	return ErrDuplicateSheet
}
