package parser

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"attendsheet/internal/model"
)

func TestReadTable_TagsCellKinds(t *testing.T) {
	t.Parallel()

	wb := excelize.NewFile()
	t.Cleanup(func() { _ = wb.Close() })
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	row := []interface{}{"二大區", "一", nil, "王小明", nil, "大專", nil, nil, 1, 0, "1", 1.5}
	if err := wb.SetSheetRow(sheet, "A3", &row); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}

	tbl, err := ReadTable(wb, sheet)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tbl.RowCount() != 3 {
		t.Fatalf("rows=%d", tbl.RowCount())
	}
	if c := tbl.Cell(2, 0); c.Kind != model.CellText || c.Text != "二大區" {
		t.Fatalf("A3=%+v", c)
	}
	if c := tbl.Cell(2, 2); !c.IsEmpty() {
		t.Fatalf("C3 should be empty: %+v", c)
	}
	if c := tbl.Cell(2, 8); !c.IsOne() {
		t.Fatalf("I3 should be number 1: %+v", c)
	}
	if c := tbl.Cell(2, 9); c.Kind != model.CellNumber || c.Number != 0 {
		t.Fatalf("J3 should be number 0: %+v", c)
	}
	if c := tbl.Cell(2, 10); c.Kind != model.CellText || c.IsOne() {
		t.Fatalf("K3 text \"1\" must not count as attendance: %+v", c)
	}
	if c := tbl.Cell(2, 11); c.Kind != model.CellNumber || c.Number != 1.5 {
		t.Fatalf("L3=%+v", c)
	}
	if c := tbl.Cell(99, 99); !c.IsEmpty() {
		t.Fatalf("out of range should be empty")
	}
}

func TestOpenWorkbook_RoundTrip(t *testing.T) {
	t.Parallel()

	wb := excelize.NewFile()
	if err := wb.SetCellValue("Sheet1", "A1", "2025年1月"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	_ = wb.Close()

	f, err := OpenWorkbook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	name, err := InputSheetName(f)
	if err != nil || name != "Sheet1" {
		t.Fatalf("InputSheetName=%q err=%v", name, err)
	}
}

func TestOpenWorkbook_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := OpenWorkbook(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatalf("expected error for non-xlsx input")
	}
}
