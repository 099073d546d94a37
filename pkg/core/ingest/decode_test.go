package ingest

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCheckFileRejectsUnsupportedExtension(t *testing.T) {
	err := CheckFile("notes.docx", 100)
	if err == nil {
		t.Fatal("expected error for .docx upload")
	}
	want := "Unsupported file type: docx. Please use CSV, XLSX, or XLS files."
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestCheckFileRejectsOversize(t *testing.T) {
	if err := CheckFile("big.csv", MaxFileSize+1); err == nil {
		t.Error("expected error for oversize file")
	}
	if err := CheckFile("ok.csv", MaxFileSize); err != nil {
		t.Errorf("file at size limit rejected: %v", err)
	}
}

func TestDecodeCSVWithBOM(t *testing.T) {
	data := []byte("\xef\xbb\xbfEmployee ID,Base Salary\nE1,95000\n")
	rows, err := DecodeFile("salaries.csv", data)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["employee id"] != "E1" {
		t.Errorf("employee id = %q; BOM not stripped from first header", rows[0]["employee id"])
	}
}

func TestDecodeCSVUTF16(t *testing.T) {
	// UTF-16LE with BOM, as saved by Excel's "Unicode Text" export.
	text := "Employee ID,Base Salary\nE1,95000\n"
	data := []byte{0xff, 0xfe}
	for _, r := range text {
		data = append(data, byte(r), 0x00)
	}

	rows, err := DecodeFile("salaries.csv", data)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["employee id"] != "E1" || rows[0]["base salary"] != "95000" {
		t.Errorf("row = %v, want transcoded UTF-16 content", rows[0])
	}
}

func TestDecodeCSVRaggedRows(t *testing.T) {
	data := []byte("Employee ID,Name,Base Salary\n" +
		"E1,Jane\n" + // short row, padded
		"E2,Bob,80000,extra\n" + // long row, truncated
		",,\n" + // all blank, dropped
		"E3,Ana,70000\n")
	rows, err := DecodeFile("salaries.csv", data)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (blank row dropped)", len(rows))
	}
	if got := rows[0]["base salary"]; got != "" {
		t.Errorf("short row base salary = %q, want empty pad", got)
	}
	if got := rows[1]["base salary"]; got != "80000" {
		t.Errorf("long row base salary = %q, want 80000", got)
	}
}

func TestDecodeCSVEmptyFile(t *testing.T) {
	if _, err := DecodeFile("empty.csv", []byte("")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	grid := [][]interface{}{
		{"Employee ID", "Employee Name", "Base Salary"},
		{"E1", "Jane Doe", 95000},
		{"E2", "Bob Lee", 80000},
	}
	for i, cells := range grid {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	rows, err := DecodeFile("salaries.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["employee name"] != "Jane Doe" {
		t.Errorf("employee name = %q, want Jane Doe", rows[0]["employee name"])
	}
	if rows[1]["base salary"] != "80000" {
		t.Errorf("base salary = %q, want 80000", rows[1]["base salary"])
	}
}

func TestDecodeXLSXGarbageBytes(t *testing.T) {
	if _, err := DecodeFile("salaries.xlsx", []byte("not a zip archive")); err == nil {
		t.Error("expected error for non-workbook bytes")
	}
}

func TestDecodeXLSMislabeledZipWorkbook(t *testing.T) {
	// Zip-based workbooks renamed to .xls must still decode.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Employee ID", "Base Salary"}
	row := []interface{}{"E1", 95000}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	rows, err := DecodeFile("salaries.xls", buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(rows) != 1 || rows[0]["employee id"] != "E1" {
		t.Errorf("rows = %v, want the single decoded row", rows)
	}
}

func TestDecodeXLSCorruptBytes(t *testing.T) {
	// OLE2 compound-file signature with a truncated body must error, not
	// panic or return empty rows.
	data := append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, []byte("truncated")...)
	if _, err := DecodeFile("salaries.xls", data); err == nil {
		t.Error("expected error for corrupt legacy workbook bytes")
	}
}
