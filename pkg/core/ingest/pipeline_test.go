package ingest

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

func TestProcessFileVendorSalaryCSV(t *testing.T) {
	data := []byte("Employee Number,Employee Full Name,Base Pay All Countries,Currency,Country\n" +
		"E100,Jane Doe,\"95,000\",USD,Ireland\n")
	res := ProcessFile(context.Background(), "export.csv", data, schema.FileTypeUnknown)

	if res.FileType != schema.FileTypeSalary {
		t.Fatalf("fileType = %s, want salary", res.FileType)
	}
	if res.RowCount != 1 || res.ValidRows != 1 {
		t.Fatalf("rowCount=%d validRows=%d, want 1/1", res.RowCount, res.ValidRows)
	}
	emp := res.Data[0]
	if emp.EmployeeID != "E100" || emp.Name != "Jane Doe" {
		t.Errorf("employee = %s/%s, want E100/Jane Doe", emp.EmployeeID, emp.Name)
	}
	if emp.BaseSalary == nil || *emp.BaseSalary != 95000 {
		t.Errorf("baseSalary = %v, want 95000", emp.BaseSalary)
	}
	if emp.Country != "Ireland" || emp.Currency != "USD" {
		t.Errorf("country/currency = %s/%s", emp.Country, emp.Currency)
	}
	for _, e := range res.Errors {
		if !strings.HasPrefix(e, "Warning:") {
			t.Errorf("unexpected hard error: %q", e)
		}
	}
}

func TestProcessFileRowErrorsAndWarnings(t *testing.T) {
	data := []byte("Employee ID,Employee Name,Base Salary\n" +
		"E1,Jane Doe,\n" + // missing base salary
		"E2,Bob Lee,80000\n")
	res := ProcessFile(context.Background(), "salaries.csv", data, schema.FileTypeSalary)

	if res.RowCount != 2 || res.ValidRows != 1 {
		t.Fatalf("rowCount=%d validRows=%d, want 2/1", res.RowCount, res.ValidRows)
	}
	if len(res.Errors) == 0 || res.Errors[0] != "Row 2: Valid base salary is required" {
		t.Fatalf("errors[0] = %v, want \"Row 2: Valid base salary is required\"", res.Errors)
	}

	// Hard errors come first, then "Warning:"-prefixed entries.
	seenWarning := false
	for _, e := range res.Errors {
		if strings.HasPrefix(e, "Warning:") {
			seenWarning = true
		} else if seenWarning {
			t.Fatalf("hard error %q after warnings", e)
		}
	}
	if !seenWarning {
		t.Error("expected missing country/currency warnings")
	}
}

func TestProcessFileUnsupportedType(t *testing.T) {
	res := ProcessFile(context.Background(), "notes.docx", []byte("hello"), schema.FileTypeUnknown)
	if res.ValidRows != 0 || len(res.Data) != 0 {
		t.Errorf("expected no data for unsupported file, got %d rows", len(res.Data))
	}
	want := "Unsupported file type: docx. Please use CSV, XLSX, or XLS files."
	if len(res.Errors) != 1 || res.Errors[0] != want {
		t.Errorf("errors = %v, want [%q]", res.Errors, want)
	}
}

func TestProcessFileUnrecognizableColumns(t *testing.T) {
	data := []byte("foo,bar\n1,2\n")
	res := ProcessFile(context.Background(), "random.csv", data, schema.FileTypeUnknown)
	if res.ValidRows != 0 {
		t.Errorf("validRows = %d, want 0", res.ValidRows)
	}
	if len(res.Errors) == 0 || !strings.Contains(res.Errors[0], "No recognizable columns") {
		t.Errorf("errors = %v, want structural failure", res.Errors)
	}
}

func TestProcessFileCombinedExport(t *testing.T) {
	data := []byte("Employee ID,Employee Name,Base Salary,Performance Rating,Retention Risk\n" +
		"E1,Jane Doe,95000,4.8,Yes\n")
	res := ProcessFile(context.Background(), "combined.csv", data, schema.FileTypeUnknown)

	if res.FileType != schema.FileTypeSalary {
		t.Fatalf("fileType = %s, want salary (combined exports are salary sheets)", res.FileType)
	}
	if res.ValidRows != 1 {
		t.Fatalf("validRows = %d, want 1", res.ValidRows)
	}
	perf := res.Data[0].Performance
	if perf == nil {
		t.Fatal("performance fields not merged from combined export")
	}
	if n, ok := perf.PerformanceRating.Numeric(); !ok || n != 4.8 {
		t.Errorf("performanceRating = %v, want 4.8", perf.PerformanceRating)
	}
	if n, ok := perf.RetentionRisk.Numeric(); !ok || n != 1 {
		t.Errorf("retentionRisk = %v, want flag 1", perf.RetentionRisk)
	}
}

func TestProcessFilePerformanceSheet(t *testing.T) {
	data := []byte("Employee ID,Overall Rating,Identified as Future Talent?\n" +
		"E1,Exceeds Expectations,Yes\n" +
		"E2,7.5,No\n") // out-of-scale rating, warning only
	res := ProcessFile(context.Background(), "perf.csv", data, schema.FileTypePerformance)

	if res.FileType != schema.FileTypePerformance {
		t.Fatalf("fileType = %s, want performance", res.FileType)
	}
	if res.ValidRows != 2 {
		t.Fatalf("validRows = %d, want 2 (range issues are warnings)", res.ValidRows)
	}
	if res.Data[0].Performance.PerformanceRating.Text != "Exceeds Expectations" {
		t.Errorf("textual rating lost: %+v", res.Data[0].Performance.PerformanceRating)
	}
	found := false
	for _, e := range res.Errors {
		if strings.Contains(e, "outside the 0-5 scale") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected out-of-scale warning, errors = %v", res.Errors)
	}
}

func TestProcessFileIdempotent(t *testing.T) {
	data := []byte("Employee ID,Name,Base Salary\nE1,Jane,95000\nE2,,\n")
	a := ProcessFile(context.Background(), "salaries.csv", data, schema.FileTypeSalary)
	b := ProcessFile(context.Background(), "salaries.csv", data, schema.FileTypeSalary)
	if !reflect.DeepEqual(a, b) {
		t.Error("same bytes produced different results")
	}
}

func TestProcessFileInvariants(t *testing.T) {
	files := map[string][]byte{
		"a.csv": []byte("Employee ID,Name,Base Salary\nE1,Jane,95000\nE2,,\nE3,Ana,0\n"),
		"b.csv": []byte("Employee ID,Overall Rating\nE1,4\n,3\n"),
		"c.csv": []byte("junk"),
	}
	for name, data := range files {
		res := ProcessFile(context.Background(), name, data, schema.FileTypeUnknown)
		if res == nil {
			t.Fatalf("%s: nil result", name)
		}
		if res.ValidRows != len(res.Data) {
			t.Errorf("%s: validRows=%d but len(data)=%d", name, res.ValidRows, len(res.Data))
		}
		if res.ValidRows > res.RowCount {
			t.Errorf("%s: validRows=%d > rowCount=%d", name, res.ValidRows, res.RowCount)
		}
	}
}

func TestProcessFileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := ProcessFile(ctx, "salaries.csv", []byte("Employee ID,Base Salary\nE1,1\n"), schema.FileTypeSalary)
	if res.ValidRows != 0 {
		t.Errorf("validRows = %d, want 0 after cancellation", res.ValidRows)
	}
}

func TestMergeEmployeesByID(t *testing.T) {
	salary := 95000.0
	employees := []*schema.Employee{
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E1", Name: "Jane", BaseSalary: &salary}},
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E2", Name: "Bob", BaseSalary: &salary}},
	}
	rating := 4.5
	performance := []*schema.Employee{
		// Case-insensitive join on the id.
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "e1"}, Performance: &schema.PerformanceRecord{
			EmployeeID:        "e1",
			PerformanceRating: schema.FlexValue{Value: &rating},
		}},
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E9"}, Performance: &schema.PerformanceRecord{EmployeeID: "E9"}},
	}

	merged := MergeEmployees(employees, performance)
	if len(merged) != 2 {
		t.Fatalf("len = %d, want 2 (unmatched performance rows dropped)", len(merged))
	}
	if merged[0].Performance == nil {
		t.Fatal("E1 performance not attached")
	}
	if n, _ := merged[0].Performance.PerformanceRating.Numeric(); n != 4.5 {
		t.Errorf("E1 rating = %v, want 4.5", n)
	}
	if merged[1].Performance != nil {
		t.Error("E2 should have no performance record")
	}
}

func TestUpsertEmployeesKeepsLocalState(t *testing.T) {
	oldSalary, newSalary := 90000.0, 95000.0
	perf := &schema.PerformanceRecord{EmployeeID: "E1"}
	existing := []*schema.Employee{
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E1", BaseSalary: &oldSalary}, Performance: perf, ProposedRaise: 4000},
	}
	incoming := []*schema.Employee{
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E1", BaseSalary: &newSalary}},
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E2", BaseSalary: &newSalary}},
	}

	out := UpsertEmployees(existing, incoming)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if *out[0].BaseSalary != newSalary {
		t.Errorf("salary not refreshed: %v", *out[0].BaseSalary)
	}
	if out[0].Performance != perf {
		t.Error("existing performance record lost on re-upload")
	}
	if out[0].ProposedRaise != 4000 {
		t.Errorf("proposedRaise = %v, want 4000 preserved", out[0].ProposedRaise)
	}
	if out[1].EmployeeID != "E2" {
		t.Errorf("new employee not appended: %s", out[1].EmployeeID)
	}
}
