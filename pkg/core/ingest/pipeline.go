package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/validate"
)

const criticalFailureMessage = "Could not process the file. Please check that it is a valid CSV, XLSX, or XLS export with an Employee ID column and, for salary sheets, a Base Salary column."

// ProcessFile runs the full ingestion pipeline for one uploaded file:
// pre-validate, decode, structural check, map, merge, row-validate.
// It always returns a well-formed result; no failure mode escapes as an
// error or panic. Each call is independent and side-effect free, so
// files may be ingested concurrently.
func ProcessFile(ctx context.Context, fileName string, data []byte, expected schema.FileType) (result *schema.FileUploadResult) {
	result = emptyResult(fileName)
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"file": fileName, "panic": r}).
				Error("ingestion pipeline recovered from unexpected failure")
			result = emptyResult(fileName)
			result.Errors = append(result.Errors, criticalFailureMessage)
		}
	}()

	if err := CheckFile(fileName, len(data)); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Errors = append(result.Errors, "Upload was cancelled")
		return result
	}

	raw, err := DecodeFile(fileName, data)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.RowCount = len(raw)

	structural := CheckStructure(raw)
	if !structural.OK {
		result.Errors = append(result.Errors, structural.Errors...)
		for _, w := range structural.Warnings {
			result.Errors = append(result.Errors, "Warning: "+w)
		}
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Errors = append(result.Errors, "Upload was cancelled")
		return result
	}

	fileType := expected
	if fileType == schema.FileTypeUnknown {
		fileType = DetectType(raw)
	}
	var mapped []schema.MappedRow
	switch fileType {
	case schema.FileTypeSalary:
		mapped = schema.MapRows(raw, schema.SalaryFields)
	case schema.FileTypePerformance:
		mapped = schema.MapRows(raw, schema.PerformanceFields)
	default:
		fileType, mapped = bestMapping(raw)
	}
	result.FileType = fileType

	// Combined exports: salary sheets that also carry performance
	// columns get those fields merged in row by row.
	if fileType == schema.FileTypeSalary && HasPerformanceHints(raw) {
		mergePerformanceByIndex(mapped, schema.MapRows(raw, schema.PerformanceFields))
	}

	validateRow := validate.ForType(fileType)
	var hardErrors, warnings []string
	for i, row := range mapped {
		rowNum := i + 2 // 1-indexed plus header row
		res := validateRow(row, rowNum)
		for _, e := range res.Errors {
			hardErrors = append(hardErrors, fmt.Sprintf("Row %d: %s", rowNum, e))
		}
		for _, w := range res.Warnings {
			warnings = append(warnings, fmt.Sprintf("Warning: Row %d: %s", rowNum, w))
		}
		if !res.IsValid {
			continue
		}
		if fileType == schema.FileTypePerformance {
			result.Data = append(result.Data, schema.EmployeeFromPerformance(row))
		} else {
			result.Data = append(result.Data, schema.EmployeeFromSalary(row))
		}
	}
	for _, w := range structural.Warnings {
		warnings = append(warnings, "Warning: "+w)
	}

	result.ValidRows = len(result.Data)
	result.Errors = append(result.Errors, hardErrors...)
	result.Errors = append(result.Errors, warnings...)

	logrus.WithFields(logrus.Fields{
		"file":      fileName,
		"fileType":  fileType,
		"rows":      result.RowCount,
		"validRows": result.ValidRows,
		"errors":    len(hardErrors),
		"warnings":  len(warnings),
	}).Info("file ingested")
	return result
}

// bestMapping maps the rows against both synonym tables and adopts
// whichever yields the higher row validity rate, salary on a tie.
func bestMapping(raw []schema.RawRow) (schema.FileType, []schema.MappedRow) {
	salaryRows := schema.MapRows(raw, schema.SalaryFields)
	perfRows := schema.MapRows(raw, schema.PerformanceFields)

	if validityRate(salaryRows, validate.SalaryRow) >= validityRate(perfRows, validate.PerformanceRow) {
		return schema.FileTypeSalary, salaryRows
	}
	return schema.FileTypePerformance, perfRows
}

func validityRate(rows []schema.MappedRow, check func(schema.MappedRow, int) schema.ValidationResult) float64 {
	if len(rows) == 0 {
		return 0
	}
	valid := 0
	for i, row := range rows {
		if check(row, i+2).IsValid {
			valid++
		}
	}
	return float64(valid) / float64(len(rows))
}

// mergePerformanceByIndex copies performance fields onto salary rows at
// the same position. Precondition: both mappings were produced from the
// same RawRow slice in the same order and neither dropped rows, so index
// i refers to the same sheet row on both sides. This positional join is
// only sound for combined exports; cross-file joins go through
// MergeEmployees instead.
func mergePerformanceByIndex(salaryRows, perfRows []schema.MappedRow) {
	for i := range salaryRows {
		if i >= len(perfRows) {
			return
		}
		for _, field := range []string{"performanceRating", "businessImpactScore", "retentionRisk"} {
			if v, ok := perfRows[i][field]; ok {
				salaryRows[i][field] = v
			}
		}
	}
}

// MergeEmployees enriches salary-sheet employees with performance
// records from a separately uploaded performance sheet, joined by
// employee id. Performance rows without a salary match are dropped; a
// performance record alone cannot be analyzed.
func MergeEmployees(employees []*schema.Employee, performance []*schema.Employee) []*schema.Employee {
	byID := make(map[string]*schema.PerformanceRecord, len(performance))
	for _, p := range performance {
		if p.Performance != nil && p.EmployeeID != "" {
			byID[normalizeID(p.EmployeeID)] = p.Performance
		}
	}
	for _, emp := range employees {
		if perf, ok := byID[normalizeID(emp.EmployeeID)]; ok {
			emp.Performance = perf
		}
	}
	return employees
}

// UpsertEmployees folds freshly ingested salary rows into the working
// list. Re-uploaded employees take the new salary data but keep their
// existing performance record and proposed raise unless the upload
// carries replacements; unseen ids are appended in upload order.
func UpsertEmployees(existing, incoming []*schema.Employee) []*schema.Employee {
	index := make(map[string]int, len(existing))
	out := make([]*schema.Employee, len(existing))
	copy(out, existing)
	for i, emp := range out {
		index[normalizeID(emp.EmployeeID)] = i
	}

	for _, emp := range incoming {
		i, ok := index[normalizeID(emp.EmployeeID)]
		if !ok {
			index[normalizeID(emp.EmployeeID)] = len(out)
			out = append(out, emp)
			continue
		}
		prev := out[i]
		if emp.Performance == nil {
			emp.Performance = prev.Performance
		}
		emp.ProposedRaise = prev.ProposedRaise
		out[i] = emp
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func emptyResult(fileName string) *schema.FileUploadResult {
	return &schema.FileUploadResult{
		FileName: fileName,
		FileType: schema.FileTypeUnknown,
		Errors:   []string{},
		Data:     []*schema.Employee{},
	}
}
