package ingest

import (
	"strings"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// StructuralResult is the outcome of whole-file validation, run before
// any column mapping. A failed check short-circuits ingestion.
type StructuralResult struct {
	OK       bool
	Errors   []string
	Warnings []string
}

// headerSet collects every normalized header seen across the decoded
// rows. Rows from one sheet share headers, but short exports sometimes
// drop trailing blank columns per row.
func headerSet(rows []schema.RawRow) map[string]bool {
	headers := make(map[string]bool)
	for _, row := range rows {
		for h := range row {
			headers[h] = true
		}
	}
	return headers
}

// DetectType classifies the decoded rows as a salary or performance
// export from their column signatures. Salary wins when both signatures
// are present (combined exports are salary sheets with performance
// columns appended).
func DetectType(rows []schema.RawRow) schema.FileType {
	headers := headerSet(rows)
	if hasSalarySignature(headers) {
		return schema.FileTypeSalary
	}
	if hasPerformanceSignature(headers) {
		return schema.FileTypePerformance
	}
	return schema.FileTypeUnknown
}

func hasSalarySignature(headers map[string]bool) bool {
	return schema.HasField(headers, schema.SalaryFields, "baseSalary") ||
		schema.HasField(headers, schema.SalaryFields, "salaryGradeMid") ||
		schema.HasField(headers, schema.SalaryFields, "salaryGradeMin")
}

func hasPerformanceSignature(headers map[string]bool) bool {
	return schema.HasField(headers, schema.PerformanceFields, "performanceRating") ||
		schema.HasField(headers, schema.PerformanceFields, "futureTalent") ||
		schema.HasField(headers, schema.PerformanceFields, "retentionRisk")
}

// HasPerformanceHints reports whether any raw header textually mentions
// performance data. Drives the combined-export merge in the pipeline.
func HasPerformanceHints(rows []schema.RawRow) bool {
	for h := range headerSet(rows) {
		if strings.Contains(h, "performance") || strings.Contains(h, "rating") {
			return true
		}
	}
	return false
}

// CheckStructure flags hard failures (no rows, no recognizable headers)
// and soft warnings (no obvious sheet-type signature) before mapping is
// attempted.
func CheckStructure(rows []schema.RawRow) StructuralResult {
	if len(rows) == 0 {
		return StructuralResult{Errors: []string{"File contains no data rows"}}
	}

	headers := headerSet(rows)
	if !anyKnownHeader(headers) {
		return StructuralResult{Errors: []string{
			"No recognizable columns found. Expected salary columns (Employee ID, Base Salary) or performance columns (Employee ID, Performance Rating).",
		}}
	}

	res := StructuralResult{OK: true}
	if !hasSalarySignature(headers) && !hasPerformanceSignature(headers) {
		res.Warnings = append(res.Warnings,
			"Could not determine sheet type from columns, best-effort mapping will be used")
	}
	return res
}

func anyKnownHeader(headers map[string]bool) bool {
	for _, table := range [][]schema.FieldAliases{schema.SalaryFields, schema.PerformanceFields} {
		for _, fa := range table {
			for _, alias := range fa.Aliases {
				if headers[alias] {
					return true
				}
			}
		}
	}
	return false
}
