// Package validate holds the row-level acceptance rules for mapped
// salary and performance rows. Structural (whole-file) validation lives
// in the ingest package; this package only judges individual rows.
package validate

import (
	"fmt"
	"strings"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// SalaryRow checks one mapped salary row. Required: employee id, at
// least one name field, and a positive numeric base salary. Missing
// country/currency and a suspect time-in-role are warnings only.
// rowNum is the 1-indexed sheet row (data index + header offset).
func SalaryRow(row schema.MappedRow, rowNum int) schema.ValidationResult {
	res := schema.ValidationResult{Label: rowLabel(row, rowNum)}

	if schema.StringAt(row, "employeeId") == "" {
		res.Errors = append(res.Errors, "Employee ID is required")
	}
	if schema.StringAt(row, "name") == "" &&
		schema.StringAt(row, "firstName") == "" &&
		schema.StringAt(row, "lastName") == "" {
		res.Errors = append(res.Errors, "Employee name is required")
	}
	if salary, ok := schema.NumberAt(row, "baseSalary"); !ok || salary <= 0 {
		res.Errors = append(res.Errors, "Valid base salary is required")
	}

	if row["country"] == nil {
		res.Warnings = append(res.Warnings, "Country is missing")
	}
	if row["currency"] == nil {
		res.Warnings = append(res.Warnings, "Currency is missing, defaulting to USD")
	}
	if v, present := row["timeInRole"]; present {
		if n, ok := v.(float64); !ok {
			res.Warnings = append(res.Warnings, "Time in role is not a valid number of months")
		} else if n < 0 {
			res.Warnings = append(res.Warnings, "Time in role is negative")
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// PerformanceRow checks one mapped performance row. Only the employee id
// is required; out-of-range ratings and retention scores are warnings so
// suspect rows still flow through for review.
func PerformanceRow(row schema.MappedRow, rowNum int) schema.ValidationResult {
	res := schema.ValidationResult{Label: rowLabel(row, rowNum)}

	if schema.StringAt(row, "employeeId") == "" {
		res.Errors = append(res.Errors, "Employee ID is required")
	}
	if v, present := row["performanceRating"]; present {
		switch rating := v.(type) {
		case float64:
			if rating < 0 || rating > 5 {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("Performance rating %.2f is outside the 0-5 scale", rating))
			}
		case string:
			if strings.TrimSpace(rating) == "" {
				res.Warnings = append(res.Warnings, "Performance rating is empty")
			}
		}
	}
	if risk, ok := schema.NumberAt(row, "retentionRisk"); ok && (risk < 0 || risk > 100) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Retention risk %.0f is outside the 0-100 range", risk))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// ForType dispatches to the matching row validator.
func ForType(fileType schema.FileType) func(schema.MappedRow, int) schema.ValidationResult {
	if fileType == schema.FileTypePerformance {
		return PerformanceRow
	}
	return SalaryRow
}

func rowLabel(row schema.MappedRow, rowNum int) string {
	if id := schema.StringAt(row, "employeeId"); id != "" {
		return id
	}
	return fmt.Sprintf("Row %d", rowNum)
}
