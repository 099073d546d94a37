package schema

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericFields lists canonical fields that take currency/number coercion.
var numericFields = map[string]bool{
	"baseSalary":          true,
	"baseSalaryUSD":       true,
	"salaryGradeMin":      true,
	"salaryGradeMid":      true,
	"salaryGradeMax":      true,
	"comparatio":          true,
	"timeInRole":          true,
	"businessImpactScore": true,
}

// nonNumericRe strips everything that cannot be part of a number:
// currency symbols, thousands separators, quotes, stray unit text.
var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// CoerceField applies the field-class coercion rules to one raw cell.
// It never fails: when a value cannot be coerced the original string is
// returned and row validation decides whether that is fatal.
func CoerceField(field, raw string) interface{} {
	switch {
	case numericFields[field]:
		if n, ok := CoerceNumber(raw); ok {
			return n
		}
		return raw
	case field == "performanceRating":
		return coerceRating(raw)
	case field == "retentionRisk":
		return coerceRetention(raw)
	case field == "belowRangeMinimum":
		return coerceFlag(raw)
	default:
		return raw
	}
}

// CoerceNumber parses a number out of spreadsheet text: "$82,500.00",
// "\"95000\"", "82 500" and plain "95000" all yield 82500/95000.
func CoerceNumber(raw string) (float64, bool) {
	cleaned := nonNumericRe.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// coerceRating keeps textual ratings as text, converts percentage text
// ("87%") to a decimal fraction, and passes numeric ratings through.
func coerceRating(raw string) interface{} {
	trimmed := strings.TrimSpace(raw)
	if strings.HasSuffix(trimmed, "%") {
		if n, ok := CoerceNumber(strings.TrimSuffix(trimmed, "%")); ok {
			return n / 100
		}
		return trimmed
	}
	if n, ok := parsePlainNumber(trimmed); ok {
		return n
	}
	return trimmed
}

// coerceRetention maps yes/no style flags to 1/0 and leaves anything
// else (a 0-100 score, or text) as the best-effort value.
func coerceRetention(raw string) interface{} {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true":
		return float64(1)
	case "no", "n", "false":
		return float64(0)
	}
	if n, ok := parsePlainNumber(raw); ok {
		return n
	}
	return strings.TrimSpace(raw)
}

func coerceFlag(raw string) interface{} {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return true
	case "no", "n", "false", "0", "":
		return false
	}
	return strings.TrimSpace(raw)
}

// parsePlainNumber accepts only values that already look like numbers,
// so free text such as "Exceeds Expectations" is not mangled by symbol
// stripping.
func parsePlainNumber(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// NumberAt reads a coerced numeric value out of a mapped row.
func NumberAt(row MappedRow, field string) (float64, bool) {
	v, ok := row[field]
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

// StringAt reads a string value out of a mapped row.
func StringAt(row MappedRow, field string) string {
	v, ok := row[field]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
