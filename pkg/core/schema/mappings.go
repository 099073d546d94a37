package schema

import "strings"

// FieldAliases binds one canonical field to its ordered list of source
// header synonyms. Aliases are consulted in priority order and the first
// non-empty cell wins, so the tables stay deterministic and auditable
// independent of map iteration order. Each alias must appear under at
// most one field per table.
type FieldAliases struct {
	Field   string
	Aliases []string
}

// SalaryFields maps vendor salary-export headers to canonical fields.
// Alias strings are in normalized form (see NormalizeHeader).
var SalaryFields = []FieldAliases{
	{"employeeId", []string{
		"employee id", "employee number", "emp id", "employee no",
		"worker id", "associate id", "personnel number", "staff id",
	}},
	{"name", []string{
		"employee name", "name", "full name", "employee full name",
		"worker name", "display name",
	}},
	{"firstName", []string{
		"first name", "given name", "legal first name", "preferred first name",
	}},
	{"lastName", []string{
		"last name", "surname", "family name", "legal last name",
	}},
	{"email", []string{
		"email", "email address", "work email", "e mail",
	}},
	{"country", []string{
		"country", "work country", "country code", "location country", "location",
	}},
	{"currency", []string{
		"currency", "currency code", "pay currency", "salary currency",
		"local currency",
	}},
	{"baseSalary", []string{
		"base salary", "base pay", "base pay all countries", "annual salary",
		"annual base salary", "current base salary", "current salary",
		"salary", "annual pay",
	}},
	{"baseSalaryUSD", []string{
		"base salary usd", "base pay usd", "annual salary usd", "usd salary",
		"salary in usd", "base salary (usd)",
	}},
	{"salaryGradeMin", []string{
		"salary grade min", "salary range min", "range min", "grade min",
		"pay range min", "range minimum", "salary band min", "minimum",
	}},
	{"salaryGradeMid", []string{
		"salary grade mid", "salary range mid", "range mid", "grade mid",
		"pay range mid", "midpoint", "market midpoint", "range midpoint",
	}},
	{"salaryGradeMax", []string{
		"salary grade max", "salary range max", "range max", "grade max",
		"pay range max", "range maximum", "salary band max", "maximum",
	}},
	{"comparatio", []string{
		"comparatio", "compa ratio", "comparatio %", "compa",
	}},
	{"timeInRole", []string{
		"time in role", "time in role (months)", "months in role",
		"time in position", "time in job",
	}},
	{"hireDate", []string{
		"hire date", "date of hire", "original hire date", "start date",
		"employment start date",
	}},
	{"roleStartDate", []string{
		"role start date", "job entry date", "position start date", "date in role",
	}},
	{"lastRaiseDate", []string{
		"last raise date", "last increase date", "last salary change",
		"last salary change date", "last comp change",
	}},
	{"departmentCode", []string{
		"department", "department code", "dept", "cost center", "org unit",
	}},
	{"jobTitle", []string{
		"job title", "title", "position", "job name", "role",
	}},
	{"managerId", []string{
		"manager id", "supervisor id", "manager employee id",
	}},
	{"managerName", []string{
		"manager name", "manager", "supervisor", "reports to",
	}},
	{"gradeLevel", []string{
		"grade level", "grade", "job level", "level", "band", "job grade",
	}},
	{"salaryRangeSegment", []string{
		"salary range segment", "range segment", "range position", "quartile",
	}},
	{"belowRangeMinimum", []string{
		"below range minimum", "below range min", "below min", "below range",
	}},
}

// PerformanceFields maps vendor performance-export headers to canonical
// fields. Kept separate from SalaryFields because the same raw header can
// mean different things per sheet type ("identified as future talent?"
// feeds the retention flag here).
var PerformanceFields = []FieldAliases{
	{"employeeId", []string{
		"employee id", "employee number", "emp id", "employee no",
		"worker id", "associate id", "personnel number", "staff id",
	}},
	{"performanceRating", []string{
		"performance rating", "rating", "perf rating", "overall rating",
		"performance score", "latest rating", "annual rating", "performance",
	}},
	{"futureTalent", []string{
		"future talent", "high potential", "hipo", "top talent",
	}},
	{"movementReadiness", []string{
		"movement readiness", "readiness", "mobility", "promotion readiness",
	}},
	{"proposedTalentActions", []string{
		"proposed talent actions", "talent actions", "talent action",
		"proposed actions",
	}},
	{"businessImpactScore", []string{
		"business impact score", "business impact", "impact score", "impact",
	}},
	{"retentionRisk", []string{
		"retention risk", "retention risk score", "identified as future talent?",
		"risk of leaving", "flight risk", "attrition risk",
	}},
}

// NormalizeHeader lowercases a header, turns underscores and hyphens into
// spaces, collapses runs of whitespace, and trims. "Employee ID",
// "employee_id" and " EMPLOYEE ID " all normalize to "employee id".
func NormalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// MapRow maps one raw row onto canonical fields using the given table and
// coerces each matched value. Source columns with no alias match are
// dropped silently; unmatched headers are never an error.
func MapRow(row RawRow, fields []FieldAliases) MappedRow {
	mapped := make(MappedRow)
	for _, fa := range fields {
		for _, alias := range fa.Aliases {
			raw, ok := row[alias]
			if !ok {
				continue
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			mapped[fa.Field] = CoerceField(fa.Field, raw)
			break
		}
	}
	return mapped
}

// MapRows maps every raw row, preserving order and never dropping rows.
// Row order preservation is a precondition of the positional
// performance merge in the ingestion pipeline.
func MapRows(rows []RawRow, fields []FieldAliases) []MappedRow {
	out := make([]MappedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapRow(row, fields))
	}
	return out
}

// HasField reports whether any alias of the named field is present among
// the normalized headers. Used by format detection.
func HasField(headers map[string]bool, fields []FieldAliases, name string) bool {
	for _, fa := range fields {
		if fa.Field != name {
			continue
		}
		for _, alias := range fa.Aliases {
			if headers[alias] {
				return true
			}
		}
	}
	return false
}
