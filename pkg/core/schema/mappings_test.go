package schema

import "testing"

func TestNormalizeHeaderVariants(t *testing.T) {
	variants := []string{"Employee ID", "employee_id", " EMPLOYEE ID ", "Employee-Id", "employee   id"}
	for _, v := range variants {
		if got := NormalizeHeader(v); got != "employee id" {
			t.Errorf("NormalizeHeader(%q) = %q, want \"employee id\"", v, got)
		}
	}
}

func TestMapRowSalaryVendorHeaders(t *testing.T) {
	row := RawRow{
		"employee number":       "E100",
		"employee full name":    "Jane Doe",
		"base pay all countries": "95000",
		"currency":              "USD",
		"favorite color":        "teal", // no synonym, must be dropped
	}
	mapped := MapRow(row, SalaryFields)

	if got := StringAt(mapped, "employeeId"); got != "E100" {
		t.Errorf("employeeId = %q, want E100", got)
	}
	if got := StringAt(mapped, "name"); got != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", got)
	}
	if got, ok := NumberAt(mapped, "baseSalary"); !ok || got != 95000 {
		t.Errorf("baseSalary = %v (ok=%v), want 95000", got, ok)
	}
	if _, present := mapped["favorite color"]; present {
		t.Error("unmapped source column leaked into mapped row")
	}
	if len(mapped) != 4 {
		t.Errorf("mapped %d fields, want 4", len(mapped))
	}
}

func TestMapRowAliasPriority(t *testing.T) {
	// "base salary" outranks "annual salary" in the alias list.
	row := RawRow{
		"base salary":   "80000",
		"annual salary": "90000",
	}
	mapped := MapRow(row, SalaryFields)
	if got, _ := NumberAt(mapped, "baseSalary"); got != 80000 {
		t.Errorf("baseSalary = %v, want 80000 (higher-priority alias)", got)
	}
}

func TestMapRowSkipsEmptyCells(t *testing.T) {
	row := RawRow{
		"base salary":   "",
		"annual salary": "90000",
	}
	mapped := MapRow(row, SalaryFields)
	if got, _ := NumberAt(mapped, "baseSalary"); got != 90000 {
		t.Errorf("baseSalary = %v, want fallthrough to 90000", got)
	}
}

func TestPerformanceTableDivergesFromSalaryTable(t *testing.T) {
	// The same raw header means different things per sheet type.
	row := RawRow{
		"employee id":                    "E1",
		"identified as future talent?":   "Yes",
	}
	mapped := MapRow(row, PerformanceFields)
	if got, ok := NumberAt(mapped, "retentionRisk"); !ok || got != 1 {
		t.Errorf("retentionRisk = %v (ok=%v), want 1", got, ok)
	}
	if _, present := mapped["futureTalent"]; present {
		t.Error("future-talent header must feed retentionRisk in the performance table")
	}
}

func TestSynonymTablesAreInjective(t *testing.T) {
	for name, table := range map[string][]FieldAliases{
		"salary":      SalaryFields,
		"performance": PerformanceFields,
	} {
		seen := make(map[string]string)
		for _, fa := range table {
			for _, alias := range fa.Aliases {
				if prev, dup := seen[alias]; dup {
					t.Errorf("%s table: alias %q maps to both %s and %s", name, alias, prev, fa.Field)
				}
				seen[alias] = fa.Field
				if alias != NormalizeHeader(alias) {
					t.Errorf("%s table: alias %q is not in normalized form", name, alias)
				}
			}
		}
	}
}
