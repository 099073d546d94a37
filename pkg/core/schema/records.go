package schema

import "strings"

// SalaryFromRow builds a canonical SalaryRecord from a mapped row.
// Currency defaults to "USD"; comparatio is recomputed from base salary
// and grade mid when the sheet did not carry it; a missing USD salary
// falls back to the local base salary (rates are never fetched, only
// ratios already in the data are used).
func SalaryFromRow(row MappedRow) *SalaryRecord {
	rec := &SalaryRecord{
		EmployeeID:         StringAt(row, "employeeId"),
		Name:               StringAt(row, "name"),
		FirstName:          StringAt(row, "firstName"),
		LastName:           StringAt(row, "lastName"),
		Email:              StringAt(row, "email"),
		Country:            StringAt(row, "country"),
		Currency:           strings.ToUpper(StringAt(row, "currency")),
		HireDate:           StringAt(row, "hireDate"),
		RoleStartDate:      StringAt(row, "roleStartDate"),
		LastRaiseDate:      StringAt(row, "lastRaiseDate"),
		DepartmentCode:     StringAt(row, "departmentCode"),
		JobTitle:           StringAt(row, "jobTitle"),
		ManagerID:          StringAt(row, "managerId"),
		ManagerName:        StringAt(row, "managerName"),
		GradeLevel:         StringAt(row, "gradeLevel"),
		SalaryRangeSegment: StringAt(row, "salaryRangeSegment"),
	}
	if rec.Currency == "" {
		rec.Currency = "USD"
	}
	if b, ok := row["belowRangeMinimum"].(bool); ok {
		rec.BelowRangeMinimum = b
	}
	rec.BaseSalary = floatPtrAt(row, "baseSalary")
	rec.BaseSalaryUSD = floatPtrAt(row, "baseSalaryUSD")
	rec.SalaryGradeMin = floatPtrAt(row, "salaryGradeMin")
	rec.SalaryGradeMid = floatPtrAt(row, "salaryGradeMid")
	rec.SalaryGradeMax = floatPtrAt(row, "salaryGradeMax")
	rec.Comparatio = floatPtrAt(row, "comparatio")
	rec.TimeInRole = floatPtrAt(row, "timeInRole")

	if rec.BaseSalaryUSD == nil && rec.BaseSalary != nil {
		v := *rec.BaseSalary
		rec.BaseSalaryUSD = &v
	}
	if rec.Comparatio == nil && rec.BaseSalary != nil && rec.SalaryGradeMid != nil && *rec.SalaryGradeMid > 0 {
		cr := *rec.BaseSalary / *rec.SalaryGradeMid * 100
		rec.Comparatio = &cr
	}
	return rec
}

// PerformanceFromRow builds a canonical PerformanceRecord from a mapped
// row. Rating and retention risk keep their dual text/number nature.
func PerformanceFromRow(row MappedRow) *PerformanceRecord {
	return &PerformanceRecord{
		EmployeeID:            StringAt(row, "employeeId"),
		PerformanceRating:     flexAt(row, "performanceRating"),
		FutureTalent:          StringAt(row, "futureTalent"),
		MovementReadiness:     StringAt(row, "movementReadiness"),
		ProposedTalentActions: StringAt(row, "proposedTalentActions"),
		BusinessImpactScore:   floatPtrAt(row, "businessImpactScore"),
		RetentionRisk:         flexAt(row, "retentionRisk"),
	}
}

// EmployeeFromSalary wraps a salary row (possibly carrying merged
// performance fields from a combined export) into the merged entity.
func EmployeeFromSalary(row MappedRow) *Employee {
	emp := &Employee{SalaryRecord: *SalaryFromRow(row)}
	perf := PerformanceFromRow(row)
	if !perf.PerformanceRating.IsZero() || !perf.RetentionRisk.IsZero() || perf.BusinessImpactScore != nil {
		perf.EmployeeID = emp.EmployeeID
		emp.Performance = perf
	}
	return emp
}

// EmployeeFromPerformance wraps a performance-only row; salary fields
// stay empty until merged against a salary sheet by employeeId.
func EmployeeFromPerformance(row MappedRow) *Employee {
	perf := PerformanceFromRow(row)
	return &Employee{
		SalaryRecord: SalaryRecord{EmployeeID: perf.EmployeeID, Currency: "USD"},
		Performance:  perf,
	}
}

func floatPtrAt(row MappedRow, field string) *float64 {
	if n, ok := NumberAt(row, field); ok {
		v := n
		return &v
	}
	return nil
}

func flexAt(row MappedRow, field string) FlexValue {
	switch v := row[field].(type) {
	case float64:
		n := v
		return FlexValue{Value: &n}
	case string:
		return FlexValue{Text: v}
	}
	return FlexValue{}
}
