package schema

// FileType classifies an uploaded export.
type FileType string

const (
	FileTypeSalary      FileType = "salary"
	FileTypePerformance FileType = "performance"
	FileTypeUnknown     FileType = "unknown"
)

// RawRow is a decoded spreadsheet row keyed by normalized (lowercase,
// trimmed, separator-collapsed) header name. Rows are ephemeral: they are
// discarded once mapping has produced a MappedRow.
type RawRow map[string]string

// MappedRow holds canonical field name -> coerced value. Values are
// float64 when numeric coercion succeeded and string otherwise; coercion
// never fails hard, validation decides what is usable.
type MappedRow map[string]interface{}

// FlexValue holds a cell that is legitimately either free text or a
// number (performance ratings, retention risk).
type FlexValue struct {
	Text  string   `json:"text,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

// IsZero reports whether the cell was absent entirely.
func (f FlexValue) IsZero() bool {
	return f.Text == "" && f.Value == nil
}

// Numeric returns the numeric reading of the cell, if it has one.
func (f FlexValue) Numeric() (float64, bool) {
	if f.Value != nil {
		return *f.Value, true
	}
	return 0, false
}

// SalaryRecord is the canonical shape of one row of a salary export.
// Optional numeric fields are pointers so "absent" and "zero" stay
// distinguishable. Dates are kept as the source text; the analysis
// engine parses them tolerantly.
type SalaryRecord struct {
	EmployeeID         string   `json:"employeeId"`
	Name               string   `json:"name,omitempty"`
	FirstName          string   `json:"firstName,omitempty"`
	LastName           string   `json:"lastName,omitempty"`
	Email              string   `json:"email,omitempty"`
	Country            string   `json:"country,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	BaseSalary         *float64 `json:"baseSalary,omitempty"`
	BaseSalaryUSD      *float64 `json:"baseSalaryUsd,omitempty"`
	SalaryGradeMin     *float64 `json:"salaryGradeMin,omitempty"`
	SalaryGradeMid     *float64 `json:"salaryGradeMid,omitempty"`
	SalaryGradeMax     *float64 `json:"salaryGradeMax,omitempty"`
	Comparatio         *float64 `json:"comparatio,omitempty"`
	TimeInRole         *float64 `json:"timeInRole,omitempty"`
	HireDate           string   `json:"hireDate,omitempty"`
	RoleStartDate      string   `json:"roleStartDate,omitempty"`
	LastRaiseDate      string   `json:"lastRaiseDate,omitempty"`
	DepartmentCode     string   `json:"departmentCode,omitempty"`
	JobTitle           string   `json:"jobTitle,omitempty"`
	ManagerID          string   `json:"managerId,omitempty"`
	ManagerName        string   `json:"managerName,omitempty"`
	GradeLevel         string   `json:"gradeLevel,omitempty"`
	SalaryRangeSegment string   `json:"salaryRangeSegment,omitempty"`
	BelowRangeMinimum  bool     `json:"belowRangeMinimum,omitempty"`
}

// DisplayName returns the best available human-readable name.
func (s *SalaryRecord) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.FirstName != "" || s.LastName != "" {
		if s.FirstName == "" {
			return s.LastName
		}
		if s.LastName == "" {
			return s.FirstName
		}
		return s.FirstName + " " + s.LastName
	}
	return s.EmployeeID
}

// PerformanceRecord is the canonical shape of one row of a performance
// export. EmployeeID is the join key back to the salary sheet.
type PerformanceRecord struct {
	EmployeeID            string    `json:"employeeId"`
	PerformanceRating     FlexValue `json:"performanceRating,omitempty"`
	FutureTalent          string    `json:"futureTalent,omitempty"`
	MovementReadiness     string    `json:"movementReadiness,omitempty"`
	ProposedTalentActions string    `json:"proposedTalentActions,omitempty"`
	BusinessImpactScore   *float64  `json:"businessImpactScore,omitempty"`
	RetentionRisk         FlexValue `json:"retentionRisk,omitempty"`
}

// Employee is the merged entity the analysis engine operates on: a salary
// record plus its matched performance record. ProposedRaise is the only
// field consumers may mutate after ingestion.
type Employee struct {
	SalaryRecord
	Performance   *PerformanceRecord `json:"performance,omitempty"`
	ProposedRaise float64            `json:"proposedRaise"`
}

// ValidationResult is the per-row outcome of row-level validation.
// Errors block inclusion in the result data; warnings do not.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Label    string   `json:"label"`
}

// FileUploadResult is the sole externally observable output of file
// ingestion. Errors holds row-numbered hard errors first, then warnings
// prefixed "Warning:"; downstream UI pattern-matches both formats.
type FileUploadResult struct {
	FileName  string      `json:"fileName"`
	FileType  FileType    `json:"fileType"`
	RowCount  int         `json:"rowCount"`
	ValidRows int         `json:"validRows"`
	Errors    []string    `json:"errors"`
	Data      []*Employee `json:"data"`
}
