package analysis

// TenureInfo is the tenure breakdown for one employee, computed against
// a caller-supplied "now" so results stay reproducible in tests.
type TenureInfo struct {
	YearsOfService     int    `json:"yearsOfService"`
	TotalTenureMonths  int    `json:"totalTenureMonths"`
	TimeInRoleMonths   int    `json:"timeInRoleMonths"`
	TenureBand         string `json:"tenureBand"`
	LastRaiseMonthsAgo *int   `json:"lastRaiseMonthsAgo,omitempty"`
}

// Tenure band cut points over total tenure months.
const (
	TenureBandNew         = "new"         // < 6 months
	TenureBandEarly       = "early"       // 6-23 months
	TenureBandEstablished = "established" // 24-59 months
	TenureBandSenior      = "senior"      // >= 60 months
)

// SalaryAnalysis positions an employee's pay inside their salary grade.
type SalaryAnalysis struct {
	CurrentSalary  float64 `json:"currentSalary"`
	SalaryGradeMin float64 `json:"salaryGradeMin"`
	SalaryGradeMid float64 `json:"salaryGradeMid"`
	SalaryGradeMax float64 `json:"salaryGradeMax"`
	Comparatio     float64 `json:"comparatio"`
	PositionInRange string `json:"positionInRange"`
	RoomForGrowth  float64 `json:"roomForGrowth"`
}

// PositionInRange buckets.
const (
	PositionBelowMin    = "below-min"
	PositionLowerThird  = "lower-third"
	PositionMiddleThird = "middle-third"
	PositionUpperThird  = "upper-third"
	PositionAtAboveMax  = "at-above-max"
)

// RetentionRisk is the composite 0-100 departure-risk estimate. The four
// components are independently capped and summed; RiskFactors lists the
// contributing reasons in fixed component order (salary, performance,
// tenure, market) with deterministic wording, since the UI shows them
// verbatim.
type RetentionRisk struct {
	ComparatioRisk  float64  `json:"comparatioRisk"`  // 0-40
	PerformanceRisk float64  `json:"performanceRisk"` // 0-30
	TenureRisk      float64  `json:"tenureRisk"`      // 0-20
	MarketRisk      float64  `json:"marketRisk"`      // 0-10
	TotalRisk       float64  `json:"totalRisk"`       // 0-100
	RiskLevel       string   `json:"riskLevel"`
	RiskFactors     []string `json:"riskFactors"`
}

// Risk level cut points over total risk.
const (
	RiskLevelLow      = "low"      // < 30
	RiskLevelMedium   = "medium"   // 30-49
	RiskLevelHigh     = "high"     // 50-69
	RiskLevelCritical = "critical" // >= 70
)

// RaiseRecommendation is the budget-constrained raise proposal. The
// Reasoning list is the user-facing audit trail for the number and must
// stay deterministic for identical inputs.
type RaiseRecommendation struct {
	RecommendedAmount  float64  `json:"recommendedAmount"` // USD
	RecommendedPercent float64  `json:"recommendedPercent"`
	Priority           string   `json:"priority"`
	Reasoning          []string `json:"reasoning"`
}

// Priority buckets.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// BudgetContext is the caller-supplied live budget state. MaxPercent
// zero means "derive the cap from configuration and the employee's
// location". The engine performs no locking: callers analyzing several
// employees against one shared budget must serialize analyze+commit.
type BudgetContext struct {
	TotalBudget float64 `json:"totalBudget"`
	Committed   float64 `json:"committed"`
	MaxPercent  float64 `json:"maxPercent,omitempty"`
}

// Available returns the remaining budget, floored at zero.
func (b BudgetContext) Available() float64 {
	if b.TotalBudget <= b.Committed {
		return 0
	}
	return b.TotalBudget - b.Committed
}

// EmployeeAnalysis bundles the four on-demand sub-analyses. It is never
// persisted; every read recomputes from the current employee and budget
// so edits can never serve stale numbers.
type EmployeeAnalysis struct {
	EmployeeID     string              `json:"employeeId"`
	Name           string              `json:"name"`
	Tenure         TenureInfo          `json:"tenure"`
	Salary         SalaryAnalysis      `json:"salary"`
	Risk           RetentionRisk       `json:"risk"`
	Recommendation RaiseRecommendation `json:"recommendation"`
}
