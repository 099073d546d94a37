package analysis

import (
	"time"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// Engine runs the per-employee compensation analysis. It holds no state
// between calls; every sub-analysis is a pure function of the employee,
// the budget context, and "now", so edits to proposed raises or the
// budget invalidate nothing.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given scoring constants.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config exposes the engine's scoring constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze computes the full analysis for one employee. The input is
// assumed to have passed ingestion validation; missing fields fall back
// to the engineered defaults rather than erroring.
func (e *Engine) Analyze(emp *schema.Employee, budget BudgetContext, now time.Time) *EmployeeAnalysis {
	tenure := ComputeTenure(emp, now)
	salary := AnalyzeSalary(emp, e.cfg)
	risk := AnalyzeRisk(emp, tenure, salary, e.cfg)
	rec := RecommendRaise(emp, salary, risk, budget, e.cfg)

	return &EmployeeAnalysis{
		EmployeeID:     emp.EmployeeID,
		Name:           emp.DisplayName(),
		Tenure:         tenure,
		Salary:         salary,
		Risk:           risk,
		Recommendation: rec,
	}
}
