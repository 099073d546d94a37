package analysis

import (
	"fmt"
	"math"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/format"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// RecommendRaise derives the budget-constrained raise proposal. The
// percentage scales with how far below grade-mid the employee sits and
// with total retention risk, is capped by the location-dependent max
// percent, and the resulting amount is clamped to the remaining budget.
// An employee at or above mid with low risk gets zero.
func RecommendRaise(emp *schema.Employee, salary SalaryAnalysis, risk RetentionRisk, budget BudgetContext, cfg Config) RaiseRecommendation {
	rec := RaiseRecommendation{Reasoning: []string{}}

	if salary.CurrentSalary <= 0 {
		rec.Priority = PriorityLow
		rec.Reasoning = append(rec.Reasoning, "No usable salary data, nothing to recommend")
		return rec
	}

	maxPercent := budget.MaxPercent
	if maxPercent <= 0 {
		maxPercent = cfg.MaxRaiseFor(emp.Country)
	}
	available := budget.Available()

	percent := basePercent(salary.Comparatio) + riskBoost(risk.TotalRisk)
	if salary.Comparatio >= 100 && risk.TotalRisk < 30 {
		percent = 0
	}

	if salary.Comparatio > 0 && salary.Comparatio < 100 {
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("Below market, comparatio %s", format.Percent(salary.Comparatio)))
	}
	switch {
	case risk.TotalRisk >= 50:
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("High retention risk, %.0f/100 (%s)", risk.TotalRisk, risk.RiskLevel))
	case risk.TotalRisk >= 30:
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("Moderate retention risk, %.0f/100", risk.TotalRisk))
	}
	if risk.PerformanceRisk >= 20 {
		rec.Reasoning = append(rec.Reasoning, "High performer retention risk")
	}

	if percent > maxPercent {
		percent = maxPercent
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("Capped at %s of current salary", format.Percent(maxPercent)))
	}

	amount := math.Floor(salary.CurrentSalary * percent / 100)
	if amount > available {
		amount = math.Floor(available)
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("Limited by remaining budget, %s", format.Currency(available, "USD")))
	}
	if amount < 0 {
		amount = 0
	}
	if amount == 0 && percent == 0 {
		rec.Reasoning = append(rec.Reasoning,
			"At or above market midpoint with low retention risk")
	}

	rec.RecommendedAmount = amount
	if amount > 0 {
		rec.RecommendedPercent = amount / salary.CurrentSalary * 100
	}
	rec.Priority = priorityFor(risk.TotalRisk, amount)
	return rec
}

// basePercent scales with the below-mid gap.
func basePercent(comparatio float64) float64 {
	switch {
	case comparatio <= 0:
		return 0
	case comparatio < 80:
		return 10
	case comparatio < 90:
		return 7
	case comparatio < 95:
		return 5
	case comparatio < 100:
		return 3
	default:
		return 0
	}
}

func riskBoost(totalRisk float64) float64 {
	switch {
	case totalRisk >= 70:
		return 4
	case totalRisk >= 50:
		return 2.5
	case totalRisk >= 30:
		return 1
	default:
		return 0
	}
}

func priorityFor(totalRisk, amount float64) string {
	switch {
	case amount <= 0:
		return PriorityLow
	case totalRisk >= 70:
		return PriorityCritical
	case totalRisk >= 50:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}
