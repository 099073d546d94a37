package analysis

import "github.com/Raleighawesome/salary-dashboard/pkg/core/schema"

// AnalyzeSalary positions the employee inside their salary grade.
// Current salary is the local-currency base, falling back to the USD
// figure. Missing grade bounds default to configured ratios of the USD
// base salary; that fallback is policy, not a data error.
func AnalyzeSalary(emp *schema.Employee, cfg Config) SalaryAnalysis {
	sa := SalaryAnalysis{}

	switch {
	case emp.BaseSalary != nil:
		sa.CurrentSalary = *emp.BaseSalary
	case emp.BaseSalaryUSD != nil:
		sa.CurrentSalary = *emp.BaseSalaryUSD
	}

	usd := sa.CurrentSalary
	if emp.BaseSalaryUSD != nil {
		usd = *emp.BaseSalaryUSD
	}

	sa.SalaryGradeMin = orDefault(emp.SalaryGradeMin, usd*cfg.GradeMinRatio)
	sa.SalaryGradeMid = orDefault(emp.SalaryGradeMid, usd*cfg.GradeMidRatio)
	sa.SalaryGradeMax = orDefault(emp.SalaryGradeMax, usd*cfg.GradeMaxRatio)

	switch {
	case emp.Comparatio != nil:
		sa.Comparatio = *emp.Comparatio
	case sa.SalaryGradeMid > 0:
		sa.Comparatio = sa.CurrentSalary / sa.SalaryGradeMid * 100
	}

	sa.PositionInRange = positionInRange(sa.CurrentSalary, sa.SalaryGradeMin, sa.SalaryGradeMax)

	if room := sa.SalaryGradeMax - sa.CurrentSalary; room > 0 {
		sa.RoomForGrowth = room
	}
	return sa
}

func positionInRange(current, min, max float64) string {
	if max <= min {
		if current < min {
			return PositionBelowMin
		}
		return PositionAtAboveMax
	}
	switch {
	case current < min:
		return PositionBelowMin
	case current >= max:
		return PositionAtAboveMax
	}
	third := (max - min) / 3
	switch {
	case current < min+third:
		return PositionLowerThird
	case current < min+2*third:
		return PositionMiddleThird
	default:
		return PositionUpperThird
	}
}

func orDefault(v *float64, fallback float64) float64 {
	if v != nil && *v > 0 {
		return *v
	}
	return fallback
}
