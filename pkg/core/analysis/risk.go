package analysis

import (
	"fmt"
	"strings"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/format"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// Textual rating labels mapped onto the 0-5 scale. Matched by substring
// against the lowercased label, first hit wins.
var ratingLabels = []struct {
	Needle string
	Score  float64
}{
	{"exceptional", 5},
	{"outstanding", 4.75},
	{"exceed", 4.5},
	{"above", 4},
	{"strong", 4},
	{"meets", 3},
	{"successful", 3},
	{"solid", 3},
	{"developing", 2},
	{"needs", 2},
	{"below", 2},
	{"unsatisfactory", 1},
	{"poor", 1},
}

// ratingScore normalizes the dual-natured performance rating onto the
// 0-5 scale: percent-decimals (0-1] scale up, 0-5 numerics pass through,
// larger numbers are read as raw percentages, and known text labels map
// to fixed scores.
func ratingScore(emp *schema.Employee) (float64, bool) {
	if emp.Performance == nil {
		return 0, false
	}
	rating := emp.Performance.PerformanceRating
	if v, ok := rating.Numeric(); ok {
		switch {
		case v < 0:
			return 0, false
		case v <= 1:
			return v * 5, true
		case v <= 5:
			return v, true
		case v <= 100:
			return v / 20, true
		default:
			return 5, true
		}
	}
	label := strings.ToLower(rating.Text)
	if label == "" {
		return 0, false
	}
	for _, rl := range ratingLabels {
		if strings.Contains(label, rl.Needle) {
			return rl.Score, true
		}
	}
	return 0, false
}

// retentionField reads the dual-meaning retention risk column: values in
// [0,1] are a yes/no flag, values in (1,100] are an external 0-100
// score. Anything else is ignored (validation has already warned).
func retentionField(emp *schema.Employee) (flag bool, score float64, hasScore bool) {
	if emp.Performance == nil {
		return false, 0, false
	}
	v, ok := emp.Performance.RetentionRisk.Numeric()
	if !ok || v < 0 || v > 100 {
		return false, 0, false
	}
	if v <= 1 {
		return v == 1, 0, false
	}
	return false, v, true
}

// AnalyzeRisk computes the composite retention risk from four capped
// components. Factor wording is deterministic and ordered (salary,
// performance, tenure, market); the UI shows it verbatim.
func AnalyzeRisk(emp *schema.Employee, tenure TenureInfo, salary SalaryAnalysis, cfg Config) RetentionRisk {
	risk := RetentionRisk{RiskFactors: []string{}}

	risk.ComparatioRisk = comparatioRisk(salary.Comparatio)
	risk.PerformanceRisk = performanceRisk(emp, salary.Comparatio)
	risk.TenureRisk = tenureRisk(tenure)
	risk.MarketRisk = marketRisk(emp, salary, cfg)
	risk.TotalRisk = risk.ComparatioRisk + risk.PerformanceRisk + risk.TenureRisk + risk.MarketRisk
	risk.RiskLevel = riskLevel(risk.TotalRisk)

	// Fixed component order; only non-trivial contributors get a factor.
	if risk.ComparatioRisk >= 5 {
		risk.RiskFactors = append(risk.RiskFactors,
			fmt.Sprintf("Below-market pay, comparatio %s", format.Percent(salary.Comparatio)))
	}
	if risk.PerformanceRisk >= 5 {
		if rating, ok := ratingScore(emp); ok {
			risk.RiskFactors = append(risk.RiskFactors,
				fmt.Sprintf("High performer retention risk, rating %.1f", rating))
		} else {
			risk.RiskFactors = append(risk.RiskFactors, "Flagged as a retention risk")
		}
	}
	if risk.TenureRisk >= 5 {
		if tenure.LastRaiseMonthsAgo != nil && *tenure.LastRaiseMonthsAgo >= 12 {
			risk.RiskFactors = append(risk.RiskFactors,
				fmt.Sprintf("No raise in %d months", *tenure.LastRaiseMonthsAgo))
		} else {
			risk.RiskFactors = append(risk.RiskFactors,
				fmt.Sprintf("New hire, %d months of tenure", tenure.TotalTenureMonths))
		}
	}
	if risk.MarketRisk >= 5 {
		switch {
		case emp.BelowRangeMinimum || salary.PositionInRange == PositionBelowMin:
			risk.RiskFactors = append(risk.RiskFactors, "Paid below the salary range minimum")
		case cfg.IsGrowthMarket(emp.Country):
			risk.RiskFactors = append(risk.RiskFactors,
				fmt.Sprintf("High-growth market, %s", emp.Country))
		default:
			risk.RiskFactors = append(risk.RiskFactors, "Under local market benchmark")
		}
	}
	return risk
}

// comparatioRisk is 0-40 and never decreases as comparatio drops.
func comparatioRisk(comparatio float64) float64 {
	switch {
	case comparatio <= 0:
		return 0 // no usable comparatio, other components carry the score
	case comparatio < 70:
		return 40
	case comparatio < 80:
		return 32
	case comparatio < 90:
		return 24
	case comparatio < 95:
		return 12
	case comparatio < 100:
		return 6
	default:
		return 0
	}
}

// performanceRisk is 0-30 and targets under-compensated strong
// performers; losing them is the costly outcome. The retention column
// folds in as a flag floor or a scaled external score.
func performanceRisk(emp *schema.Employee, comparatio float64) float64 {
	score := 0.0
	if rating, ok := ratingScore(emp); ok {
		underMarket := comparatio > 0 && comparatio < 100
		switch {
		case rating >= 4.5 && underMarket:
			score = 30
		case rating >= 4 && underMarket:
			score = 22
		case rating >= 4:
			score = 12
		case rating >= 3.5 && comparatio > 0 && comparatio < 95:
			score = 8
		}
	}

	flag, external, hasScore := retentionField(emp)
	if flag && score < 20 {
		score = 20
	}
	if hasScore {
		if scaled := external * 0.3; scaled > score {
			score = scaled
		}
	}
	if score > 30 {
		score = 30
	}
	return score
}

// tenureRisk is 0-20 and non-monotonic: brand-new hires and employees
// long overdue for a raise both score, whichever is higher.
func tenureRisk(tenure TenureInfo) float64 {
	newHire := 0.0
	switch {
	case tenure.TotalTenureMonths < 6:
		newHire = 15
	case tenure.TotalTenureMonths < 12:
		newHire = 10
	}

	overdue := 0.0
	if tenure.LastRaiseMonthsAgo != nil {
		switch months := *tenure.LastRaiseMonthsAgo; {
		case months >= 24:
			overdue = 20
		case months >= 18:
			overdue = 14
		case months >= 12:
			overdue = 8
		}
	}

	if overdue > newHire {
		return overdue
	}
	return newHire
}

// marketRisk is the 0-10 residual location adjustment.
func marketRisk(emp *schema.Employee, salary SalaryAnalysis, cfg Config) float64 {
	switch {
	case emp.BelowRangeMinimum || salary.PositionInRange == PositionBelowMin:
		return 10
	case cfg.IsGrowthMarket(emp.Country):
		return 7
	case salary.Comparatio > 0 && salary.Comparatio < 85:
		return 5
	default:
		return 2
	}
}

func riskLevel(total float64) string {
	switch {
	case total >= 70:
		return RiskLevelCritical
	case total >= 50:
		return RiskLevelHigh
	case total >= 30:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}
