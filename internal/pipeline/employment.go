package pipeline

import "github.com/pawelsloboda5/calworks-analysis/internal/model"

// programSubsidyShare is the assumed wage-subsidy fraction behind the
// program-cost estimate.
const programSubsidyShare = 0.5

// ComputeEmploymentMetrics derives per-region employment and economic-impact
// figures from the regional roll-up. The program-cost estimate assumes a
// subsidy of half the across-region average median income per
// unemployed-but-eligible household.
func ComputeEmploymentMetrics(summaries []model.RegionSummary) []model.EmploymentMetrics {
	if len(summaries) == 0 {
		return nil
	}

	var avgIncome float64
	for _, s := range summaries {
		avgIncome += s.MedianIncome
	}
	avgIncome /= float64(len(summaries))

	metrics := make([]model.EmploymentMetrics, 0, len(summaries))
	for _, s := range summaries {
		m := model.EmploymentMetrics{
			PUMA:                  s.PUMA,
			UnemployedButEligible: s.EligibleHouseholds - s.WithEmploymentIncome,
		}
		if s.EligibleHouseholds > 0 {
			m.EmploymentRate = round2(float64(s.WithEmploymentIncome) / float64(s.EligibleHouseholds) * 100)
		}

		m.CurrentMonthlyIncome = round2(float64(s.WithEmploymentIncome) * s.MedianIncome)
		m.PotentialMonthlyIncome = round2(float64(s.EligibleHouseholds) * s.MedianIncome)
		m.MonthlyIncomeGap = round2(m.PotentialMonthlyIncome - m.CurrentMonthlyIncome)

		m.EstimatedProgramCost = round2(float64(m.UnemployedButEligible) * avgIncome * programSubsidyShare)
		if m.EstimatedProgramCost > 0 {
			m.ROIRatio = round2(m.MonthlyIncomeGap / m.EstimatedProgramCost)
		}

		metrics = append(metrics, m)
	}
	return metrics
}
