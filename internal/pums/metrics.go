package pums

import "github.com/pawelsloboda5/calworks-analysis/internal/model"

// WriteEmploymentMetrics writes the per-region employment metrics table.
func WriteEmploymentMetrics(path string, metrics []model.EmploymentMetrics) error {
	header := []string{
		"PUMA", "unemployed_but_eligible", "employment_rate",
		"current_monthly_income", "potential_monthly_income",
		"monthly_income_gap", "estimated_program_cost", "roi_ratio",
	}

	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			itoa(m.PUMA),
			itoa(m.UnemployedButEligible),
			ftoa2(m.EmploymentRate),
			ftoa2(m.CurrentMonthlyIncome),
			ftoa2(m.PotentialMonthlyIncome),
			ftoa2(m.MonthlyIncomeGap),
			ftoa2(m.EstimatedProgramCost),
			ftoa2(m.ROIRatio),
		})
	}
	return writeCSV(path, header, rows)
}
