package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

func TestComputeEmploymentMetrics(t *testing.T) {
	summaries := []model.RegionSummary{
		{PUMA: 7507, EligibleHouseholds: 10, WithEmploymentIncome: 6, MedianIncome: 2000},
		{PUMA: 7508, EligibleHouseholds: 4, WithEmploymentIncome: 4, MedianIncome: 4000},
	}

	metrics := ComputeEmploymentMetrics(summaries)
	require.Len(t, metrics, 2)

	m := metrics[0]
	assert.Equal(t, 7507, m.PUMA)
	assert.Equal(t, 4, m.UnemployedButEligible)
	assert.Equal(t, 60.0, m.EmploymentRate)
	assert.Equal(t, 12000.0, m.CurrentMonthlyIncome)
	assert.Equal(t, 20000.0, m.PotentialMonthlyIncome)
	assert.Equal(t, 8000.0, m.MonthlyIncomeGap)
	// Average median income is 3000, subsidy share one half.
	assert.Equal(t, 6000.0, m.EstimatedProgramCost)
	assert.Equal(t, 1.33, m.ROIRatio)

	// Fully employed region: no gap, no program cost, no ROI.
	full := metrics[1]
	assert.Equal(t, 0, full.UnemployedButEligible)
	assert.Equal(t, 100.0, full.EmploymentRate)
	assert.Equal(t, 0.0, full.MonthlyIncomeGap)
	assert.Equal(t, 0.0, full.EstimatedProgramCost)
	assert.Equal(t, 0.0, full.ROIRatio)
}

func TestComputeEmploymentMetrics_Empty(t *testing.T) {
	assert.Nil(t, ComputeEmploymentMetrics(nil))
}
