package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	summaries := []model.RegionSummary{
		{
			PUMA:               7507,
			RegionName:         "San Francisco County (North)",
			TotalHouseholds:    100,
			EligibleHouseholds: 20,
			MedianRent:         2250,
			MedianIncome:       3500,
			IncomeToRent:       1.56,
			EligibilityRate:    20,
		},
	}
	summary := model.Summary{
		TotalHouseholds:    100,
		EligibleHouseholds: 20,
		Breakdown:          model.EligibilityBreakdown{EligibleRate: 20},
	}

	require.NoError(t, WriteWorkbook(path, summaries, summary))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	regions := f.Sheet["regions"]
	require.NotNil(t, regions)
	require.GreaterOrEqual(t, len(regions.Rows), 2)
	assert.Equal(t, "PUMA", regions.Rows[0].Cells[0].String())
	assert.Equal(t, "7507", regions.Rows[1].Cells[0].String())
	assert.Equal(t, "San Francisco County (North)", regions.Rows[1].Cells[1].String())

	sum := f.Sheet["summary"]
	require.NotNil(t, sum)
	assert.Equal(t, "Total Households", sum.Rows[0].Cells[0].String())
	assert.Equal(t, "100", sum.Rows[0].Cells[1].String())
}

func TestWriteWorkbook_EmptyTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteWorkbook(path, nil, model.Summary{}))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheet["regions"].Rows, 1) // header only
}
