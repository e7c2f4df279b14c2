package pums

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
)

func testColumns() config.ColumnsConfig {
	return config.ColumnsConfig{
		SerialNo: "SERIALNO", PUMA: "PUMA", State: "ST", Size: "NP",
		TotalIncome: "HINCP", Rent: "GRNTP", FoodStamps: "FS",
		Wages: "WAGP", SelfEmployment: "SEMP", Retirement: "RETP",
		Interest: "INTP", PublicAssistance: "PAP", SocialSecurity: "SSP",
	}
}

func writeCSVFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadHouseholds(t *testing.T) {
	path := writeCSVFile(t,
		"SERIALNO,ST,PUMA,NP,HINCP,GRNTP,FS\n"+
			"2022H001,6,7507.0,4,36000,2000,1\n"+
			"2022H002,6,7508,2,,0,2\n")

	households, stats, err := ReadHouseholds(path, testColumns())
	require.NoError(t, err)
	require.Len(t, households, 2)
	assert.Equal(t, 2, stats.Rows)
	assert.Empty(t, stats.MissingOptional)

	h := households[0]
	assert.Equal(t, "2022H001", h.SerialNo)
	assert.Equal(t, 6, h.State)
	assert.Equal(t, 7507, h.PUMA) // float-coded geography parses as int
	assert.Equal(t, 4, h.Size)
	assert.Equal(t, 36000.0, h.AnnualIncome.Float())
	assert.True(t, h.GrossRent.Present)
	assert.True(t, h.FoodStamps)

	// Empty income cell is absent, FS=2 means not participating.
	assert.False(t, households[1].AnnualIncome.Present)
	assert.True(t, households[1].GrossRent.Present)
	assert.False(t, households[1].FoodStamps)
}

func TestReadHouseholds_MissingRequiredColumn(t *testing.T) {
	path := writeCSVFile(t, "SERIALNO,PUMA,NP,GRNTP,FS\nH1,7507,2,900,0\n")

	_, _, err := ReadHouseholds(path, testColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HINCP")
}

func TestReadHouseholds_MissingOptionalColumnWarns(t *testing.T) {
	path := writeCSVFile(t, "SERIALNO,PUMA,NP,HINCP,FS\nH1,7507,2,12000,0\n")

	households, stats, err := ReadHouseholds(path, testColumns())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"GRNTP", "ST"}, stats.MissingOptional)
	assert.False(t, households[0].GrossRent.Present)
	assert.Zero(t, households[0].State)
}

func TestReadHouseholds_MalformedNumericCounted(t *testing.T) {
	path := writeCSVFile(t,
		"SERIALNO,ST,PUMA,NP,HINCP,GRNTP,FS\nH1,6,7507,2,not-a-number,900,0\n")

	households, stats, err := ReadHouseholds(path, testColumns())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BadNumeric)
	assert.False(t, households[0].AnnualIncome.Present)
}

func TestReadHouseholds_EmptyFile(t *testing.T) {
	path := writeCSVFile(t, "")

	_, _, err := ReadHouseholds(path, testColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadPersons(t *testing.T) {
	path := writeCSVFile(t,
		"SERIALNO,PUMA,WAGP,SEMP,RETP,INTP,PAP,SSP\n"+
			"H1,7507,24000,0,,0,600,0\n")

	persons, stats, err := ReadPersons(path, testColumns())
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, 1, stats.Rows)

	p := persons[0]
	assert.Equal(t, 24000.0, p.Wages.Float())
	assert.False(t, p.Retirement.Present)
	assert.Equal(t, 600.0, p.PublicAssistance.Float())
}

func TestReadPersons_OnlyLinkageKeyRequired(t *testing.T) {
	path := writeCSVFile(t, "SERIALNO,WAGP\nH1,12000\n")

	persons, stats, err := ReadPersons(path, testColumns())
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Contains(t, stats.MissingOptional, "RETP")
	assert.False(t, persons[0].Retirement.Present)

	path = writeCSVFile(t, "WAGP\n12000\n")
	_, _, err = ReadPersons(path, testColumns())
	require.Error(t, err)
}
