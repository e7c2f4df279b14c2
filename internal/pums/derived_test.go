package pums

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

func TestWriteHouseholds_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "households.csv")

	in := []model.Household{{
		SerialNo:     "2022H001",
		State:        6,
		PUMA:         7507,
		Size:         4,
		AnnualIncome: model.Some(36000),
		GrossRent:    model.Some(2000),
		FoodStamps:   true,
		Income: model.HouseholdIncome{
			Earned:           21600,
			Unearned:         600,
			Countable:        22200,
			MonthlyCountable: 1850,
			MonthlyEarned:    1800,
			WorkingMembers:   2,
			PublicAssistance: 600,
			AnyPAP:           true,
		},
		Eligibility: model.Eligibility{
			Threshold:      2170,
			IncomeEligible: true,
			FoodStamps:     true,
			Eligible:       true,
		},
		Classified: true,
	}}

	require.NoError(t, WriteHouseholds(path, in))

	out, err := ReadDerivedHouseholds(path)
	require.NoError(t, err)
	require.Len(t, out, 1)

	h := out[0]
	assert.Equal(t, "2022H001", h.SerialNo)
	assert.Equal(t, 7507, h.PUMA)
	assert.Equal(t, 36000.0, h.AnnualIncome.Float())
	assert.Equal(t, 1850.0, h.Income.MonthlyCountable)
	assert.Equal(t, 2, h.Income.WorkingMembers)
	assert.True(t, h.Income.AnyPAP)
	assert.Equal(t, 2170.0, h.Eligibility.Threshold)
	assert.True(t, h.Eligibility.Eligible)
	assert.False(t, h.Eligibility.PublicAssistance)
	assert.True(t, h.Classified)
}

func TestReadDerivedHouseholds_RejectsRawTable(t *testing.T) {
	path := writeCSVFile(t, "SERIALNO,ST,PUMA,NP,HINCP,GRNTP,FS\nH1,6,7507,2,12000,900,0\n")

	_, err := ReadDerivedHouseholds(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "derived column")
}

func TestWritePersons_PreservesAbsence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persons.csv")

	in := []model.Person{{
		SerialNo: "H1",
		PUMA:     7507,
		Wages:    model.Some(24000),
		Interest: model.Some(0),
		// Retirement and the rest never recorded.
	}}
	require.NoError(t, WritePersons(path, in))

	out, _, err := ReadPersons(path, testColumns())
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	assert.True(t, p.Wages.Present)
	assert.True(t, p.Interest.Present)
	assert.Equal(t, 0.0, p.Interest.Value)
	assert.False(t, p.Retirement.Present)
	assert.False(t, p.SocialSecurity.Present)
}

func TestWriteRegionSummaries_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.csv")

	in := []model.RegionSummary{{
		PUMA:                 7507,
		RegionName:           "San Francisco (North)",
		TotalHouseholds:      100,
		EligibleHouseholds:   20,
		Persons:              55,
		MedianRent:           2250,
		MedianIncome:         3500,
		IncomeToRent:         1.56,
		EligibilityRate:      20,
		WithEmploymentIncome: 12,
		LandAreaSqKm:         12.34,
		HouseholdsPerSqKm:    1.62,
	}, {
		PUMA:          7508,
		ZeroRentRatio: true,
	}}
	require.NoError(t, WriteRegionSummaries(path, in))

	out, err := ReadRegionSummaries(path)
	require.NoError(t, err)
	require.Len(t, out, 2)

	s := out[0]
	assert.Equal(t, 7507, s.PUMA)
	assert.Equal(t, "San Francisco (North)", s.RegionName)
	assert.Equal(t, 100, s.TotalHouseholds)
	assert.Equal(t, 20, s.EligibleHouseholds)
	assert.Equal(t, 1.56, s.IncomeToRent)
	assert.Equal(t, 12, s.WithEmploymentIncome)
	assert.Equal(t, 12.34, s.LandAreaSqKm)
	assert.False(t, s.ZeroRentRatio)
	assert.True(t, out[1].ZeroRentRatio)
}
