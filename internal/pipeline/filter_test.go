package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

func TestFilterState(t *testing.T) {
	households := []model.Household{
		{SerialNo: "CA", State: 6},
		{SerialNo: "TX", State: 48},
		{SerialNo: "none", State: 0}, // column absent in source
	}

	out := FilterState(households, 6)
	assert.Len(t, out, 2)
	assert.Equal(t, "CA", out[0].SerialNo)
	assert.Equal(t, "none", out[1].SerialNo)

	// Zero code disables the filter entirely.
	assert.Len(t, FilterState(households, 0), 3)
}

func TestFilterRegion(t *testing.T) {
	region := config.RegionDef{Name: "san_francisco", PUMACodes: []int{7507, 7508}}
	households := []model.Household{
		{SerialNo: "in", PUMA: 7507},
		{SerialNo: "out", PUMA: 101},
	}

	out := FilterRegion(households, region)
	assert.Len(t, out, 1)
	assert.Equal(t, "in", out[0].SerialNo)
}

func TestEligibleOnly(t *testing.T) {
	households := []model.Household{
		{SerialNo: "yes", Eligibility: model.Eligibility{Eligible: true}},
		{SerialNo: "no"},
	}

	out := EligibleOnly(households)
	assert.Len(t, out, 1)
	assert.Equal(t, "yes", out[0].SerialNo)
}

func TestPersonsInHouseholds(t *testing.T) {
	households := []model.Household{{SerialNo: "H1"}}
	persons := []model.Person{
		{SerialNo: "H1"}, {SerialNo: "H1"}, {SerialNo: "H2"},
	}

	out := PersonsInHouseholds(persons, households)
	assert.Len(t, out, 2)
}
