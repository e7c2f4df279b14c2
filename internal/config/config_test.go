package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "SERIALNO", cfg.Columns.SerialNo)
	assert.Equal(t, "HINCP", cfg.Columns.TotalIncome)
	assert.Equal(t, 6, cfg.Pipeline.StateCode)
	assert.Equal(t, "zero_income_inclusive", cfg.Eligibility.Policy)
	assert.Equal(t, 450.0, cfg.Eligibility.EarnedIncomeDisregard)

	// The string keys of the default schedule decode to int sizes.
	assert.Equal(t, 2170.0, cfg.MBSAC.Schedule[4])
	assert.Equal(t, 30.0, cfg.MBSAC.AdditionalPerson)

	def, err := cfg.Region("")
	require.NoError(t, err)
	assert.Equal(t, "San Francisco County", def.Name)
	assert.Contains(t, def.PUMACodes, 7507)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CALWORKS_PIPELINE_CONCURRENCY", "3")
	t.Setenv("CALWORKS_ELIGIBILITY_POLICY", "strict")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pipeline.Concurrency)
	assert.Equal(t, "strict", cfg.Eligibility.Policy)
}

func TestValidate_ScheduleGaps(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	delete(cfg.MBSAC.Schedule, 5)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size 5")
}

func TestValidate_ScheduleMustNotDecrease(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.MBSAC.Schedule[9] = 100
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decreases")
}

func TestValidate_UnresolvableDefaultRegion(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Regions.Default = "nowhere"
	err = cfg.Validate()
	require.Error(t, err)
}

func TestRegion_Unknown(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.Region("atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atlantis")
}

func TestLoadSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbsac.yaml")
	doc := `schedule:
  1: 100
  2: 200
  3: 300
  4: 400
  5: 500
  6: 600
  7: 700
  8: 800
  9: 900
  10: 1000
additional_person: 25
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m, err := LoadSchedule(path)
	require.NoError(t, err)
	assert.Equal(t, 400.0, m.Schedule[4])
	assert.Equal(t, 25.0, m.AdditionalPerson)
}

func TestLoadSchedule_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbsac.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedule:\n  1: 100\n"), 0o644))

	_, err := LoadSchedule(path)
	require.Error(t, err)
}

func TestLoadSchedule_MissingFile(t *testing.T) {
	_, err := LoadSchedule(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
