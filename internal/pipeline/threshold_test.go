package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
)

func testMBSAC() config.MBSACConfig {
	return config.MBSACConfig{
		Schedule: map[int]float64{
			1: 899, 2: 1476, 3: 1829, 4: 2170, 5: 2476,
			6: 2785, 7: 3061, 8: 3331, 9: 3614, 10: 3922,
		},
		AdditionalPerson: 30,
	}
}

func testSchedule(t *testing.T) Schedule {
	t.Helper()
	s, err := NewSchedule(testMBSAC())
	require.NoError(t, err)
	return s
}

func TestNewSchedule_RejectsIncompleteTable(t *testing.T) {
	cfg := testMBSAC()
	delete(cfg.Schedule, 7)

	_, err := NewSchedule(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size 7")
}

func TestThreshold_TableLookup(t *testing.T) {
	s := testSchedule(t)

	assert.Equal(t, 899.0, s.Threshold(1))
	assert.Equal(t, 2170.0, s.Threshold(4))
	assert.Equal(t, 3922.0, s.Threshold(10))
}

func TestThreshold_ExtrapolatesBeyondTen(t *testing.T) {
	s := testSchedule(t)

	assert.Equal(t, 3952.0, s.Threshold(11))
	assert.Equal(t, 3922.0+5*30, s.Threshold(15))
}

func TestThreshold_NonPositiveSizeUsesMinimumBracket(t *testing.T) {
	s := testSchedule(t)

	assert.Equal(t, 899.0, s.Threshold(0))
	assert.Equal(t, 899.0, s.Threshold(-3))
}
