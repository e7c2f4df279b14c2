// Package pipeline implements the analysis stages: person-to-household
// income aggregation, threshold lookup, eligibility classification, regional
// roll-up, and the derived statistics consumed by reporting.
package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
)

// Schedule is the benefit-standard (MBSAC) threshold table: direct amounts
// for household sizes 1..10 plus a per-person increment beyond ten.
type Schedule struct {
	Amounts          map[int]float64
	AdditionalPerson float64
}

// NewSchedule builds a Schedule from configuration.
func NewSchedule(cfg config.MBSACConfig) (Schedule, error) {
	s := Schedule{Amounts: cfg.Schedule, AdditionalPerson: cfg.AdditionalPerson}
	for size := 1; size <= 10; size++ {
		if s.Amounts[size] <= 0 {
			return Schedule{}, eris.Errorf("pipeline: schedule has no positive amount for size %d", size)
		}
	}
	return s, nil
}

// Threshold returns the monthly benefit-standard amount for a household
// size. Sizes above ten extrapolate linearly from the size-10 amount.
// Non-positive sizes fall back to the size-1 bracket; callers are expected
// to count those rows as data-quality warnings rather than failing the run.
func (s Schedule) Threshold(size int) float64 {
	if size <= 0 {
		return s.Amounts[1]
	}
	if size <= 10 {
		return s.Amounts[size]
	}
	return s.Amounts[10] + float64(size-10)*s.AdditionalPerson
}
