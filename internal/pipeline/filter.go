package pipeline

import (
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// FilterState keeps households matching the state code. A zero code (state
// column absent from the dataset) keeps everything.
func FilterState(households []model.Household, stateCode int) []model.Household {
	if stateCode == 0 {
		return households
	}
	out := make([]model.Household, 0, len(households))
	for _, h := range households {
		if h.State == stateCode || h.State == 0 {
			out = append(out, h)
		}
	}
	return out
}

// FilterRegion keeps households whose PUMA belongs to the region.
func FilterRegion(households []model.Household, region config.RegionDef) []model.Household {
	allowed := make(map[int]bool, len(region.PUMACodes))
	for _, code := range region.PUMACodes {
		allowed[code] = true
	}

	out := make([]model.Household, 0, len(households))
	for _, h := range households {
		if allowed[h.PUMA] {
			out = append(out, h)
		}
	}

	zap.L().Info("filtered region",
		zap.String("region", region.Name),
		zap.Int("in", len(households)),
		zap.Int("out", len(out)),
	)
	return out
}

// EligibleOnly keeps classified households with a positive verdict.
func EligibleOnly(households []model.Household) []model.Household {
	out := make([]model.Household, 0, len(households))
	for _, h := range households {
		if h.Eligibility.Eligible {
			out = append(out, h)
		}
	}
	return out
}

// PersonsInHouseholds keeps persons whose linkage key appears in households.
func PersonsInHouseholds(persons []model.Person, households []model.Household) []model.Person {
	keep := make(map[string]bool, len(households))
	for _, h := range households {
		keep[h.SerialNo] = true
	}

	out := make([]model.Person, 0, len(persons))
	for _, p := range persons {
		if keep[p.SerialNo] {
			out = append(out, p)
		}
	}
	return out
}
