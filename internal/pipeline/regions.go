package pipeline

import (
	"context"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// AggregateRegions rolls the (typically eligible-only) household table up by
// PUMA. totals supplies the all-households count per PUMA used as the
// eligibility-rate denominator; a missing entry yields a zero rate rather
// than a divide-by-zero. Groups are independent, so they reduce in parallel.
// Output is sorted by PUMA and every float aggregate is rounded to two
// decimals; ratios degenerate to 0.0, never NaN or Inf.
func AggregateRegions(ctx context.Context, households []model.Household, persons []model.Person, totals map[int]int, concurrency int) ([]model.RegionSummary, error) {
	byPUMA := make(map[int][]model.Household)
	for _, h := range households {
		byPUMA[h.PUMA] = append(byPUMA[h.PUMA], h)
	}

	personCount := countPersonsByPUMA(households, persons)

	pumas := make([]int, 0, len(byPUMA))
	for puma := range byPUMA {
		pumas = append(pumas, puma)
	}
	sort.Ints(pumas)

	if concurrency < 1 {
		concurrency = 1
	}

	summaries := make([]model.RegionSummary, len(pumas))
	var zeroRent int
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, puma := range pumas {
		i, puma := i, puma
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := summarizeRegion(puma, byPUMA[puma], personCount[puma], totals[puma])
			if s.ZeroRentRatio {
				mu.Lock()
				zeroRent++
				mu.Unlock()
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if zeroRent > 0 {
		zap.L().Warn("regions with zero or undefined median rent, ratio reported as 0",
			zap.Int("count", zeroRent))
	}
	zap.L().Info("aggregated regions", zap.Int("regions", len(summaries)))
	return summaries, nil
}

func summarizeRegion(puma int, group []model.Household, persons, total int) model.RegionSummary {
	s := model.RegionSummary{
		PUMA:               puma,
		TotalHouseholds:    total,
		EligibleHouseholds: len(group),
		Persons:            persons,
	}

	rents := make([]float64, 0, len(group))
	incomes := make([]float64, 0, len(group))
	earned := make([]float64, 0, len(group))
	retirement := make([]float64, 0, len(group))
	interest := make([]float64, 0, len(group))
	pap := make([]float64, 0, len(group))
	ssp := make([]float64, 0, len(group))

	for _, h := range group {
		rents = append(rents, h.GrossRent.Float())
		incomes = append(incomes, h.MonthlyIncome())
		earned = append(earned, h.Income.MonthlyEarned)
		retirement = append(retirement, h.Income.MonthlyRetirement)
		interest = append(interest, h.Income.MonthlyInterest)
		pap = append(pap, h.Income.MonthlyPublicAssistance)
		ssp = append(ssp, h.Income.MonthlySocialSecurity)

		s.SumEarned += h.Income.Earned
		s.SumRetirement += h.Income.MonthlyRetirement * 12
		s.SumInterest += h.Income.MonthlyInterest * 12
		s.SumPublicAssistance += h.Income.PublicAssistance
		s.SumSocialSecurity += h.Income.MonthlySocialSecurity * 12

		if h.HasEmploymentIncome() {
			s.WithEmploymentIncome++
		}
		if h.Income.MonthlyRetirement > 0 {
			s.WithRetirementIncome++
		}
		if h.Income.MonthlyInterest > 0 {
			s.WithDividendIncome++
		}
		if h.Income.MonthlyPublicAssistance > 0 {
			s.WithPublicAssistanceIncome++
		}
		if h.Income.MonthlySocialSecurity > 0 {
			s.WithSocialSecurityIncome++
		}
	}

	s.MedianRent = round2(median(rents))
	s.MedianIncome = round2(median(incomes))
	s.MedianEarnedIncome = round2(median(earned))
	s.MedianRetirement = round2(median(retirement))
	s.MedianInterest = round2(median(interest))
	s.MedianPublicAssistance = round2(median(pap))
	s.MedianSocialSecurity = round2(median(ssp))

	// Ratio of the two group medians, not the mean of per-row ratios:
	// near-zero individual rents would skew the latter.
	if s.MedianRent == 0 || math.IsNaN(s.MedianRent) || math.IsNaN(s.MedianIncome) {
		s.IncomeToRent = 0
		s.ZeroRentRatio = true
	} else {
		s.IncomeToRent = round2(s.MedianIncome / s.MedianRent)
	}

	if total > 0 {
		s.EligibilityRate = round2(float64(len(group)) / float64(total) * 100)
	}

	s.SumEarned = round2(s.SumEarned)
	s.SumRetirement = round2(s.SumRetirement)
	s.SumInterest = round2(s.SumInterest)
	s.SumPublicAssistance = round2(s.SumPublicAssistance)
	s.SumSocialSecurity = round2(s.SumSocialSecurity)

	return s
}

// countPersonsByPUMA counts persons per region through their household's
// PUMA, so person rows without a geography column still land in the right
// group.
func countPersonsByPUMA(households []model.Household, persons []model.Person) map[int]int {
	pumaOf := make(map[string]int, len(households))
	for _, h := range households {
		pumaOf[h.SerialNo] = h.PUMA
	}

	counts := make(map[int]int)
	for _, p := range persons {
		if puma, ok := pumaOf[p.SerialNo]; ok {
			counts[puma]++
		}
	}
	return counts
}

// median returns the middle value of vs (average of the two middle values
// for even counts) or 0 for an empty slice. vs is not modified.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
