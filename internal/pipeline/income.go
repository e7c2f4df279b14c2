package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// AggregateIncome rolls person-level income up to household level, keyed by
// linkage key. Earned income is wages plus self-employment; unearned is
// retirement, interest, public assistance, and social security. Absent
// source columns contribute zero. Households are independent reductions, so
// the rollup fans out across workers.
func AggregateIncome(ctx context.Context, persons []model.Person, concurrency int) (map[string]model.HouseholdIncome, error) {
	byHousehold := make(map[string][]model.Person)
	for _, p := range persons {
		byHousehold[p.SerialNo] = append(byHousehold[p.SerialNo], p)
	}

	keys := make([]string, 0, len(byHousehold))
	for k := range byHousehold {
		keys = append(keys, k)
	}

	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	result := make(map[string]model.HouseholdIncome, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			income := reduceHousehold(byHousehold[key])
			mu.Lock()
			result[key] = income
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Debug("aggregated person income",
		zap.Int("persons", len(persons)),
		zap.Int("households", len(result)),
	)
	return result, nil
}

func reduceHousehold(members []model.Person) model.HouseholdIncome {
	var inc model.HouseholdIncome
	var retirement, interest, pap, ssp float64

	for _, p := range members {
		inc.Earned += p.EarnedIncome()
		inc.Unearned += p.UnearnedIncome()
		retirement += p.Retirement.Float()
		interest += p.Interest.Float()
		pap += p.PublicAssistance.Float()
		ssp += p.SocialSecurity.Float()
		if p.Working() {
			inc.WorkingMembers++
		}
	}

	inc.Countable = inc.Earned + inc.Unearned
	inc.MonthlyCountable = inc.Countable / 12
	inc.MonthlyEarned = inc.Earned / 12
	inc.MonthlyRetirement = retirement / 12
	inc.MonthlyInterest = interest / 12
	inc.MonthlyPublicAssistance = pap / 12
	inc.MonthlySocialSecurity = ssp / 12
	inc.PublicAssistance = pap
	inc.AnyPAP = pap > 0

	return inc
}
