package pipeline

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// Policy names one of the documented eligibility rule sets. The source
// program carried several divergent formulas across revisions; each is kept
// as a distinct policy here and exactly one is active per run.
type Policy string

const (
	// PolicyStrict compares monthly countable income to the threshold with a
	// strict less-than and gates the final verdict on sanity constraints
	// (positive size, positive threshold, income above -1).
	PolicyStrict Policy = "strict"

	// PolicyZeroIncomeInclusive is PolicyStrict's income test plus an
	// explicit carve-out: households with exactly zero countable income are
	// income-eligible regardless of the comparison. Default.
	PolicyZeroIncomeInclusive Policy = "zero_income_inclusive"

	// PolicyDisregardAdjusted applies a fixed monthly earned-income
	// disregard once at household level before the zero-inclusive test.
	PolicyDisregardAdjusted Policy = "disregard_adjusted"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyStrict, PolicyZeroIncomeInclusive, PolicyDisregardAdjusted:
		return Policy(s), nil
	}
	return "", eris.Errorf("pipeline: unknown eligibility policy %q", s)
}

// BatchQuality tallies the tolerated data-quality conditions of one
// classification pass. These are warnings, not errors: the documented
// fallback applied and the run continued.
type BatchQuality struct {
	NonPositiveSize int // size <= 0, coerced to the size-1 bracket
	ZeroIncome      int // households with exactly zero countable income
	MissingIncome   int // households with no person rows in the rollup
}

// Classifier combines the threshold schedule with one eligibility policy.
type Classifier struct {
	Schedule  Schedule
	Policy    Policy
	Disregard float64 // monthly, used by PolicyDisregardAdjusted only
}

// Classify computes every eligibility criterion for each household and
// returns a new slice; the input is never mutated. incomes is the rollup
// from AggregateIncome; pass nil to reuse each household's already-derived
// income, which makes re-classification of saved output a no-op.
func (c Classifier) Classify(households []model.Household, incomes map[string]model.HouseholdIncome) ([]model.Household, BatchQuality) {
	out := make([]model.Household, len(households))
	var quality BatchQuality

	for i, h := range households {
		if incomes != nil {
			income, ok := incomes[h.SerialNo]
			if !ok {
				quality.MissingIncome++
			}
			h.Income = income
		}

		if h.Size <= 0 {
			quality.NonPositiveSize++
		}

		threshold := c.Schedule.Threshold(h.Size)
		monthly := c.monthlyCountable(h.Income)
		if monthly == 0 {
			quality.ZeroIncome++
		}

		elig := model.Eligibility{
			Threshold:        threshold,
			IncomeEligible:   c.incomeEligible(monthly, threshold),
			FoodStamps:       h.FoodStamps,
			PublicAssistance: h.Income.PublicAssistance > 0,
		}

		elig.Eligible = elig.IncomeEligible || elig.FoodStamps || elig.PublicAssistance
		if c.Policy == PolicyStrict {
			elig.Eligible = elig.Eligible && h.Size > 0 && threshold > 0 && monthly > -1
		}

		h.Eligibility = elig
		h.Classified = true
		out[i] = h
	}

	if quality.NonPositiveSize > 0 {
		zap.L().Warn("households with non-positive size coerced to minimum bracket",
			zap.Int("count", quality.NonPositiveSize))
	}
	zap.L().Info("classified households",
		zap.String("policy", string(c.Policy)),
		zap.Int("total", len(out)),
		zap.Int("zero_income", quality.ZeroIncome),
	)
	return out, quality
}

// monthlyCountable applies the policy's income adjustment. Only the
// disregard policy changes the figure; the others use the raw rollup.
func (c Classifier) monthlyCountable(income model.HouseholdIncome) float64 {
	if c.Policy != PolicyDisregardAdjusted {
		return income.MonthlyCountable
	}
	earned := income.MonthlyEarned - c.Disregard
	if earned < 0 {
		earned = 0
	}
	unearned := income.MonthlyCountable - income.MonthlyEarned
	return earned + unearned
}

func (c Classifier) incomeEligible(monthly, threshold float64) bool {
	switch c.Policy {
	case PolicyStrict:
		return monthly < threshold
	default: // zero_income_inclusive, disregard_adjusted
		return monthly < threshold || monthly == 0
	}
}
