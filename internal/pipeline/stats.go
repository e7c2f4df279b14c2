package pipeline

import (
	"fmt"
	"sort"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// incomeBrackets are the monthly income bands of the distribution tables.
var incomeBrackets = []struct {
	min, max float64
	label    string
}{
	{0, 1000, "Under $1,000"},
	{1000, 2500, "$1,000-$2,500"},
	{2500, 5000, "$2,500-$5,000"},
	{5000, 7500, "$5,000-$7,500"},
	{7500, 10000, "$7,500-$10,000"},
	{10000, 0, "Over $10,000"}, // max 0 means unbounded
}

// BuildSummary derives the presentation-ready statistics table from the
// classified household set. No new business rules: every figure is a count,
// percentile, or share over already-computed columns. Rates carry their
// denominator explicitly (all households vs the eligible subset).
func BuildSummary(all []model.Household, persons int) model.Summary {
	eligible := EligibleOnly(all)

	s := model.Summary{
		TotalHouseholds:    len(all),
		TotalPersons:       persons,
		EligibleHouseholds: len(eligible),
	}

	s.Breakdown = model.EligibilityBreakdown{
		EligibleRate:     pct(len(eligible), len(all)),
		EligibleRateBase: model.BaseAllHouseholds,
		CriterionBase:    model.BaseEligibleHouseholds,
	}
	var incomeElig, fs, pap int
	for _, h := range eligible {
		if h.Eligibility.IncomeEligible {
			incomeElig++
		}
		if h.Eligibility.FoodStamps {
			fs++
		}
		if h.Eligibility.PublicAssistance {
			pap++
		}
	}
	s.Breakdown.IncomeEligible = pct(incomeElig, len(eligible))
	s.Breakdown.FoodStamps = pct(fs, len(eligible))
	s.Breakdown.PublicAssistance = pct(pap, len(eligible))

	s.MonthlyIncomeAll = incomeRange(monthlyIncomes(all))
	s.MonthlyIncomeEligible = incomeRange(monthlyIncomes(eligible))

	s.HouseholdSizes = sizeDistribution(all)
	s.IncomeBrackets = bracketDistribution(all)
	s.WorkingMembers = workerDistribution(eligible)

	var totalSize, working, workingMembers int
	var papSum, retSum, intSum, sspSum float64
	for _, h := range all {
		totalSize += h.Size
	}
	for _, h := range eligible {
		if h.Income.WorkingMembers > 0 {
			working++
		}
		workingMembers += h.Income.WorkingMembers
		papSum += h.Income.MonthlyPublicAssistance
		retSum += h.Income.MonthlyRetirement
		intSum += h.Income.MonthlyInterest
		sspSum += h.Income.MonthlySocialSecurity
	}
	s.WorkingHouseholds = working
	if len(eligible) > 0 {
		s.AvgWorkingMembers = round2(float64(workingMembers) / float64(len(eligible)))
		s.AvgMonthlyPublicAssistance = round2(papSum / float64(len(eligible)))
		s.AvgMonthlyRetirement = round2(retSum / float64(len(eligible)))
		s.AvgMonthlyInterest = round2(intSum / float64(len(eligible)))
		s.AvgMonthlySocialSecurity = round2(sspSum / float64(len(eligible)))
	}
	if len(all) > 0 {
		s.AvgHouseholdSize = round2(float64(totalSize) / float64(len(all)))
	}

	return s
}

func monthlyIncomes(households []model.Household) []float64 {
	vs := make([]float64, 0, len(households))
	for _, h := range households {
		vs = append(vs, h.MonthlyIncome())
	}
	return vs
}

func incomeRange(vs []float64) model.IncomeRange {
	if len(vs) == 0 {
		return model.IncomeRange{}
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return model.IncomeRange{
		Min:  round2(sorted[0]),
		Max:  round2(sorted[len(sorted)-1]),
		Mean: round2(sum / float64(len(sorted))),
		P25:  round2(percentile(sorted, 0.25)),
		P50:  round2(percentile(sorted, 0.50)),
		P75:  round2(percentile(sorted, 0.75)),
	}
}

// percentile interpolates linearly between the closest ranks of an
// already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func sizeDistribution(households []model.Household) []model.BracketShare {
	shares := make([]model.BracketShare, 0, 7)
	for size := 1; size <= 6; size++ {
		count := 0
		for _, h := range households {
			if h.Size == size {
				count++
			}
		}
		label := fmt.Sprintf("%d Person", size)
		shares = append(shares, model.BracketShare{Label: label, Share: pct(count, len(households))})
	}
	count := 0
	for _, h := range households {
		if h.Size >= 7 {
			count++
		}
	}
	shares = append(shares, model.BracketShare{Label: "7+ Person", Share: pct(count, len(households))})
	return shares
}

func bracketDistribution(households []model.Household) []model.BracketShare {
	shares := make([]model.BracketShare, 0, len(incomeBrackets))
	for _, b := range incomeBrackets {
		count := 0
		for _, h := range households {
			m := h.MonthlyIncome()
			if m >= b.min && (b.max == 0 || m < b.max) {
				count++
			}
		}
		shares = append(shares, model.BracketShare{Label: b.label, Share: pct(count, len(households))})
	}
	return shares
}

func workerDistribution(households []model.Household) []model.BracketShare {
	shares := make([]model.BracketShare, 0, 5)
	for workers := 0; workers <= 3; workers++ {
		count := 0
		for _, h := range households {
			if h.Income.WorkingMembers == workers {
				count++
			}
		}
		label := "No Workers"
		if workers == 1 {
			label = "1 Worker"
		} else if workers > 1 {
			label = fmt.Sprintf("%d Workers", workers)
		}
		shares = append(shares, model.BracketShare{Label: label, Share: pct(count, len(households))})
	}
	count := 0
	for _, h := range households {
		if h.Income.WorkingMembers >= 4 {
			count++
		}
	}
	shares = append(shares, model.BracketShare{Label: "4+ Workers", Share: pct(count, len(households))})
	return shares
}

func pct(n, base int) float64 {
	if base == 0 {
		return 0
	}
	return round2(float64(n) / float64(base) * 100)
}
