package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// FormatReport renders a human-readable run report: headline counts, the
// eligibility breakdown with explicit rate bases, income ranges, and the
// regional table sorted as aggregated.
func FormatReport(regionName string, summary model.Summary, regions []model.RegionSummary) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "# CalWORKs Eligibility Analysis: %s\n\n", regionName)

	b.WriteString("## Summary\n")
	p.Fprintf(&b, "- Households analyzed: %d\n", summary.TotalHouseholds)
	p.Fprintf(&b, "- Persons: %d\n", summary.TotalPersons)
	p.Fprintf(&b, "- CalWORKs eligible: %d (%.1f%% of %s)\n\n",
		summary.EligibleHouseholds, summary.Breakdown.EligibleRate, summary.Breakdown.EligibleRateBase)

	b.WriteString("## Eligibility Criteria\n")
	fmt.Fprintf(&b, "Rates below are relative to %s.\n", summary.Breakdown.CriterionBase)
	fmt.Fprintf(&b, "- Income eligible: %.1f%%\n", summary.Breakdown.IncomeEligible)
	fmt.Fprintf(&b, "- Receiving food stamps: %.1f%%\n", summary.Breakdown.FoodStamps)
	fmt.Fprintf(&b, "- Receiving public assistance: %.1f%%\n\n", summary.Breakdown.PublicAssistance)

	b.WriteString("## Monthly Income (eligible households)\n")
	r := summary.MonthlyIncomeEligible
	p.Fprintf(&b, "- Range: $%.2f to $%.2f\n", r.Min, r.Max)
	p.Fprintf(&b, "- Median: $%.2f (p25 $%.2f, p75 $%.2f)\n", r.P50, r.P25, r.P75)
	p.Fprintf(&b, "- Working households: %d (avg %.2f working members)\n\n",
		summary.WorkingHouseholds, summary.AvgWorkingMembers)

	b.WriteString("## Regions\n")
	if len(regions) == 0 {
		b.WriteString("No regional data.\n")
		return b.String()
	}
	for _, s := range regions {
		name := s.RegionName
		if name == "" {
			name = fmt.Sprintf("PUMA %d", s.PUMA)
		}
		p.Fprintf(&b, "- %s: %d eligible of %d households (%.1f%%), median income $%.2f, median rent $%.2f, income/rent %.2f",
			name, s.EligibleHouseholds, s.TotalHouseholds, s.EligibilityRate,
			s.MedianIncome, s.MedianRent, s.IncomeToRent)
		if s.ZeroRentRatio {
			b.WriteString(" (rent median zero)")
		}
		b.WriteString("\n")
	}

	return b.String()
}
