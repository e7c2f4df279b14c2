package model

// RateBase names the denominator a percentage is relative to. Callers of the
// statistics layer must be explicit about which base population a rate uses.
type RateBase string

const (
	// BaseAllHouseholds uses every household in scope as the denominator.
	BaseAllHouseholds RateBase = "all_households"
	// BaseEligibleHouseholds uses only the eligible subset.
	BaseEligibleHouseholds RateBase = "eligible_households"
)

// IncomeRange is a descriptive spread of monthly income values.
type IncomeRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
}

// BracketShare is the share of households falling into a labeled bracket.
type BracketShare struct {
	Label string  `json:"label"`
	Share float64 `json:"share"` // percent
}

// EligibilityBreakdown reports the overall eligibility rate and per-criterion
// rates, each labeled with its denominator.
type EligibilityBreakdown struct {
	EligibleRate     float64  `json:"eligible_rate"` // percent
	EligibleRateBase RateBase `json:"eligible_rate_base"`

	IncomeEligible   float64  `json:"income_eligible"` // percent
	FoodStamps       float64  `json:"food_stamps"`
	PublicAssistance float64  `json:"public_assistance"`
	CriterionBase    RateBase `json:"criterion_base"`
}

// Summary is the presentation-ready statistics table consumed by reporting
// and visualization collaborators. Pure derivation; no new business rules.
type Summary struct {
	TotalHouseholds    int `json:"total_households"`
	TotalPersons       int `json:"total_persons"`
	EligibleHouseholds int `json:"eligible_households"`

	Breakdown EligibilityBreakdown `json:"eligibility_breakdown"`

	MonthlyIncomeAll      IncomeRange `json:"monthly_income_all"`
	MonthlyIncomeEligible IncomeRange `json:"monthly_income_eligible"`

	HouseholdSizes []BracketShare `json:"household_sizes"`
	IncomeBrackets []BracketShare `json:"income_brackets"`
	WorkingMembers []BracketShare `json:"working_members"`

	// Mean monthly income by source across eligible households.
	AvgMonthlyPublicAssistance float64 `json:"avg_monthly_public_assistance"`
	AvgMonthlyRetirement       float64 `json:"avg_monthly_retirement"`
	AvgMonthlyInterest         float64 `json:"avg_monthly_interest"`
	AvgMonthlySocialSecurity   float64 `json:"avg_monthly_social_security"`

	WorkingHouseholds int     `json:"working_households"`
	AvgWorkingMembers float64 `json:"avg_working_members"`
	AvgHouseholdSize  float64 `json:"avg_household_size"`
}
