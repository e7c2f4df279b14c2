package model

// HouseholdIncome is the per-household rollup of person income components.
// Annual fields are 12-month totals; monthly fields are annual / 12.
type HouseholdIncome struct {
	Earned    float64
	Unearned  float64
	Countable float64 // Earned + Unearned

	MonthlyCountable        float64
	MonthlyEarned           float64
	MonthlyRetirement       float64
	MonthlyInterest         float64
	MonthlyPublicAssistance float64
	MonthlySocialSecurity   float64

	WorkingMembers   int
	PublicAssistance float64 // annual PAP total across members
	AnyPAP           bool
}

// Eligibility holds the classifier's decision and every intermediate
// criterion, so downstream reporting can break the verdict down.
type Eligibility struct {
	Threshold float64 // MBSAC amount for the household's size

	IncomeEligible   bool
	FoodStamps       bool // categorical: food-assistance participation
	PublicAssistance bool // categorical: cash-assistance payment > 0

	Eligible bool
}

// Household is one PUMS household row plus the derived fields added by the
// income aggregation and eligibility stages. Raw fields are immutable after
// load; stages return copies rather than mutating their input.
type Household struct {
	SerialNo     string // unique linkage key
	State        int    // ST; zero when the column is absent
	PUMA         int
	Size         int    // NP; positive for valid rows
	AnnualIncome Amount // HINCP
	GrossRent    Amount // GRNTP, may be zero or absent
	FoodStamps   bool   // FS == 1

	Income      HouseholdIncome
	Eligibility Eligibility
	Classified  bool
}

// MonthlyIncome is the household's reported total income per month.
func (h Household) MonthlyIncome() float64 {
	return h.AnnualIncome.Monthly()
}

// HasEmploymentIncome reports whether any member earns employment income.
func (h Household) HasEmploymentIncome() bool {
	return h.Income.Earned > 0
}
