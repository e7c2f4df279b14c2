package model

// Person is one PUMS person row. All income components are 12-month totals;
// absent components (column missing from the source file) are zero-valued but
// marked absent.
type Person struct {
	SerialNo string // household linkage key
	PUMA     int

	// Earned income components.
	Wages          Amount // WAGP
	SelfEmployment Amount // SEMP

	// Unearned income components.
	Retirement       Amount // RETP
	Interest         Amount // INTP
	PublicAssistance Amount // PAP
	SocialSecurity   Amount // SSP
}

// EarnedIncome is the person's annual earned income.
func (p Person) EarnedIncome() float64 {
	return p.Wages.Float() + p.SelfEmployment.Float()
}

// UnearnedIncome is the person's annual unearned income.
func (p Person) UnearnedIncome() float64 {
	return p.Retirement.Float() + p.Interest.Float() +
		p.PublicAssistance.Float() + p.SocialSecurity.Float()
}

// Working reports whether the person has any earned income.
func (p Person) Working() bool {
	return p.EarnedIncome() > 0
}
