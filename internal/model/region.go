package model

// RegionSummary is one row of the regional roll-up: all aggregates for a
// single PUMA. Float aggregates are rounded to two decimals by the
// aggregator; ratios are 0.0 (never NaN or Inf) when undefined.
type RegionSummary struct {
	PUMA int

	TotalHouseholds    int // all households in the region, the rate denominator
	EligibleHouseholds int // households in the aggregated (eligible) set
	Persons            int

	MedianRent          float64
	MedianIncome        float64 // monthly, from reported total income
	MedianEarnedIncome  float64 // monthly
	IncomeToRent        float64 // median income / median rent
	ZeroRentRatio       bool    // ratio forced to 0.0 because median rent was 0
	EligibilityRate     float64 // eligible / total, percent

	// Per-source monthly medians across eligible households.
	MedianRetirement       float64
	MedianInterest         float64
	MedianPublicAssistance float64
	MedianSocialSecurity   float64

	// Per-source annual sums.
	SumEarned           float64
	SumRetirement       float64
	SumInterest         float64
	SumPublicAssistance float64
	SumSocialSecurity   float64

	// Households with any income from the source.
	WithEmploymentIncome       int
	WithRetirementIncome       int
	WithDividendIncome         int
	WithPublicAssistanceIncome int
	WithSocialSecurityIncome   int

	// Geographic enrichment, populated when a PUMA shapefile is supplied.
	RegionName        string
	LandAreaSqKm      float64
	HouseholdsPerSqKm float64
}

// EmploymentMetrics are the per-region employment and economic-impact
// figures derived from a RegionSummary.
type EmploymentMetrics struct {
	PUMA int

	UnemployedButEligible  int
	EmploymentRate         float64 // percent of eligible households with employment income
	CurrentMonthlyIncome   float64
	PotentialMonthlyIncome float64
	MonthlyIncomeGap       float64
	EstimatedProgramCost   float64
	ROIRatio               float64
}
