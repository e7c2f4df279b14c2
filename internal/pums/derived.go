package pums

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// householdColumns is the stable column order of the derived household table.
// Raw PUMS names are kept for the raw fields so downstream tools that know
// the data dictionary keep working.
var householdColumns = []string{
	"SERIALNO", "ST", "PUMA", "NP", "HINCP", "GRNTP", "FS",
	"earned_income", "unearned_income", "total_countable_income",
	"monthly_countable_income", "monthly_earned_income",
	"monthly_RETP", "monthly_INTP", "monthly_PAP", "monthly_SSP",
	"working_members", "PAP", "any_pap", "monthly_income",
	"MBSAC", "income_eligible", "food_stamps_recipient",
	"public_assistance_recipient", "eligible_calworks",
}

// WriteHouseholds writes the derived household table, one row per household
// with every intermediate eligibility boolean included.
func WriteHouseholds(path string, households []model.Household) error {
	rows := make([][]string, 0, len(households))
	for _, h := range households {
		rows = append(rows, []string{
			h.SerialNo,
			itoa(h.State),
			itoa(h.PUMA),
			itoa(h.Size),
			ftoa(h.AnnualIncome.Float()),
			ftoa(h.GrossRent.Float()),
			btoi(h.FoodStamps),
			ftoa(h.Income.Earned),
			ftoa(h.Income.Unearned),
			ftoa(h.Income.Countable),
			ftoa2(h.Income.MonthlyCountable),
			ftoa2(h.Income.MonthlyEarned),
			ftoa2(h.Income.MonthlyRetirement),
			ftoa2(h.Income.MonthlyInterest),
			ftoa2(h.Income.MonthlyPublicAssistance),
			ftoa2(h.Income.MonthlySocialSecurity),
			itoa(h.Income.WorkingMembers),
			ftoa(h.Income.PublicAssistance),
			btoi(h.Income.AnyPAP),
			ftoa2(h.MonthlyIncome()),
			ftoa2(h.Eligibility.Threshold),
			btoi(h.Eligibility.IncomeEligible),
			btoi(h.Eligibility.FoodStamps),
			btoi(h.Eligibility.PublicAssistance),
			btoi(h.Eligibility.Eligible),
		})
	}
	return writeCSV(path, householdColumns, rows)
}

// ReadDerivedHouseholds loads a table previously written by WriteHouseholds,
// so roll-up and statistics commands can run from saved eligibility output.
func ReadDerivedHouseholds(path string) ([]model.Household, error) {
	rows, header, err := readAll(path)
	if err != nil {
		return nil, err
	}
	idx := indexHeader(header)

	for _, name := range householdColumns {
		if _, ok := idx[name]; !ok {
			return nil, eris.Errorf("pums: %s missing derived column %s", path, name)
		}
	}

	get := func(rec []string, name string) string { return field(rec, idx, name) }
	f64 := func(rec []string, name string) (float64, error) {
		cell := get(rec, name)
		if cell == "" {
			return 0, nil
		}
		return strconv.ParseFloat(cell, 64)
	}

	households := make([]model.Household, 0, len(rows))
	for n, rec := range rows {
		var h model.Household
		h.SerialNo = get(rec, "SERIALNO")

		ints := map[string]*int{
			"ST": &h.State, "PUMA": &h.PUMA, "NP": &h.Size,
			"working_members": &h.Income.WorkingMembers,
		}
		for name, dst := range ints {
			v, err := f64(rec, name)
			if err != nil {
				return nil, eris.Wrapf(err, "pums: %s row %d column %s", path, n+1, name)
			}
			*dst = int(v)
		}

		floats := map[string]*float64{
			"earned_income":               &h.Income.Earned,
			"unearned_income":             &h.Income.Unearned,
			"total_countable_income":      &h.Income.Countable,
			"monthly_countable_income":    &h.Income.MonthlyCountable,
			"monthly_earned_income":       &h.Income.MonthlyEarned,
			"monthly_RETP":                &h.Income.MonthlyRetirement,
			"monthly_INTP":                &h.Income.MonthlyInterest,
			"monthly_PAP":                 &h.Income.MonthlyPublicAssistance,
			"monthly_SSP":                 &h.Income.MonthlySocialSecurity,
			"PAP":                         &h.Income.PublicAssistance,
			"MBSAC":                       &h.Eligibility.Threshold,
		}
		for name, dst := range floats {
			v, err := f64(rec, name)
			if err != nil {
				return nil, eris.Wrapf(err, "pums: %s row %d column %s", path, n+1, name)
			}
			*dst = v
		}

		hincp, err := f64(rec, "HINCP")
		if err != nil {
			return nil, eris.Wrapf(err, "pums: %s row %d column HINCP", path, n+1)
		}
		h.AnnualIncome = model.Some(hincp)
		rent, err := f64(rec, "GRNTP")
		if err != nil {
			return nil, eris.Wrapf(err, "pums: %s row %d column GRNTP", path, n+1)
		}
		h.GrossRent = model.Some(rent)

		h.FoodStamps = get(rec, "FS") == "1"
		h.Income.AnyPAP = get(rec, "any_pap") == "1"
		h.Eligibility.IncomeEligible = get(rec, "income_eligible") == "1"
		h.Eligibility.FoodStamps = get(rec, "food_stamps_recipient") == "1"
		h.Eligibility.PublicAssistance = get(rec, "public_assistance_recipient") == "1"
		h.Eligibility.Eligible = get(rec, "eligible_calworks") == "1"
		h.Classified = true

		households = append(households, h)
	}
	return households, nil
}

// WritePersons writes the person table. Absent income values stay empty so
// re-reading the file preserves the present/absent distinction.
func WritePersons(path string, persons []model.Person) error {
	header := []string{"SERIALNO", "PUMA", "WAGP", "SEMP", "RETP", "INTP", "PAP", "SSP"}

	amount := func(a model.Amount) string {
		if !a.Present {
			return ""
		}
		return ftoa(a.Value)
	}

	rows := make([][]string, 0, len(persons))
	for _, p := range persons {
		rows = append(rows, []string{
			p.SerialNo,
			itoa(p.PUMA),
			amount(p.Wages),
			amount(p.SelfEmployment),
			amount(p.Retirement),
			amount(p.Interest),
			amount(p.PublicAssistance),
			amount(p.SocialSecurity),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteRegionSummaries writes the regional roll-up table, one row per PUMA.
func WriteRegionSummaries(path string, summaries []model.RegionSummary) error {
	header := []string{
		"PUMA", "region_name", "total_households", "households_count", "persons_count",
		"median_rent", "median_income", "median_earned_income",
		"median_income_to_rent_ratio", "zero_rent_ratio", "eligibility_rate",
		"median_RETP", "median_INTP", "median_PAP", "median_SSP",
		"total_earned_income", "RETP", "INTP", "PAP", "SSP",
		"has_employment_income", "has_retirement_income", "has_dividend_income",
		"has_public_assistance_income", "has_social_security_income",
		"land_area_sq_km", "households_per_sq_km",
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			itoa(s.PUMA),
			s.RegionName,
			itoa(s.TotalHouseholds),
			itoa(s.EligibleHouseholds),
			itoa(s.Persons),
			ftoa2(s.MedianRent),
			ftoa2(s.MedianIncome),
			ftoa2(s.MedianEarnedIncome),
			ftoa2(s.IncomeToRent),
			btoi(s.ZeroRentRatio),
			ftoa2(s.EligibilityRate),
			ftoa2(s.MedianRetirement),
			ftoa2(s.MedianInterest),
			ftoa2(s.MedianPublicAssistance),
			ftoa2(s.MedianSocialSecurity),
			ftoa2(s.SumEarned),
			ftoa2(s.SumRetirement),
			ftoa2(s.SumInterest),
			ftoa2(s.SumPublicAssistance),
			ftoa2(s.SumSocialSecurity),
			itoa(s.WithEmploymentIncome),
			itoa(s.WithRetirementIncome),
			itoa(s.WithDividendIncome),
			itoa(s.WithPublicAssistanceIncome),
			itoa(s.WithSocialSecurityIncome),
			ftoa2(s.LandAreaSqKm),
			ftoa2(s.HouseholdsPerSqKm),
		})
	}
	return writeCSV(path, header, rows)
}

// ReadRegionSummaries loads a table previously written by
// WriteRegionSummaries, for geographic enrichment of saved roll-ups.
func ReadRegionSummaries(path string) ([]model.RegionSummary, error) {
	rows, header, err := readAll(path)
	if err != nil {
		return nil, err
	}
	idx := indexHeader(header)

	for _, name := range []string{"PUMA", "total_households", "households_count"} {
		if _, ok := idx[name]; !ok {
			return nil, eris.Errorf("pums: %s missing summary column %s", path, name)
		}
	}

	f64 := func(rec []string, name string) float64 {
		v, err := strconv.ParseFloat(field(rec, idx, name), 64)
		if err != nil {
			return 0
		}
		return v
	}

	summaries := make([]model.RegionSummary, 0, len(rows))
	for _, rec := range rows {
		s := model.RegionSummary{
			PUMA:                       int(f64(rec, "PUMA")),
			RegionName:                 field(rec, idx, "region_name"),
			TotalHouseholds:            int(f64(rec, "total_households")),
			EligibleHouseholds:         int(f64(rec, "households_count")),
			Persons:                    int(f64(rec, "persons_count")),
			MedianRent:                 f64(rec, "median_rent"),
			MedianIncome:               f64(rec, "median_income"),
			MedianEarnedIncome:         f64(rec, "median_earned_income"),
			IncomeToRent:               f64(rec, "median_income_to_rent_ratio"),
			ZeroRentRatio:              field(rec, idx, "zero_rent_ratio") == "1",
			EligibilityRate:            f64(rec, "eligibility_rate"),
			MedianRetirement:           f64(rec, "median_RETP"),
			MedianInterest:             f64(rec, "median_INTP"),
			MedianPublicAssistance:     f64(rec, "median_PAP"),
			MedianSocialSecurity:       f64(rec, "median_SSP"),
			SumEarned:                  f64(rec, "total_earned_income"),
			SumRetirement:              f64(rec, "RETP"),
			SumInterest:                f64(rec, "INTP"),
			SumPublicAssistance:        f64(rec, "PAP"),
			SumSocialSecurity:          f64(rec, "SSP"),
			WithEmploymentIncome:       int(f64(rec, "has_employment_income")),
			WithRetirementIncome:       int(f64(rec, "has_retirement_income")),
			WithDividendIncome:         int(f64(rec, "has_dividend_income")),
			WithPublicAssistanceIncome: int(f64(rec, "has_public_assistance_income")),
			WithSocialSecurityIncome:   int(f64(rec, "has_social_security_income")),
			LandAreaSqKm:               f64(rec, "land_area_sq_km"),
			HouseholdsPerSqKm:          f64(rec, "households_per_sq_km"),
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
