// Package report exports the analysis tables as an XLSX workbook for
// reporting and charting collaborators.
package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// WriteWorkbook writes the regional roll-up and the run summary as a
// two-sheet workbook.
func WriteWorkbook(path string, summaries []model.RegionSummary, summary model.Summary) error {
	f := xlsx.NewFile()

	if err := addRegionSheet(f, summaries); err != nil {
		return err
	}
	if err := addSummarySheet(f, summary); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addRegionSheet(f *xlsx.File, summaries []model.RegionSummary) error {
	sheet, err := f.AddSheet("regions")
	if err != nil {
		return eris.Wrap(err, "report: add regions sheet")
	}

	header := []string{
		"PUMA", "Region", "Total Households", "Eligible Households", "Persons",
		"Median Rent", "Median Income", "Income/Rent", "Eligibility Rate %",
		"With Employment Income", "Land Area km2", "Households per km2",
	}
	row := sheet.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}

	for _, s := range summaries {
		row := sheet.AddRow()
		row.AddCell().SetInt(s.PUMA)
		row.AddCell().SetString(s.RegionName)
		row.AddCell().SetInt(s.TotalHouseholds)
		row.AddCell().SetInt(s.EligibleHouseholds)
		row.AddCell().SetInt(s.Persons)
		row.AddCell().SetFloatWithFormat(s.MedianRent, "0.00")
		row.AddCell().SetFloatWithFormat(s.MedianIncome, "0.00")
		row.AddCell().SetFloatWithFormat(s.IncomeToRent, "0.00")
		row.AddCell().SetFloatWithFormat(s.EligibilityRate, "0.00")
		row.AddCell().SetInt(s.WithEmploymentIncome)
		row.AddCell().SetFloatWithFormat(s.LandAreaSqKm, "0.00")
		row.AddCell().SetFloatWithFormat(s.HouseholdsPerSqKm, "0.00")
	}
	return nil
}

func addSummarySheet(f *xlsx.File, summary model.Summary) error {
	sheet, err := f.AddSheet("summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}

	addKV := func(key string, set func(c *xlsx.Cell)) {
		row := sheet.AddRow()
		row.AddCell().SetString(key)
		set(row.AddCell())
	}

	addKV("Total Households", func(c *xlsx.Cell) { c.SetInt(summary.TotalHouseholds) })
	addKV("Total Persons", func(c *xlsx.Cell) { c.SetInt(summary.TotalPersons) })
	addKV("Eligible Households", func(c *xlsx.Cell) { c.SetInt(summary.EligibleHouseholds) })
	addKV("Eligibility Rate %", func(c *xlsx.Cell) { c.SetFloatWithFormat(summary.Breakdown.EligibleRate, "0.00") })
	addKV("Income Eligible %", func(c *xlsx.Cell) { c.SetFloatWithFormat(summary.Breakdown.IncomeEligible, "0.00") })
	addKV("Food Stamps %", func(c *xlsx.Cell) { c.SetFloatWithFormat(summary.Breakdown.FoodStamps, "0.00") })
	addKV("Public Assistance %", func(c *xlsx.Cell) { c.SetFloatWithFormat(summary.Breakdown.PublicAssistance, "0.00") })
	addKV("Median Monthly Income (eligible)", func(c *xlsx.Cell) { c.SetFloatWithFormat(summary.MonthlyIncomeEligible.P50, "0.00") })
	addKV("Working Households", func(c *xlsx.Cell) { c.SetInt(summary.WorkingHouseholds) })
	addKV("Avg Household Size", func(c *xlsx.Cell) { c.SetFloatWithFormat(summary.AvgHouseholdSize, "0.00") })

	for _, share := range summary.HouseholdSizes {
		addKV("Size "+share.Label, func(c *xlsx.Cell) { c.SetFloatWithFormat(share.Share, "0.00") })
	}
	for _, share := range summary.IncomeBrackets {
		addKV("Income "+share.Label, func(c *xlsx.Cell) { c.SetFloatWithFormat(share.Share, "0.00") })
	}
	return nil
}
