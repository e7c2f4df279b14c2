// Package pums reads and writes the tabular datasets flowing through the
// pipeline: raw ACS PUMS household and person files on the way in, derived
// household and region-summary tables on the way out.
package pums

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// ReadStats reports what a reader tolerated: optional columns absent from the
// file (zero-filled for every row) and cells that failed numeric parsing.
type ReadStats struct {
	Rows            int
	MissingOptional []string
	BadNumeric      int
}

// ReadHouseholds loads the household dataset. The linkage key, geography,
// size, total income, and food-stamps columns are required; a missing one is
// a schema error for the whole file. Rent is optional.
func ReadHouseholds(path string, cols config.ColumnsConfig) ([]model.Household, ReadStats, error) {
	log := zap.L().With(zap.String("component", "pums.reader"), zap.String("file", path))

	rows, header, err := readAll(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	idx := indexHeader(header)

	required := []string{cols.SerialNo, cols.PUMA, cols.Size, cols.TotalIncome, cols.FoodStamps}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, ReadStats{}, eris.Errorf("pums: %s missing required column %s", path, name)
		}
	}

	var stats ReadStats
	for _, name := range []string{cols.Rent, cols.State} {
		if _, ok := idx[name]; !ok {
			stats.MissingOptional = append(stats.MissingOptional, name)
			log.Warn("optional column missing, treating as zero", zap.String("column", name))
		}
	}

	households := make([]model.Household, 0, len(rows))
	for _, rec := range rows {
		h := model.Household{
			SerialNo:     field(rec, idx, cols.SerialNo),
			State:        parseIntCell(rec, idx, cols.State, &stats),
			PUMA:         parseIntCell(rec, idx, cols.PUMA, &stats),
			Size:         parseIntCell(rec, idx, cols.Size, &stats),
			AnnualIncome: parseAmount(rec, idx, cols.TotalIncome, &stats),
			GrossRent:    parseAmount(rec, idx, cols.Rent, &stats),
			FoodStamps:   parseIntCell(rec, idx, cols.FoodStamps, &stats) == 1,
		}
		households = append(households, h)
	}
	stats.Rows = len(households)

	log.Info("loaded households",
		zap.Int("rows", stats.Rows),
		zap.Int("bad_numeric", stats.BadNumeric),
	)
	return households, stats, nil
}

// ReadPersons loads the person dataset. Only the linkage key is required;
// every income column is optional and zero-filled with a warning when absent.
func ReadPersons(path string, cols config.ColumnsConfig) ([]model.Person, ReadStats, error) {
	log := zap.L().With(zap.String("component", "pums.reader"), zap.String("file", path))

	rows, header, err := readAll(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	idx := indexHeader(header)

	if _, ok := idx[cols.SerialNo]; !ok {
		return nil, ReadStats{}, eris.Errorf("pums: %s missing required column %s", path, cols.SerialNo)
	}

	var stats ReadStats
	optional := []string{cols.PUMA, cols.Wages, cols.SelfEmployment, cols.Retirement,
		cols.Interest, cols.PublicAssistance, cols.SocialSecurity}
	for _, name := range optional {
		if _, ok := idx[name]; !ok {
			stats.MissingOptional = append(stats.MissingOptional, name)
			log.Warn("optional column missing, treating as zero", zap.String("column", name))
		}
	}

	persons := make([]model.Person, 0, len(rows))
	for _, rec := range rows {
		p := model.Person{
			SerialNo:         field(rec, idx, cols.SerialNo),
			PUMA:             parseIntCell(rec, idx, cols.PUMA, &stats),
			Wages:            parseAmount(rec, idx, cols.Wages, &stats),
			SelfEmployment:   parseAmount(rec, idx, cols.SelfEmployment, &stats),
			Retirement:       parseAmount(rec, idx, cols.Retirement, &stats),
			Interest:         parseAmount(rec, idx, cols.Interest, &stats),
			PublicAssistance: parseAmount(rec, idx, cols.PublicAssistance, &stats),
			SocialSecurity:   parseAmount(rec, idx, cols.SocialSecurity, &stats),
		}
		persons = append(persons, p)
	}
	stats.Rows = len(persons)

	log.Info("loaded persons",
		zap.Int("rows", stats.Rows),
		zap.Int("bad_numeric", stats.BadNumeric),
	)
	return persons, stats, nil
}

func readAll(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pums: open %s", path)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err = reader.Read()
	if err == io.EOF {
		return nil, nil, eris.Errorf("pums: %s is empty", path)
	}
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pums: read header of %s", path)
	}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, eris.Wrapf(err, "pums: read %s", path)
		}
		rows = append(rows, rec)
	}
	return rows, header, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func field(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseAmount reads a cell as an optional income value. An absent column or
// empty cell yields an absent Amount; a malformed cell counts as bad and
// also yields absent, so undefined values never enter the computation.
func parseAmount(rec []string, idx map[string]int, name string, stats *ReadStats) model.Amount {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return model.None()
	}
	cell := strings.TrimSpace(rec[i])
	if cell == "" {
		return model.None()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		stats.BadNumeric++
		return model.None()
	}
	return model.Some(v)
}

func parseIntCell(rec []string, idx map[string]int, name string, stats *ReadStats) int {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return 0
	}
	cell := strings.TrimSpace(rec[i])
	if cell == "" {
		return 0
	}
	// Some PUMS extracts carry integer codes as floats ("7507.0").
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		stats.BadNumeric++
		return 0
	}
	return int(v)
}
