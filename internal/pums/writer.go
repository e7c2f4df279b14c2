package pums

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
)

// writeCSV writes a header plus rows to path, creating parent-less files
// atomically enough for a batch run (truncate + write + close).
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "pums: create %s", path)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrapf(err, "pums: write header of %s", path)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "pums: write row of %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "pums: flush %s", path)
	}
	return nil
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// ftoa2 formats reporting floats at two decimals for output stability.
func ftoa2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func btoi(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
