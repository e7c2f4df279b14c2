// Package model defines the typed records flowing through the analysis
// pipeline: person and household microdata rows, their derived income and
// eligibility fields, and the per-region summary tables.
package model

// Amount is an income value that may be absent from the source dataset.
// An absent amount sums as zero but remains distinguishable from a recorded
// zero, so readers can report which source columns were missing.
type Amount struct {
	Value   float64
	Present bool
}

// Some returns a present Amount.
func Some(v float64) Amount {
	return Amount{Value: v, Present: true}
}

// None returns an absent Amount.
func None() Amount {
	return Amount{}
}

// Float returns the recorded value, or zero when absent.
func (a Amount) Float() float64 {
	if !a.Present {
		return 0
	}
	return a.Value
}

// Monthly returns the annual value divided over twelve months.
func (a Amount) Monthly() float64 {
	return a.Float() / 12
}

// Positive reports whether a value was recorded and is greater than zero.
func (a Amount) Positive() bool {
	return a.Present && a.Value > 0
}
