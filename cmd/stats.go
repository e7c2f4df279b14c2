package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawelsloboda5/calworks-analysis/internal/pipeline"
	"github.com/pawelsloboda5/calworks-analysis/internal/pums"
)

var statsInput string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics for a derived household table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		households, err := pums.ReadDerivedHouseholds(statsInput)
		if err != nil {
			return err
		}

		summary := pipeline.BuildSummary(households, 0)
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsInput, "input", "", "derived household CSV (required)")
	_ = statsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(statsCmd)
}
