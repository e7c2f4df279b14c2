package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/pipeline"
	"github.com/pawelsloboda5/calworks-analysis/internal/pums"
)

var (
	regionsInput  string
	regionsOutput string
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Rebuild per-PUMA summaries from a derived household table",
	Long: `Reads a previously written household table and recomputes the per-PUMA
affordability summaries (median rent, median income, income-to-rent ratio,
eligibility rate). Rate denominators come from the table itself, so feed it
the full classified table rather than an eligible-only extract when the
eligibility rate matters.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		households, err := pums.ReadDerivedHouseholds(regionsInput)
		if err != nil {
			return err
		}

		totals := make(map[int]int)
		for _, h := range households {
			totals[h.PUMA]++
		}
		eligible := pipeline.EligibleOnly(households)

		summaries, err := pipeline.AggregateRegions(cmd.Context(), eligible, nil, totals, cfg.Pipeline.Concurrency)
		if err != nil {
			return err
		}
		zap.L().Info("rebuilt region summaries",
			zap.Int("households", len(households)),
			zap.Int("regions", len(summaries)),
		)

		if err := pums.WriteRegionSummaries(regionsOutput, summaries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d PUMA summaries\n", regionsOutput, len(summaries))
		return nil
	},
}

func init() {
	regionsCmd.Flags().StringVar(&regionsInput, "input", "", "derived household CSV (required)")
	regionsCmd.Flags().StringVar(&regionsOutput, "output", "region_analysis.csv", "where to write the summaries")
	_ = regionsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(regionsCmd)
}
