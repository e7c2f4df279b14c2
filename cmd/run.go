package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
	"github.com/pawelsloboda5/calworks-analysis/internal/pipeline"
)

var (
	runRegion     string
	runThresholds string
	runWriteAll   bool
	runXLSX       string
	runQuiet      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full eligibility pipeline",
	Long: `Loads the household and person PUMS extracts, aggregates person income
into households, classifies each household against the MBSAC schedule, and
writes eligible households, eligible persons, per-PUMA summaries, employment
metrics, and summary statistics to the output directory.

Examples:
  # Default region from config
  calworks run

  # Different region, with an Excel workbook
  calworks run --region san_francisco --xlsx results.xlsx

  # Override the MBSAC schedule from a YAML file
  calworks run --thresholds mbsac_2025.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if runThresholds != "" {
			sched, err := config.LoadSchedule(runThresholds)
			if err != nil {
				return err
			}
			cfg.MBSAC = sched
			zap.L().Info("loaded threshold override", zap.String("path", runThresholds))
		}

		result, err := pipeline.Run(cmd.Context(), cfg, pipeline.RunOptions{
			Region:   runRegion,
			WriteAll: runWriteAll,
			XLSXPath: runXLSX,
		})
		if err != nil {
			return err
		}

		if !runQuiet {
			fmt.Fprintln(cmd.OutOrStdout(), result.Report)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d of %d households eligible across %d PUMAs (outputs in %s)\n",
			result.RunID, result.Eligible, result.Households, result.Regions, result.OutputDir)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runRegion, "region", "", "named region to analyze (default: config default_region)")
	runCmd.Flags().StringVar(&runThresholds, "thresholds", "", "YAML file overriding the MBSAC schedule")
	runCmd.Flags().BoolVar(&runWriteAll, "write-all", false, "also write the full classified household table")
	runCmd.Flags().StringVar(&runXLSX, "xlsx", "", "write an Excel workbook to this path")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress the text report on stdout")
	rootCmd.AddCommand(runCmd)
}
