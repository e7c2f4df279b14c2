package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
	"github.com/pawelsloboda5/calworks-analysis/internal/model"
	"github.com/pawelsloboda5/calworks-analysis/internal/pipeline"
	"github.com/pawelsloboda5/calworks-analysis/internal/pums"
)

var (
	eligibilityInput      string
	eligibilityOutput     string
	eligibilityPersons    string
	eligibilityPolicy     string
	eligibilityThresholds string
	eligibilityAll        bool
)

var eligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "Classify households and stop before the regional roll-up",
	Long: `Runs income aggregation and eligibility classification, then writes the
classified household table (and matching persons) without the regional
analysis. With --input it instead re-classifies a previously written table,
optionally under a different policy or MBSAC schedule, which is useful for
comparing policy variants without re-reading the raw extracts.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if eligibilityThresholds != "" {
			sched, err := config.LoadSchedule(eligibilityThresholds)
			if err != nil {
				return err
			}
			cfg.MBSAC = sched
		}
		if eligibilityPolicy != "" {
			cfg.Eligibility.Policy = eligibilityPolicy
		}

		schedule, err := pipeline.NewSchedule(cfg.MBSAC)
		if err != nil {
			return err
		}
		policy, err := pipeline.ParsePolicy(cfg.Eligibility.Policy)
		if err != nil {
			return err
		}
		classifier := pipeline.Classifier{
			Schedule:  schedule,
			Policy:    policy,
			Disregard: cfg.Eligibility.EarnedIncomeDisregard,
		}

		var (
			households []model.Household
			persons    []model.Person
			incomes    map[string]model.HouseholdIncome
		)
		if eligibilityInput != "" {
			households, err = pums.ReadDerivedHouseholds(eligibilityInput)
			if err != nil {
				return err
			}
		} else {
			households, _, err = pums.ReadHouseholds(cfg.Paths.HouseholdData, cfg.Columns)
			if err != nil {
				return err
			}
			persons, _, err = pums.ReadPersons(cfg.Paths.PersonData, cfg.Columns)
			if err != nil {
				return err
			}
			households = pipeline.FilterState(households, cfg.Pipeline.StateCode)
			persons = pipeline.PersonsInHouseholds(persons, households)

			incomes, err = pipeline.AggregateIncome(cmd.Context(), persons, cfg.Pipeline.Concurrency)
			if err != nil {
				return err
			}
		}

		classified, quality := classifier.Classify(households, incomes)
		eligible := pipeline.EligibleOnly(classified)
		zap.L().Info("classified households",
			zap.String("policy", string(policy)),
			zap.Int("households", len(classified)),
			zap.Int("eligible", len(eligible)),
			zap.Int("zero_income", quality.ZeroIncome),
		)

		out := eligible
		if eligibilityAll {
			out = classified
		}
		if err := pums.WriteHouseholds(eligibilityOutput, out); err != nil {
			return err
		}
		if eligibilityPersons != "" && persons != nil {
			keep := pipeline.PersonsInHouseholds(persons, eligible)
			if err := pums.WritePersons(eligibilityPersons, keep); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d households eligible under policy %s\n",
			eligibilityOutput, len(eligible), len(classified), policy)
		return nil
	},
}

func init() {
	eligibilityCmd.Flags().StringVar(&eligibilityInput, "input", "", "derived household CSV to re-classify (default: raw extracts from config)")
	eligibilityCmd.Flags().StringVar(&eligibilityOutput, "output", "eligible_households.csv", "where to write the classified table")
	eligibilityCmd.Flags().StringVar(&eligibilityPersons, "persons", "", "also write persons from eligible households here (raw-input mode only)")
	eligibilityCmd.Flags().StringVar(&eligibilityPolicy, "policy", "", "eligibility policy override (strict, zero_income_inclusive, disregard_adjusted)")
	eligibilityCmd.Flags().StringVar(&eligibilityThresholds, "thresholds", "", "YAML file overriding the MBSAC schedule")
	eligibilityCmd.Flags().BoolVar(&eligibilityAll, "all", false, "write every classified household, not only the eligible subset")
	rootCmd.AddCommand(eligibilityCmd)
}
