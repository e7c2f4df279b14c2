package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/geo"
	"github.com/pawelsloboda5/calworks-analysis/internal/pums"
)

var (
	geoInput     string
	geoOutput    string
	geoShapefile string
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Enrich region summaries with TIGER PUMA attributes",
	Long: `Joins a region summary table against a TIGER/Line PUMA shapefile,
adding the PUMA name, land area, and household density columns.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		shpPath := geoShapefile
		if shpPath == "" {
			shpPath = cfg.Geo.PUMAShapefile
		}
		if shpPath == "" {
			return fmt.Errorf("no shapefile: pass --shapefile or set geo.puma_shapefile")
		}

		summaries, err := pums.ReadRegionSummaries(geoInput)
		if err != nil {
			return err
		}
		attrs, err := geo.LoadPUMAAttributes(shpPath)
		if err != nil {
			return err
		}
		enriched := geo.Enrich(summaries, attrs)

		matched := 0
		for _, s := range enriched {
			if s.RegionName != "" {
				matched++
			}
		}
		zap.L().Info("enriched summaries",
			zap.Int("regions", len(enriched)),
			zap.Int("matched", matched),
			zap.Int("shapefile_pumas", len(attrs)),
		)

		if err := pums.WriteRegionSummaries(geoOutput, enriched); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d regions matched shapefile attributes\n",
			geoOutput, matched, len(enriched))
		return nil
	},
}

func init() {
	geoCmd.Flags().StringVar(&geoInput, "input", "", "region summary CSV (required)")
	geoCmd.Flags().StringVar(&geoOutput, "output", "region_analysis_geo.csv", "where to write the enriched summaries")
	geoCmd.Flags().StringVar(&geoShapefile, "shapefile", "", "TIGER PUMA shapefile (.shp); defaults to geo.puma_shapefile")
	_ = geoCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(geoCmd)
}
