package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/config"
	"github.com/pawelsloboda5/calworks-analysis/internal/geo"
	"github.com/pawelsloboda5/calworks-analysis/internal/model"
	"github.com/pawelsloboda5/calworks-analysis/internal/pums"
	"github.com/pawelsloboda5/calworks-analysis/internal/report"
)

// RunOptions tune a single pipeline invocation.
type RunOptions struct {
	Region   string // named region override; empty uses the configured default
	WriteAll bool   // also write the full classified table, not just eligible rows
	XLSXPath string // if set, export the workbook here
}

// RunResult reports what a completed run produced.
type RunResult struct {
	RunID      string
	Region     string
	Households int // households in the target region
	Persons    int // persons under eligible households
	Eligible   int
	Regions    int
	Quality    BatchQuality
	OutputDir  string
	Report     string
}

// runMetadata is persisted alongside the outputs for reproducibility.
type runMetadata struct {
	RunID           string    `json:"run_id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Region          string    `json:"region"`
	PUMACodes       []int     `json:"puma_codes"`
	Policy          string    `json:"policy"`
	InputHouseholds int       `json:"input_households"`
	InputPersons    int       `json:"input_persons"`
	Eligible        int       `json:"eligible_households"`
	NonPositiveSize int       `json:"non_positive_size"`
	ZeroIncome      int       `json:"zero_income_households"`
	ConfigDigest    string    `json:"config_digest"`
}

// configDigest fingerprints the effective configuration so a saved run can be
// matched back to the settings that produced it.
func configDigest(cfg *config.Config) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// topRegions keeps the n regions with the most eligible households for the
// text report; n <= 0 keeps everything. The full table is always written to
// disk regardless.
func topRegions(summaries []model.RegionSummary, n int) []model.RegionSummary {
	if n <= 0 || len(summaries) <= n {
		return summaries
	}
	top := make([]model.RegionSummary, len(summaries))
	copy(top, summaries)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].EligibleHouseholds > top[j].EligibleHouseholds
	})
	return top[:n]
}

// Run executes the full batch: load, validate, aggregate income, classify,
// filter to the target region, roll up by PUMA, and write every output
// table. Validation failures and I/O errors abort before any output is
// written; data-quality conditions are logged and tallied instead.
func Run(ctx context.Context, cfg *config.Config, opts RunOptions) (*RunResult, error) {
	start := time.Now().UTC()
	runID := uuid.NewString()
	log := zap.L().With(zap.String("component", "pipeline"), zap.String("run_id", runID))

	schedule, err := NewSchedule(cfg.MBSAC)
	if err != nil {
		return nil, err
	}
	policy, err := ParsePolicy(cfg.Eligibility.Policy)
	if err != nil {
		return nil, err
	}
	region, err := cfg.Region(opts.Region)
	if err != nil {
		return nil, err
	}

	// Load. Schema and I/O errors are fatal before any computation.
	households, hhStats, err := pums.ReadHouseholds(cfg.Paths.HouseholdData, cfg.Columns)
	if err != nil {
		return nil, err
	}
	persons, pStats, err := pums.ReadPersons(cfg.Paths.PersonData, cfg.Columns)
	if err != nil {
		return nil, err
	}
	log.Info("loaded input datasets",
		zap.Int("households", hhStats.Rows),
		zap.Int("persons", pStats.Rows),
	)

	households = FilterState(households, cfg.Pipeline.StateCode)
	persons = PersonsInHouseholds(persons, households)

	// Income aggregation and classification across the full state scope.
	incomes, err := AggregateIncome(ctx, persons, cfg.Pipeline.Concurrency)
	if err != nil {
		return nil, err
	}
	classifier := Classifier{
		Schedule:  schedule,
		Policy:    policy,
		Disregard: cfg.Eligibility.EarnedIncomeDisregard,
	}
	classified, quality := classifier.Classify(households, incomes)

	// Region scope: eligible households drive the roll-up; the full region
	// count is the rate denominator.
	regionAll := FilterRegion(classified, region)
	regionEligible := EligibleOnly(regionAll)
	regionPersons := PersonsInHouseholds(persons, regionEligible)

	totals := make(map[int]int)
	for _, h := range regionAll {
		totals[h.PUMA]++
	}

	summaries, err := AggregateRegions(ctx, regionEligible, regionPersons, totals, cfg.Pipeline.Concurrency)
	if err != nil {
		return nil, err
	}

	if cfg.Geo.PUMAShapefile != "" {
		attrs, err := geo.LoadPUMAAttributes(cfg.Geo.PUMAShapefile)
		if err != nil {
			return nil, err
		}
		summaries = geo.Enrich(summaries, attrs)
	}

	employment := ComputeEmploymentMetrics(summaries)
	summary := BuildSummary(regionAll, len(regionPersons))
	text := FormatReport(region.Name, summary, topRegions(summaries, cfg.Report.TopRegions))

	// Outputs.
	outDir := cfg.Paths.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "pipeline: create output dir %s", outDir)
	}

	if err := pums.WriteHouseholds(filepath.Join(outDir, "eligible_households.csv"), regionEligible); err != nil {
		return nil, err
	}
	if opts.WriteAll {
		if err := pums.WriteHouseholds(filepath.Join(outDir, "all_households.csv"), regionAll); err != nil {
			return nil, err
		}
	}
	if err := pums.WritePersons(filepath.Join(outDir, "eligible_persons.csv"), regionPersons); err != nil {
		return nil, err
	}
	if err := pums.WriteRegionSummaries(filepath.Join(outDir, "region_analysis.csv"), summaries); err != nil {
		return nil, err
	}
	if err := pums.WriteEmploymentMetrics(filepath.Join(outDir, "employment_metrics.csv"), employment); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(outDir, "summary_statistics.json"), summary); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outDir, "report.txt"), []byte(text), 0o644); err != nil {
		return nil, eris.Wrap(err, "pipeline: write report")
	}

	meta := runMetadata{
		RunID:           runID,
		StartedAt:       start,
		FinishedAt:      time.Now().UTC(),
		Region:          region.Name,
		PUMACodes:       region.PUMACodes,
		Policy:          string(policy),
		InputHouseholds: hhStats.Rows,
		InputPersons:    pStats.Rows,
		Eligible:        len(regionEligible),
		NonPositiveSize: quality.NonPositiveSize,
		ZeroIncome:      quality.ZeroIncome,
		ConfigDigest:    configDigest(cfg),
	}
	if err := writeJSON(filepath.Join(outDir, "run_metadata.json"), meta); err != nil {
		return nil, err
	}

	if opts.XLSXPath != "" {
		if err := report.WriteWorkbook(opts.XLSXPath, summaries, summary); err != nil {
			return nil, err
		}
	}

	log.Info("pipeline completed",
		zap.Int("region_households", len(regionAll)),
		zap.Int("eligible", len(regionEligible)),
		zap.Int("regions", len(summaries)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &RunResult{
		RunID:      runID,
		Region:     region.Name,
		Households: len(regionAll),
		Persons:    len(regionPersons),
		Eligible:   len(regionEligible),
		Regions:    len(summaries),
		Quality:    quality,
		OutputDir:  outDir,
		Report:     text,
	}, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "pipeline: marshal %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write %s", path)
	}
	return nil
}
