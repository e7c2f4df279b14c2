// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Columns     ColumnsConfig     `yaml:"columns" mapstructure:"columns"`
	Pipeline    PipelineConfig    `yaml:"pipeline" mapstructure:"pipeline"`
	MBSAC       MBSACConfig       `yaml:"mbsac" mapstructure:"mbsac"`
	Eligibility EligibilityConfig `yaml:"eligibility" mapstructure:"eligibility"`
	Regions     RegionsConfig     `yaml:"regions" mapstructure:"regions"`
	Geo         GeoConfig         `yaml:"geo" mapstructure:"geo"`
	Report      ReportConfig      `yaml:"report" mapstructure:"report"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// PathsConfig locates input datasets and the output directory.
type PathsConfig struct {
	HouseholdData string `yaml:"household_data" mapstructure:"household_data"`
	PersonData    string `yaml:"person_data" mapstructure:"person_data"`
	OutputDir     string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ColumnsConfig maps each canonical field to its CSV header name. Defaults
// follow the ACS PUMS data dictionary.
type ColumnsConfig struct {
	SerialNo    string `yaml:"serial_no" mapstructure:"serial_no"`
	PUMA        string `yaml:"puma" mapstructure:"puma"`
	State       string `yaml:"state" mapstructure:"state"`
	Size        string `yaml:"size" mapstructure:"size"`
	TotalIncome string `yaml:"total_income" mapstructure:"total_income"`
	Rent        string `yaml:"rent" mapstructure:"rent"`
	FoodStamps  string `yaml:"food_stamps" mapstructure:"food_stamps"`

	Wages            string `yaml:"wages" mapstructure:"wages"`
	SelfEmployment   string `yaml:"self_employment" mapstructure:"self_employment"`
	Retirement       string `yaml:"retirement" mapstructure:"retirement"`
	Interest         string `yaml:"interest" mapstructure:"interest"`
	PublicAssistance string `yaml:"public_assistance" mapstructure:"public_assistance"`
	SocialSecurity   string `yaml:"social_security" mapstructure:"social_security"`
}

// PipelineConfig holds batch-wide settings.
type PipelineConfig struct {
	StateCode   int `yaml:"state_code" mapstructure:"state_code"`
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// MBSACConfig is the benefit-standard schedule: amounts for household sizes
// 1..10 plus the increment applied per person beyond ten.
type MBSACConfig struct {
	Schedule         map[int]float64 `yaml:"schedule" mapstructure:"schedule"`
	AdditionalPerson float64         `yaml:"additional_person" mapstructure:"additional_person"`
}

// EligibilityConfig selects the classification policy.
type EligibilityConfig struct {
	Policy string `yaml:"policy" mapstructure:"policy"`
	// EarnedIncomeDisregard is the fixed monthly deduction applied once to
	// household earned income under the disregard_adjusted policy.
	EarnedIncomeDisregard float64 `yaml:"earned_income_disregard" mapstructure:"earned_income_disregard"`
}

// RegionDef names a region and lists the PUMA codes composing it.
type RegionDef struct {
	Name      string `yaml:"name" mapstructure:"name"`
	PUMACodes []int  `yaml:"puma_codes" mapstructure:"puma_codes"`
}

// RegionsConfig holds the named region definitions and the default target.
type RegionsConfig struct {
	Default     string               `yaml:"default" mapstructure:"default"`
	Definitions map[string]RegionDef `yaml:"definitions" mapstructure:"definitions"`
}

// GeoConfig points at an optional TIGER PUMA shapefile used to enrich the
// regional summary with names and land areas.
type GeoConfig struct {
	PUMAShapefile string `yaml:"puma_shapefile" mapstructure:"puma_shapefile"`
}

// ReportConfig tunes the text report. TopRegions limits the regional section
// to the N regions with the most eligible households; zero shows all.
type ReportConfig struct {
	TopRegions int `yaml:"top_regions" mapstructure:"top_regions"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CALWORKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.household_data", "data/hca_2022.csv")
	v.SetDefault("paths.person_data", "data/pca_2022.csv")
	v.SetDefault("paths.output_dir", "output")
	v.SetDefault("columns.serial_no", "SERIALNO")
	v.SetDefault("columns.puma", "PUMA")
	v.SetDefault("columns.state", "ST")
	v.SetDefault("columns.size", "NP")
	v.SetDefault("columns.total_income", "HINCP")
	v.SetDefault("columns.rent", "GRNTP")
	v.SetDefault("columns.food_stamps", "FS")
	v.SetDefault("columns.wages", "WAGP")
	v.SetDefault("columns.self_employment", "SEMP")
	v.SetDefault("columns.retirement", "RETP")
	v.SetDefault("columns.interest", "INTP")
	v.SetDefault("columns.public_assistance", "PAP")
	v.SetDefault("columns.social_security", "SSP")
	v.SetDefault("pipeline.state_code", 6) // California
	v.SetDefault("pipeline.concurrency", 8)
	// 2024 MBSAC schedule, Region 1.
	v.SetDefault("mbsac.schedule", map[string]float64{
		"1": 899, "2": 1476, "3": 1829, "4": 2170, "5": 2476,
		"6": 2785, "7": 3061, "8": 3331, "9": 3614, "10": 3922,
	})
	v.SetDefault("mbsac.additional_person", 30)
	v.SetDefault("eligibility.policy", "zero_income_inclusive")
	v.SetDefault("eligibility.earned_income_disregard", 450)
	v.SetDefault("regions.default", "san_francisco")
	v.SetDefault("regions.definitions.san_francisco.name", "San Francisco County")
	v.SetDefault("regions.definitions.san_francisco.puma_codes",
		[]int{7507, 7508, 7509, 7510, 7511, 7512, 7513, 7514})
	v.SetDefault("report.top_regions", 0) // 0 shows every region
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	// Weak typing converts the schedule's string map keys to ints.
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the parts of the configuration the pipeline cannot run
// without: a complete non-decreasing threshold schedule and a resolvable
// default region.
func (c *Config) Validate() error {
	if err := validateSchedule(c.MBSAC); err != nil {
		return err
	}

	if c.Regions.Default != "" {
		if _, ok := c.Regions.Definitions[c.Regions.Default]; !ok {
			return eris.Errorf("config: default region %q has no definition", c.Regions.Default)
		}
	}
	for name, def := range c.Regions.Definitions {
		if len(def.PUMACodes) == 0 {
			return eris.Errorf("config: region %q lists no PUMA codes", name)
		}
	}

	if c.Pipeline.Concurrency <= 0 {
		return eris.New("config: pipeline.concurrency must be positive")
	}

	return nil
}

func validateSchedule(m MBSACConfig) error {
	for size := 1; size <= 10; size++ {
		amount, ok := m.Schedule[size]
		if !ok {
			return eris.Errorf("config: mbsac schedule missing size %d", size)
		}
		if amount <= 0 {
			return eris.Errorf("config: mbsac amount for size %d must be positive", size)
		}
	}
	sizes := make([]int, 0, len(m.Schedule))
	for size := range m.Schedule {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for i := 1; i < len(sizes); i++ {
		if m.Schedule[sizes[i]] < m.Schedule[sizes[i-1]] {
			return eris.Errorf("config: mbsac schedule decreases at size %d", sizes[i])
		}
	}
	if m.AdditionalPerson <= 0 {
		return eris.New("config: mbsac additional_person must be positive")
	}
	return nil
}

// scheduleFile is the on-disk shape of a standalone threshold schedule.
type scheduleFile struct {
	Schedule         map[int]float64 `yaml:"schedule"`
	AdditionalPerson float64         `yaml:"additional_person"`
}

// LoadSchedule reads a standalone YAML threshold schedule, used to override
// the configured MBSAC table for a single run.
func LoadSchedule(path string) (MBSACConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MBSACConfig{}, eris.Wrapf(err, "config: read schedule %s", path)
	}

	var f scheduleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return MBSACConfig{}, eris.Wrapf(err, "config: parse schedule %s", path)
	}

	m := MBSACConfig{Schedule: f.Schedule, AdditionalPerson: f.AdditionalPerson}
	if err := validateSchedule(m); err != nil {
		return MBSACConfig{}, err
	}
	return m, nil
}

// Region returns the definition for name, falling back to the default region
// when name is empty.
func (c *Config) Region(name string) (RegionDef, error) {
	if name == "" {
		name = c.Regions.Default
	}
	def, ok := c.Regions.Definitions[name]
	if !ok {
		return RegionDef{}, eris.Errorf("config: unknown region %q", name)
	}
	return def, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
