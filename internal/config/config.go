// Package config provides configuration loading and access for the
// simulation. Embedded defaults are always loaded first; a user file only
// overrides the fields it names.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Seed       int64            `yaml:"seed"`
	Grid       GridConfig       `yaml:"grid"`
	Markets    MarketsConfig    `yaml:"markets"`
	Population PopulationConfig `yaml:"population"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Movement   MovementConfig   `yaml:"movement"`
	Price      PriceConfig      `yaml:"price"`
	Clock      ClockConfig      `yaml:"clock"`
	Output     OutputConfig     `yaml:"output"`
}

// GridConfig holds lattice dimensions.
type GridConfig struct {
	HalfExtent int `yaml:"half_extent"`
	Regions    int `yaml:"regions"`
}

// MarketsConfig holds market placement and trade state parameters.
type MarketsConfig struct {
	PerRegion    int     `yaml:"per_region"`
	Capacity     float64 `yaml:"capacity"`
	InitialPrice float64 `yaml:"initial_price"`
	SearchRadius float64 `yaml:"search_radius"`
}

// PopulationConfig holds initial population sampling parameters.
type PopulationConfig struct {
	Households            int     `yaml:"households"`
	ConsumersPerHousehold int     `yaml:"consumers_per_household"`
	Factories             int     `yaml:"factories"`
	ProducersPerFactory   int     `yaml:"producers_per_factory"`
	WealthMean            float64 `yaml:"wealth_mean"`
	WealthStdDev          float64 `yaml:"wealth_stddev"`
	WageMean              float64 `yaml:"wage_mean"`
	WageStdDev            float64 `yaml:"wage_stddev"`
	ProducerCapacity      float64 `yaml:"producer_capacity"`
}

// BehaviorConfig holds the agent decision-rule tunables.
type BehaviorConfig struct {
	BaseIntention       float64 `yaml:"base_intention"`
	OutputFloor         float64 `yaml:"output_floor"`
	FractionDown        float64 `yaml:"fraction_down"`
	FractionStay        float64 `yaml:"fraction_stay"`
	FractionUp          float64 `yaml:"fraction_up"`
	SwitchAfterTick     uint64  `yaml:"switch_after_tick"`
	DebtCeilingMultiple float64 `yaml:"debt_ceiling_multiple"`
}

// MovementConfig holds the dwell thresholds.
type MovementConfig struct {
	MarketDwell int `yaml:"market_dwell"`
	OriginDwell int `yaml:"origin_dwell"`
}

// PriceConfig holds the price adjustment parameters.
type PriceConfig struct {
	RaiseCap float64 `yaml:"raise_cap"`
	Cut      float64 `yaml:"cut"`
}

// ClockConfig holds the tick schedule.
type ClockConfig struct {
	IncomePeriod uint64 `yaml:"income_period"`
	Horizon      uint64 `yaml:"horizon"`
}

// OutputConfig holds telemetry, persistence, and API settings.
type OutputConfig struct {
	ReportEvery uint64 `yaml:"report_every"`
	CSVDir      string `yaml:"csv_dir"`
	DBPath      string `yaml:"db_path"`
	APIPort     int    `yaml:"api_port"`
}

// Load loads configuration from a YAML file merged over embedded defaults.
// An empty path loads the defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NumConsumers returns the total consumer count.
func (c *Config) NumConsumers() int {
	return c.Population.Households * c.Population.ConsumersPerHousehold
}

// NumProducers returns the total producer count.
func (c *Config) NumProducers() int {
	return c.Population.Factories * c.Population.ProducersPerFactory
}

// NumMarkets returns the total market count.
func (c *Config) NumMarkets() int {
	return c.Grid.Regions * c.Markets.PerRegion
}

// Validate checks the setup-time preconditions the engine relies on.
func (c *Config) Validate() error {
	if c.Grid.HalfExtent < 1 {
		return fmt.Errorf("grid.half_extent must be at least 1, got %d", c.Grid.HalfExtent)
	}
	if c.NumMarkets() < 1 && c.NumConsumers()+c.NumProducers() > 0 {
		return fmt.Errorf("no markets configured for %d agents", c.NumConsumers()+c.NumProducers())
	}
	if c.Markets.InitialPrice <= 0 {
		return fmt.Errorf("markets.initial_price must be positive, got %v", c.Markets.InitialPrice)
	}
	if c.Markets.Capacity <= 0 {
		return fmt.Errorf("markets.capacity must be positive, got %v", c.Markets.Capacity)
	}
	if c.Clock.Horizon < 1 {
		return fmt.Errorf("clock.horizon must be at least 1, got %d", c.Clock.Horizon)
	}
	if c.Price.RaiseCap < 0 || c.Price.Cut < 0 || c.Price.Cut >= 1 {
		return fmt.Errorf("price parameters out of range: raise_cap=%v cut=%v", c.Price.RaiseCap, c.Price.Cut)
	}
	return nil
}

// WriteYAML writes the effective configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
