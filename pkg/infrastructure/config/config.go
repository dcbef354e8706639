// Package config loads planner configuration from YAML, falling back
// to defaults for anything unset.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"planforge/pkg/application/services/orchestration"
)

// Config is the full planner configuration
type Config struct {
	Run            RunConfig            `yaml:"run"`
	Classification ClassificationConfig `yaml:"classification"`
	Forecasting    ForecastingConfig    `yaml:"forecasting"`
	SafetyStock    SafetyStockConfig    `yaml:"safety_stock"`
	LeadTime       LeadTimeConfig       `yaml:"lead_time"`
	Logging        LoggingConfig        `yaml:"logging"`
	Metrics        MetricsConfig        `yaml:"metrics"`
}

// RunConfig holds run-level execution parameters
type RunConfig struct {
	HistoryDays int    `yaml:"history_days"`
	Workers     int    `yaml:"workers"`
	Timeout     string `yaml:"timeout"`
}

// ClassificationConfig holds ABC/XYZ thresholds
type ClassificationConfig struct {
	WindowDays      int     `yaml:"window_days"`
	MinObservations int     `yaml:"min_observations"`
	ABoundary       float64 `yaml:"a_boundary"`
	BBoundary       float64 `yaml:"b_boundary"`
	XThreshold      float64 `yaml:"x_threshold"`
	YThreshold      float64 `yaml:"y_threshold"`
}

// ForecastingConfig holds forecasting parameters
type ForecastingConfig struct {
	HorizonDays          int     `yaml:"horizon_days"`
	SMAWindow            int     `yaml:"sma_window"`
	Alpha                float64 `yaml:"alpha"`
	HWAlpha              float64 `yaml:"hw_alpha"`
	HWBeta               float64 `yaml:"hw_beta"`
	HWGamma              float64 `yaml:"hw_gamma"`
	SeasonCandidates     []int   `yaml:"season_candidates"`
	SeasonThreshold      float64 `yaml:"season_threshold"`
	HoldoutPeriods       int     `yaml:"holdout_periods"`
	MinObservations      int     `yaml:"min_observations"`
	DegradationThreshold float64 `yaml:"degradation_threshold"`
}

// SafetyStockConfig holds buffer sizing parameters
type SafetyStockConfig struct {
	ReviewPeriodDays int `yaml:"review_period_days"`
}

// LeadTimeConfig holds lead time learning parameters
type LeadTimeConfig struct {
	MinSamples int `yaml:"min_samples"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// MetricsConfig controls the optional Prometheus endpoint
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"` // empty disables the endpoint
}

// Default returns the configuration used when no file overrides it
func Default() Config {
	orch := orchestration.DefaultConfig()
	return Config{
		Run: RunConfig{
			HistoryDays: orch.HistoryDays,
			Workers:     orch.Workers,
			Timeout:     orch.Timeout.String(),
		},
		Classification: ClassificationConfig{
			WindowDays:      orch.Classification.WindowDays,
			MinObservations: orch.Classification.MinObservations,
			ABoundary:       orch.Classification.ABoundary,
			BBoundary:       orch.Classification.BBoundary,
			XThreshold:      orch.Classification.XThreshold,
			YThreshold:      orch.Classification.YThreshold,
		},
		Forecasting: ForecastingConfig{
			HorizonDays:          orch.Forecasting.HorizonDays,
			SMAWindow:            orch.Forecasting.SMAWindow,
			Alpha:                orch.Forecasting.Alpha,
			HWAlpha:              orch.Forecasting.HoltWinters.Alpha,
			HWBeta:               orch.Forecasting.HoltWinters.Beta,
			HWGamma:              orch.Forecasting.HoltWinters.Gamma,
			SeasonCandidates:     orch.Forecasting.SeasonCandidates,
			SeasonThreshold:      orch.Forecasting.SeasonThreshold,
			HoldoutPeriods:       orch.Forecasting.HoldoutPeriods,
			MinObservations:      orch.Forecasting.MinObservations,
			DegradationThreshold: orch.Forecasting.DegradationThreshold,
		},
		SafetyStock: SafetyStockConfig{ReviewPeriodDays: orch.SafetyStock.ReviewPeriodDays},
		LeadTime:    LeadTimeConfig{MinSamples: orch.LeadTime.MinSamples},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// Orchestration converts the file representation into the run
// configuration consumed by the orchestrator
func (c Config) Orchestration() (orchestration.Config, error) {
	timeout, err := time.ParseDuration(c.Run.Timeout)
	if err != nil {
		return orchestration.Config{}, fmt.Errorf("invalid run timeout %q: %w", c.Run.Timeout, err)
	}

	orch := orchestration.DefaultConfig()
	orch.HistoryDays = c.Run.HistoryDays
	orch.Workers = c.Run.Workers
	orch.Timeout = timeout

	orch.Classification.WindowDays = c.Classification.WindowDays
	orch.Classification.MinObservations = c.Classification.MinObservations
	orch.Classification.ABoundary = c.Classification.ABoundary
	orch.Classification.BBoundary = c.Classification.BBoundary
	orch.Classification.XThreshold = c.Classification.XThreshold
	orch.Classification.YThreshold = c.Classification.YThreshold

	orch.Forecasting.HorizonDays = c.Forecasting.HorizonDays
	orch.Forecasting.SMAWindow = c.Forecasting.SMAWindow
	orch.Forecasting.Alpha = c.Forecasting.Alpha
	orch.Forecasting.HoltWinters.Alpha = c.Forecasting.HWAlpha
	orch.Forecasting.HoltWinters.Beta = c.Forecasting.HWBeta
	orch.Forecasting.HoltWinters.Gamma = c.Forecasting.HWGamma
	orch.Forecasting.SeasonCandidates = c.Forecasting.SeasonCandidates
	orch.Forecasting.SeasonThreshold = c.Forecasting.SeasonThreshold
	orch.Forecasting.HoldoutPeriods = c.Forecasting.HoldoutPeriods
	orch.Forecasting.MinObservations = c.Forecasting.MinObservations
	orch.Forecasting.DegradationThreshold = c.Forecasting.DegradationThreshold

	orch.SafetyStock.ReviewPeriodDays = c.SafetyStock.ReviewPeriodDays
	orch.LeadTime.MinSamples = c.LeadTime.MinSamples
	return orch, nil
}
