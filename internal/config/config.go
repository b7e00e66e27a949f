// Package config loads the per-run validation configuration. Everything
// the core treats as a run constant (observer, carrier, file paths,
// finite-difference step, thresholds) lives here rather than in code.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/doppler-validator/core"
)

// ObserverConf is the ground station's geodetic position.
type ObserverConf struct {
	LatitudeDeg  float64 `yaml:"latitude_deg"`
	LongitudeDeg float64 `yaml:"longitude_deg"`
	ElevationM   float64 `yaml:"elevation_m"`
}

// SatelliteConf names the satellite and where its TLE snapshot lives.
type SatelliteConf struct {
	Name    string `yaml:"name"`
	TLEPath string `yaml:"tle_path"`
}

// ThresholdsConf overrides the verdict boundaries; zero values keep the
// calibrated defaults.
type ThresholdsConf struct {
	ExcellentHz  float64 `yaml:"excellent_hz"`
	GoodHz       float64 `yaml:"good_hz"`
	AcceptableHz float64 `yaml:"acceptable_hz"`
}

// ReportConf controls where run artifacts are written.
type ReportConf struct {
	RecordsCSV string `yaml:"records_csv"` // empty disables the CSV export
}

// TracingConf mirrors the tracing block of the observability layer.
type TracingConf struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter"` // stdout | otlp
	Endpoint    string  `yaml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Config is the full run configuration. A zero CarrierHz asks the
// runner to resolve the satellite's downlink from the SatNOGS DB.
type Config struct {
	Satellite     SatelliteConf  `yaml:"satellite"`
	Observer      ObserverConf   `yaml:"observer"`
	CarrierHz     float64        `yaml:"carrier_hz"`
	CandidatePath string         `yaml:"candidate_path"`
	StepSeconds   float64        `yaml:"finite_difference_step_s"`
	Thresholds    ThresholdsConf `yaml:"thresholds"`
	Workers       int            `yaml:"workers"`
	Report        ReportConf     `yaml:"report"`
	MetricsAddr   string         `yaml:"metrics_addr"` // empty disables /metrics
	Tracing       TracingConf    `yaml:"tracing"`
}

// Defaults applied when the YAML leaves a knob unset.
const (
	defaultStepSeconds = 10.0
	defaultWorkers     = 1
)

// Load reads and validates a YAML run configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StepSeconds == 0 {
		c.StepSeconds = defaultStepSeconds
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.Thresholds.ExcellentHz == 0 {
		c.Thresholds.ExcellentHz = core.DefaultThresholds.ExcellentHz
	}
	if c.Thresholds.GoodHz == 0 {
		c.Thresholds.GoodHz = core.DefaultThresholds.GoodHz
	}
	if c.Thresholds.AcceptableHz == 0 {
		c.Thresholds.AcceptableHz = core.DefaultThresholds.AcceptableHz
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1.0
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = "stdout"
	}
}

func (c *Config) validate() error {
	if c.Satellite.TLEPath == "" {
		return fmt.Errorf("satellite.tle_path is required")
	}
	if c.CandidatePath == "" {
		return fmt.Errorf("candidate_path is required")
	}
	if c.CarrierHz < 0 {
		return fmt.Errorf("carrier_hz must not be negative, got %v", c.CarrierHz)
	}
	if c.CarrierHz == 0 && c.Satellite.Name == "" {
		return fmt.Errorf("carrier_hz omitted: satellite.name is required for a downlink lookup")
	}
	if c.Observer.LatitudeDeg < -90 || c.Observer.LatitudeDeg > 90 {
		return fmt.Errorf("observer.latitude_deg out of range: %v", c.Observer.LatitudeDeg)
	}
	if c.Observer.LongitudeDeg < -180 || c.Observer.LongitudeDeg > 180 {
		return fmt.Errorf("observer.longitude_deg out of range: %v", c.Observer.LongitudeDeg)
	}
	if c.StepSeconds <= 0 {
		return fmt.Errorf("finite_difference_step_s must be positive, got %v", c.StepSeconds)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if err := c.VerdictThresholds().Validate(); err != nil {
		return err
	}
	return nil
}

// VerdictThresholds returns the configured (or defaulted) verdict ladder.
func (c *Config) VerdictThresholds() core.Thresholds {
	return core.Thresholds{
		ExcellentHz:  c.Thresholds.ExcellentHz,
		GoodHz:       c.Thresholds.GoodHz,
		AcceptableHz: c.Thresholds.AcceptableHz,
	}
}

// Step returns the finite-difference interval as a duration.
func (c *Config) Step() time.Duration {
	return time.Duration(c.StepSeconds * float64(time.Second))
}
