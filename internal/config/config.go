// Package config provides YAML-loaded configuration for the imaginarium
// driver: where definitions live, how the solver retries/times out, and
// whether the ontology starts locked.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete driver configuration.
type Config struct {
	// Definitions configures where ".gen" files are loaded from.
	Definitions DefinitionsConfig `yaml:"definitions"`
	// Solver configures the generator's constraint solve.
	Solver SolverConfig `yaml:"solver"`
	// Logging configures the ambient slog setup.
	Logging LoggingConfig `yaml:"logging"`
	// Metrics configures the Prometheus exporter.
	Metrics MetricsConfig `yaml:"metrics"`
}

// DefinitionsConfig points at the directory of ".gen" files and whether the
// ontology should be locked once they are loaded.
type DefinitionsConfig struct {
	// Dir is the directory LoadDefinitions reads from.
	Dir string `yaml:"dir"`
	// Locked, once the initial load completes, rejects introduction of new
	// referents.
	Locked bool `yaml:"locked"`
	// Watch enables an fsnotify-based reload of Dir on change.
	Watch bool `yaml:"watch"`
}

// SolverConfig configures Problem.Solve's retry/timeout budget.
type SolverConfig struct {
	// Retries is the number of independent search attempts per Generate call.
	Retries int `yaml:"retries"`
	// Timeout bounds each Generate call's total solve time.
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig configures internal/logging.Setup.
type LoggingConfig struct {
	// Format is "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures internal/metrics's Prometheus HTTP exporter.
type MetricsConfig struct {
	// Addr is the listen address for /metrics, e.g. ":9090". Empty disables
	// the exporter.
	Addr string `yaml:"addr"`
}

// Default returns a Config with sensible defaults for local use.
func Default() *Config {
	return &Config{
		Definitions: DefinitionsConfig{Dir: "definitions", Locked: false, Watch: false},
		Solver:      SolverConfig{Retries: 8, Timeout: 5 * time.Second},
		Logging:     LoggingConfig{Format: "text"},
		Metrics:     MetricsConfig{Addr: ""},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Definitions.Dir == "" {
		return fmt.Errorf("definitions.dir is required")
	}
	if c.Solver.Retries < 1 {
		return fmt.Errorf("solver.retries must be at least 1")
	}
	if c.Solver.Timeout <= 0 {
		return fmt.Errorf("solver.timeout must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over Default.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return c, nil
}
