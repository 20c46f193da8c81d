// Package config provides unified configuration loading for the simulator.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Dooders/Pyology/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config contains all simulator configuration settings.
type Config struct {
	// Simulation contains settings for the outer simulation loop.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and event logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// History contains settings for run history persistence.
	History HistoryConfig `json:"history" yaml:"history"`
}

// SimulationConfig configures the outer simulation loop.
type SimulationConfig struct {
	// DurationSteps is the number of simulation steps to run.
	DurationSteps int `json:"duration_steps" yaml:"duration_steps"`

	// TimeStep is the reaction integration step in simulation time units.
	TimeStep float64 `json:"time_step" yaml:"time_step"`

	// GlucosePerStep is the glucose fed into the cytoplasm each step.
	GlucosePerStep float64 `json:"glucose_per_step" yaml:"glucose_per_step"`

	// AdenineCorrection enables the compensating redistribution applied when
	// a glycolysis pass drifts the adenine nucleotide total. Disabling it
	// leaves the drift in place, logged but uncorrected.
	AdenineCorrection bool `json:"adenine_correction" yaml:"adenine_correction"`
}

// LoggingConfig configures the simulator's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables event logging to <event_log>/events.jsonl.
	// "trace" additionally includes full per-step state content.
	Level string `json:"level" yaml:"level"`

	// EventLog is the directory receiving events.jsonl at debug level and
	// below. Empty means the default state directory (.pyology).
	EventLog string `json:"event_log,omitempty" yaml:"event_log,omitempty"`
}

// HistoryConfig configures run history persistence.
type HistoryConfig struct {
	// Backend selects the history store: "memory" (default) or "sqlite".
	Backend string `json:"backend" yaml:"backend"`

	// Path is the SQLite database file. Supports ${VAR} syntax for env vars.
	// Ignored by the memory backend; empty resolves to ~/.pyology/history.db.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			DurationSteps:     constants.DefaultSimulationSteps,
			TimeStep:          constants.DefaultTimeStep,
			GlucosePerStep:    1,
			AdenineCorrection: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Backend: "memory",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.pyology/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	// Try to load from default config file
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".pyology", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand environment variables in the history path
	config.History.Path = expandEnvVars(config.History.Path)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.DurationSteps <= 0 {
		return fmt.Errorf("duration_steps must be positive, got %d", c.Simulation.DurationSteps)
	}

	if c.Simulation.TimeStep <= 0 {
		return fmt.Errorf("time_step must be positive, got %g", c.Simulation.TimeStep)
	}

	if c.Simulation.GlucosePerStep < 0 {
		return fmt.Errorf("glucose_per_step must be non-negative, got %g", c.Simulation.GlucosePerStep)
	}

	validBackends := map[string]bool{"": true, "memory": true, "sqlite": true}
	if !validBackends[c.History.Backend] {
		return fmt.Errorf("invalid history backend: %s (valid: memory, sqlite, or empty for default)", c.History.Backend)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("PYOLOGY_DURATION_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.DurationSteps = n
		}
	}

	if v := os.Getenv("PYOLOGY_GLUCOSE_PER_STEP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.GlucosePerStep = f
		}
	}

	if v := os.Getenv("PYOLOGY_ADENINE_CORRECTION"); v != "" {
		config.Simulation.AdenineCorrection = v == "true" || v == "1"
	}

	if v := os.Getenv("PYOLOGY_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("PYOLOGY_EVENT_LOG"); v != "" {
		config.Logging.EventLog = v
	}

	if v := os.Getenv("PYOLOGY_HISTORY_BACKEND"); v != "" {
		config.History.Backend = v
	}

	if v := os.Getenv("PYOLOGY_HISTORY_PATH"); v != "" {
		config.History.Path = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
