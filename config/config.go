// SPDX-License-Identifier: MIT

// Package config provides run configuration loading for neurowave.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/neurowave/simulator"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "neurowave.yaml"

// Config contains all neurowave run settings.
type Config struct {
	// Connectome is the directory holding the adjacency CSV files.
	Connectome string `json:"connectome" yaml:"connectome"`

	// Settings is the settings file (YAML or JSON). Empty runs with defaults.
	Settings string `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Simulation contains the numerical parameters.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Output contains export settings.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational and step logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig holds the numerical parameters of a run.
type SimulationConfig struct {
	// StepSize is the sample period T in seconds.
	StepSize float64 `json:"step_size" yaml:"step_size"`

	// Duration is the simulated span in seconds.
	Duration float64 `json:"duration" yaml:"duration"`

	// Iterations is the number of relaxation sub-iterations per step.
	Iterations int `json:"iterations" yaml:"iterations"`

	// GapConductance is the conductance of one gap junction, in S.
	GapConductance float64 `json:"gap_conductance" yaml:"gap_conductance"`

	// Steps limits the run to the first Steps samples; 0 runs the full horizon.
	Steps int `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// OutputConfig configures the exported log buffers.
type OutputConfig struct {
	// Dir receives u.csv and eta.csv.
	Dir string `json:"dir" yaml:"dir"`

	// WithTime prepends a time column to each export.
	WithTime bool `json:"with_time" yaml:"with_time"`
}

// LoggingConfig configures neurowave's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", "trace", "warn" or "error".
	// "trace" logs every simulation step.
	Level string `json:"level" yaml:"level"`

	// StepTrace, when set, is a file receiving one JSON line per step.
	StepTrace string `json:"step_trace,omitempty" yaml:"step_trace,omitempty"`
}

// Default returns a Config with the C. elegans simulation defaults.
func Default() *Config {
	return &Config{
		Connectome: "data",
		Simulation: SimulationConfig{
			StepSize:       simulator.DefaultStepSize,
			Duration:       simulator.DefaultDuration,
			Iterations:     simulator.DefaultIterations,
			GapConductance: simulator.DefaultGapConductance,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path, or from DefaultFile when path is empty
// and that file exists, then applies environment variables.
// Order: defaults -> file -> environment variables
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		if _, statErr := os.Stat(DefaultFile); statErr == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

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

	config.Connectome = os.ExpandEnv(config.Connectome)
	config.Settings = os.ExpandEnv(config.Settings)
	config.Output.Dir = os.ExpandEnv(config.Output.Dir)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Connectome) == "" {
		return fmt.Errorf("connectome directory must be set")
	}
	if !(c.Simulation.StepSize > 0) {
		return fmt.Errorf("step_size must be positive, got %g", c.Simulation.StepSize)
	}
	if !(c.Simulation.Duration >= 0) {
		return fmt.Errorf("duration must be non-negative, got %g", c.Simulation.Duration)
	}
	if c.Simulation.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Simulation.Iterations)
	}
	if c.Simulation.GapConductance < 0 {
		return fmt.Errorf("gap_conductance must be non-negative, got %g", c.Simulation.GapConductance)
	}
	if c.Simulation.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Simulation.Steps)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, warn, error, or empty for default)", c.Logging.Level)
	}

	return nil
}

// SimulatorOptions translates the simulation section into simulator options.
func (c *Config) SimulatorOptions() []simulator.Option {
	return []simulator.Option{
		simulator.WithStepSize(c.Simulation.StepSize),
		simulator.WithDuration(c.Simulation.Duration),
		simulator.WithIterations(c.Simulation.Iterations),
		simulator.WithGapConductance(c.Simulation.GapConductance),
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("NEUROWAVE_CONNECTOME"); v != "" {
		config.Connectome = v
	}

	if v := os.Getenv("NEUROWAVE_SETTINGS"); v != "" {
		config.Settings = v
	}

	if v := os.Getenv("NEUROWAVE_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}

	if v := os.Getenv("NEUROWAVE_WITH_TIME"); v != "" {
		config.Output.WithTime = v == "true" || v == "1"
	}

	if v := os.Getenv("NEUROWAVE_STEP_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.StepSize = f
		}
	}

	if v := os.Getenv("NEUROWAVE_DURATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.Duration = f
		}
	}

	if v := os.Getenv("NEUROWAVE_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Iterations = n
		}
	}

	if v := os.Getenv("NEUROWAVE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("NEUROWAVE_STEP_TRACE"); v != "" {
		config.Logging.StepTrace = v
	}
}
