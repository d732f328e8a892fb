// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/neurowave/config"
	"github.com/katalvlaran/neurowave/simulator"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.Equal(t, "data", c.Connectome)
	require.Equal(t, 7e-3, c.Simulation.StepSize)
	require.Equal(t, 20.0, c.Simulation.Duration)
	require.Equal(t, 2, c.Simulation.Iterations)
	require.Equal(t, simulator.DefaultGapConductance, c.Simulation.GapConductance)
	require.Equal(t, "out", c.Output.Dir)
	require.Equal(t, "info", c.Logging.Level)
	require.NoError(t, c.Validate())
	require.Len(t, c.SimulatorOptions(), 4)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("NW_TEST_ROOT", "/srv/worm")
	path := filepath.Join(t.TempDir(), "neurowave.yaml")
	content := `
connectome: ${NW_TEST_ROOT}/connectome
settings: run.yaml
simulation:
  duration: 2.5
  iterations: 3
output:
  with_time: true
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := config.LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "/srv/worm/connectome", c.Connectome)
	require.Equal(t, "run.yaml", c.Settings)
	require.Equal(t, 2.5, c.Simulation.Duration)
	require.Equal(t, 3, c.Simulation.Iterations)
	// Unset keys keep defaults.
	require.Equal(t, 7e-3, c.Simulation.StepSize)
	require.Equal(t, "out", c.Output.Dir)
	require.True(t, c.Output.WithTime)
	require.Equal(t, "debug", c.Logging.Level)

	_, err = config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("simulation: [1, 2"), 0o600))
	_, err = config.LoadFromFile(bad)
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NEUROWAVE_CONNECTOME", "/data/c")
	t.Setenv("NEUROWAVE_SETTINGS", "s.json")
	t.Setenv("NEUROWAVE_OUTPUT_DIR", "/tmp/o")
	t.Setenv("NEUROWAVE_WITH_TIME", "1")
	t.Setenv("NEUROWAVE_STEP_SIZE", "0.01")
	t.Setenv("NEUROWAVE_DURATION", "5")
	t.Setenv("NEUROWAVE_ITERATIONS", "not-a-number")
	t.Setenv("NEUROWAVE_LOG_LEVEL", "trace")
	t.Setenv("NEUROWAVE_STEP_TRACE", "steps.jsonl")

	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("connectome: file-value\n"), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/c", c.Connectome)
	require.Equal(t, "s.json", c.Settings)
	require.Equal(t, "/tmp/o", c.Output.Dir)
	require.True(t, c.Output.WithTime)
	require.Equal(t, 0.01, c.Simulation.StepSize)
	require.Equal(t, 5.0, c.Simulation.Duration)
	require.Equal(t, 2, c.Simulation.Iterations) // unparsable override ignored
	require.Equal(t, "trace", c.Logging.Level)
	require.Equal(t, "steps.jsonl", c.Logging.StepTrace)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *config.Config)
	}{
		{"no connectome", func(c *config.Config) { c.Connectome = " " }},
		{"zero step", func(c *config.Config) { c.Simulation.StepSize = 0 }},
		{"negative duration", func(c *config.Config) { c.Simulation.Duration = -1 }},
		{"no iterations", func(c *config.Config) { c.Simulation.Iterations = 0 }},
		{"negative gEl", func(c *config.Config) { c.Simulation.GapConductance = -1e-9 }},
		{"negative steps", func(c *config.Config) { c.Simulation.Steps = -2 }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			tt.edit(c)
			require.Error(t, c.Validate())
		})
	}

	c := config.Default()
	c.Logging.Level = ""
	require.NoError(t, c.Validate())
}
