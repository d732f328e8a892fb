// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/katalvlaran/neurowave/config"
	"github.com/katalvlaran/neurowave/connectome"
	"github.com/katalvlaran/neurowave/logging"
	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/settings"
	"github.com/katalvlaran/neurowave/simulator"
	"github.com/spf13/cobra"
)

const (
	potentialFile = "u.csv"
	calciumFile   = "eta.csv"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the network and export potential and calcium traces",
		Long: `Load the connectome, apply a settings file and step the simulator.

The potential (u.csv, volts) and calcium (eta.csv, molar) buffers are
written to the output directory with one row per sample and one column
per neuron. An interrupted run still exports the samples computed so far.

Examples:
  neurowave run
  neurowave run --settings run.yaml --out results --with-time
  neurowave run --steps 500 --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			summary, _ := cmd.Flags().GetInt("summary")
			return runSimulation(ctx, cfg, logger, cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().String("connectome", "", "Directory holding the adjacency CSV files")
	cmd.Flags().String("settings", "", "Settings file (YAML or JSON); defaults apply when empty")
	cmd.Flags().String("out", "", "Output directory for u.csv and eta.csv")
	cmd.Flags().Int("steps", 0, "Number of samples to compute (0 = full duration)")
	cmd.Flags().Bool("with-time", false, "Prepend a time column to the exported traces")
	cmd.Flags().String("step-trace", "", "Write one JSON line per step to this file")
	cmd.Flags().Int("summary", 0, "Print the N neurons with the highest peak potential")

	return cmd
}

// applyRunFlags copies explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("connectome") {
		cfg.Connectome, _ = flags.GetString("connectome")
	}
	if flags.Changed("settings") {
		cfg.Settings, _ = flags.GetString("settings")
	}
	if flags.Changed("out") {
		cfg.Output.Dir, _ = flags.GetString("out")
	}
	if flags.Changed("steps") {
		cfg.Simulation.Steps, _ = flags.GetInt("steps")
	}
	if flags.Changed("with-time") {
		cfg.Output.WithTime, _ = flags.GetBool("with-time")
	}
	if flags.Changed("step-trace") {
		cfg.Logging.StepTrace, _ = flags.GetString("step-trace")
	}
}

func runSimulation(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, summary int) error {
	conn, err := connectome.LoadDir(cfg.Connectome)
	if err != nil {
		return fmt.Errorf("loading connectome: %w", err)
	}
	logger.Info("connectome loaded", "dir", cfg.Connectome, "neurons", conn.NeuronCount())

	st := settings.Default(conn.NeuronCount())
	if cfg.Settings != "" {
		if st, err = settings.Load(cfg.Settings); err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
	}

	opts := append(cfg.SimulatorOptions(), simulator.WithLogger(logger))
	if cfg.Logging.StepTrace != "" {
		f, err := os.Create(cfg.Logging.StepTrace)
		if err != nil {
			return fmt.Errorf("creating step trace: %w", err)
		}
		defer f.Close()
		opts = append(opts, simulator.WithStepTracer(logging.NewStepTracer(f)))
	}

	sim, err := simulator.New(conn, opts...)
	if err != nil {
		return err
	}
	if err := sim.ApplyConfiguration(st); err != nil {
		return fmt.Errorf("applying settings: %w", err)
	}

	end := sim.Horizon()
	if cfg.Simulation.Steps > 0 {
		end = min(end, cfg.Simulation.Steps)
	}

	start := time.Now()
	runErr := sim.RunUntil(ctx, end)
	done := sim.NextStep()
	logger.Info("simulation finished", "steps", done, "of", end, "elapsed", time.Since(start).Round(time.Millisecond))

	if errors.Is(runErr, context.Canceled) {
		logger.Warn("run interrupted, exporting partial traces", "steps", done)
	} else if runErr != nil {
		return runErr
	}

	if err := exportLogs(cfg.Output, sim, done); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d samples of %d neurons to %s\n", done, sim.NeuronCount(), cfg.Output.Dir)
	if summary > 0 && done > 0 {
		if err := printSummary(out, conn, sim, done, summary); err != nil {
			return err
		}
	}

	return runErr
}

// exportLogs writes the first rows samples of both buffers.
func exportLogs(oc config.OutputConfig, sim *simulator.Simulator, rows int) error {
	if err := os.MkdirAll(oc.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	exports := []struct {
		name string
		log  *matrix.Dense
	}{
		{potentialFile, sim.PotentialLog()},
		{calciumFile, sim.CalciumLog()},
	}
	for _, e := range exports {
		m, err := exportMatrix(e.log, sim.Times(), rows, oc.WithTime)
		if err != nil {
			return fmt.Errorf("preparing %s: %w", e.name, err)
		}
		if err := writeCSVFile(filepath.Join(oc.Dir, e.name), m); err != nil {
			return err
		}
	}
	return nil
}

// exportMatrix keeps the first rows samples of log and optionally prepends
// the time column.
func exportMatrix(log, times *matrix.Dense, rows int, withTime bool) (*matrix.Dense, error) {
	if withTime {
		col, err := matrix.T(times)
		if err != nil {
			return nil, err
		}
		if log, err = matrix.ConcatRight(matrix.Of(col), matrix.Of(log)); err != nil {
			return nil, err
		}
	}
	return matrix.HeadRows(log, rows)
}

func writeCSVFile(path string, m *matrix.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := matrix.WriteCSV(f, m); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// printSummary lists the top neurons by peak potential over the computed samples.
func printSummary(w io.Writer, conn *connectome.Connectome, sim *simulator.Simulator, rows, top int) error {
	u, err := matrix.HeadRows(sim.PotentialLog(), rows)
	if err != nil {
		return err
	}
	st, err := matrix.DescribeColumns(u)
	if err != nil {
		return err
	}

	order := make([]int, len(st.Max))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return st.Max[order[a]] > st.Max[order[b]] })

	fmt.Fprintf(w, "\n%-6s %-8s %10s %10s %10s %10s\n", "INDEX", "NAME", "PEAK mV", "AT s", "MEAN mV", "STD mV")
	for _, i := range order[:min(top, len(order))] {
		name := conn.Name(i)
		if name == "" {
			name = "-"
		}
		at, err := sim.Time(st.ArgMax[i])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-6d %-8s %10.3f %10.3f %10.3f %10.3f\n",
			i, name, st.Max[i]*1e3, at, st.Mean[i]*1e3, st.Std[i]*1e3)
	}
	return nil
}

// signalContext returns a context cancelled on interrupt.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
