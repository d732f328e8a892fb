// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/neurowave/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neurowave",
		Short: "Wave-digital simulation of the C. elegans nervous system",
		Long: `neurowave simulates the 279-neuron C. elegans connectome with a
wave-digital Morris-Lecar model.

It loads the gap-junction and synaptic adjacency matrices, applies a
per-run settings file, steps the network and exports the membrane
potential and calcium traces as CSV.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSettingsCmd(),
		newGroupsCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration named by --config and applies the
// global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}
