// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/neurowave/connectome"
	"github.com/katalvlaran/neurowave/settings"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Create and check simulation settings files",
		Long: `Commands for the per-run settings file.

A settings file selects the active and stimulated neurons, overrides
neuron and coupling parameters, adds custom connections and toggles the
synaptic layers. Empty values fall back to the population defaults.`,
	}

	cmd.AddCommand(newSettingsInitCmd(), newSettingsCheckCmd())
	return cmd
}

func newSettingsInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file for the connectome",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("connectome") {
				cfg.Connectome, _ = cmd.Flags().GetString("connectome")
			}
			out, _ := cmd.Flags().GetString("out")

			conn, err := connectome.LoadDir(cfg.Connectome)
			if err != nil {
				return fmt.Errorf("loading connectome: %w", err)
			}
			st := settings.Default(conn.NeuronCount())

			if out == "" || out == "-" {
				return st.Save(cmd.OutOrStdout())
			}
			return saveSettings(out, st)
		},
	}

	cmd.Flags().String("connectome", "", "Directory holding the adjacency CSV files")
	cmd.Flags().String("out", "", "Destination file (stdout when empty)")
	return cmd
}

func newSettingsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a settings file against the connectome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			conn, err := connectome.LoadDir(cfg.Connectome)
			if err != nil {
				return fmt.Errorf("loading connectome: %w", err)
			}
			st, err := settings.Load(args[0])
			if err != nil {
				return err
			}
			p, err := st.Parse(conn.NeuronCount())
			if err != nil {
				return err
			}
			if p.Circuit != "" && p.Circuit != connectome.GroupAll {
				if _, err := conn.Groups().Members(p.Circuit); err != nil {
					return err
				}
			}
			printParsed(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func printParsed(w io.Writer, p *settings.Parsed) {
	fmt.Fprintf(w, "Neurons:      %d (%d silenced)\n", p.N, len(p.Silenced()))
	fmt.Fprintf(w, "Stimulated:   %d\n", len(p.StimulatedNeurons()))
	fmt.Fprintf(w, "Stimulus:     %g A for %g s\n", p.CurrentAmplitude, p.PulseWidth)
	overrides := 0
	for _, o := range p.Neuron {
		overrides += len(o)
	}
	fmt.Fprintf(w, "Overrides:    %d\n", overrides)
	fmt.Fprintf(w, "Connections:  %d\n", len(p.Connections))
	circuit := p.Circuit
	if circuit == "" {
		circuit = connectome.GroupAll
	}
	fmt.Fprintf(w, "Circuit:      %s\n", circuit)
}

func saveSettings(path string, st *settings.Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	if err := st.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("writing settings file: %w", err)
	}
	return f.Close()
}
