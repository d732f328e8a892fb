// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/neurowave/connectome"
	"github.com/spf13/cobra"
)

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups [name]",
		Short: "List neuron groups usable as a circuit",
		Long: `Without arguments, list every group with its member count.
With a group name, list the member neurons.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("connectome") {
				cfg.Connectome, _ = cmd.Flags().GetString("connectome")
			}
			conn, err := connectome.LoadDir(cfg.Connectome)
			if err != nil {
				return fmt.Errorf("loading connectome: %w", err)
			}
			if len(args) == 1 {
				return printGroupMembers(cmd.OutOrStdout(), conn, args[0])
			}
			return printGroups(cmd.OutOrStdout(), conn.Groups())
		},
	}

	cmd.Flags().String("connectome", "", "Directory holding the adjacency CSV files")
	return cmd
}

func printGroups(w io.Writer, g *connectome.Groups) error {
	for _, name := range g.Names() {
		members, err := g.Members(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-16s %4d\n", name, len(members))
	}
	return nil
}

func printGroupMembers(w io.Writer, c *connectome.Connectome, group string) error {
	members, err := c.Groups().Members(group)
	if err != nil {
		return err
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = strconv.Itoa(m)
		if n := c.Name(m); n != "" {
			names[i] += ":" + n
		}
	}
	fmt.Fprintf(w, "%s (%d)\n", group, len(members))
	fmt.Fprintln(w, strings.Join(names, " "))
	return nil
}
