// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type hooksOptions struct {
	admin  bool
	filter string
}

// NewHooksCmd creates the hooks subcommand.
func NewHooksCmd() *cobra.Command {
	opts := &hooksOptions{}

	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List the hook bindings the plugin registers",
		Long: `Initialize the plugin on a fresh host and print every registered
binding in dispatch order. Use --admin to see the administrative context.

Filter events with a glob, for example:
  hookloader hooks --filter 'head_*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooks(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.admin, "admin", false, "initialize in an administrative context")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "only show events matching this glob")

	return cmd
}

func runHooks(cmd *cobra.Command, opts *hooksOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rt, loader := newRuntime(cfg, opts.admin)
	if err := loader.Initialize(cmd.Context()); err != nil {
		return err
	}

	regs, err := rt.Hooks().List(opts.filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EVENT\tPRIORITY\tARGS\tHANDLER")
	for _, reg := range regs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", reg.Event, reg.Priority, reg.AcceptedArgs, reg.Name)
	}
	return w.Flush()
}
