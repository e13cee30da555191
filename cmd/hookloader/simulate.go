// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/holomush/hookloader/internal/hook"
	"github.com/holomush/hookloader/internal/host"
)

type simulateOptions struct {
	admin    bool
	feed     bool
	notFound bool
	path     string
	locale   string
	requests int
	metrics  bool
}

// NewSimulateCmd creates the simulate subcommand.
func NewSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Serve requests through the host lifecycle",
		Long: `Initialize the plugin once, then serve one or more requests through the
host lifecycle (plugins_loaded, init, and for public requests enqueue_scripts
and head_render), reporting what each handler did.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.admin, "admin", false, "serve an administrative request")
	cmd.Flags().BoolVar(&opts.feed, "feed", false, "serve a syndication feed request")
	cmd.Flags().BoolVar(&opts.notFound, "not-found", false, "serve a not-found response")
	cmd.Flags().StringVar(&opts.path, "path", "/", "request path")
	cmd.Flags().StringVar(&opts.locale, "request-locale", "", "request locale (default: configured locale)")
	cmd.Flags().IntVar(&opts.requests, "requests", 1, "number of requests to serve")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print hook metrics after serving")

	return cmd
}

func runSimulate(cmd *cobra.Command, opts *simulateOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rt, loader := newRuntime(cfg, opts.admin)
	if err := loader.Initialize(cmd.Context()); err != nil {
		return err
	}

	req := host.Request{
		Path:     opts.path,
		Feed:     opts.feed,
		NotFound: opts.notFound,
		Locale:   opts.locale,
	}

	for range max(opts.requests, 1) {
		if err := rt.Serve(cmd.Context(), req); err != nil {
			return err
		}
	}

	locale := opts.locale
	if locale == "" {
		locale = cfg.Locale
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "registered %d handlers\n", rt.Hooks().Count())
	for _, event := range host.Lifecycle(opts.admin) {
		fmt.Fprintf(out, "%-16s handlers=%d\n", event, len(rt.Hooks().Handlers(event)))
	}
	fmt.Fprintf(out, "catalog %s/%s loaded: %t\n", cfg.TextDomain, locale, rt.Catalogs().Loaded(cfg.TextDomain, locale))
	fmt.Fprintf(out, "scripts registered: %d\n", rt.Scripts().Len())

	if opts.metrics {
		return writeMetrics(out)
	}
	return nil
}

// writeMetrics prints the hook counters as name{labels} value lines.
func writeMetrics(w io.Writer) error {
	reg := prometheus.NewRegistry()
	hook.RegisterMetrics(reg)

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
