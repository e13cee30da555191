// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/hookloader/internal/host"
	"github.com/holomush/hookloader/internal/observability"
	"github.com/holomush/hookloader/pkg/errutil"
)

// CodeServeFailed marks a failure of the serve loop's HTTP server.
const CodeServeFailed = "SERVE_FAILED"

const (
	defaultMetricsAddr = "127.0.0.1:9100"
	shutdownTimeout    = 5 * time.Second
)

type serveOptions struct {
	admin       bool
	metricsAddr string
	interval    time.Duration
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a host with metrics and health endpoints",
		Long: `Initialize the plugin on a long-running host and expose /metrics,
/healthz/liveness and /healthz/readiness. With --interval, a request is
served through the host lifecycle on every tick. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.admin, "admin", false, "serve the administrative context")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", defaultMetricsAddr, "metrics/health HTTP address")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "serve a request through the lifecycle this often (0 = never)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ready atomic.Bool
	obs := observability.NewServer(opts.metricsAddr, ready.Load)
	obsErr, err := obs.Start()
	if err != nil {
		return oops.Code(CodeServeFailed).Wrapf(err, "start observability server")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := obs.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}()

	rt, loader := newRuntime(cfg, opts.admin)
	if err := loader.Initialize(ctx); err != nil {
		return err
	}
	ready.Store(true)

	cmd.Printf("Serving metrics on %s\n", obs.Addr())

	var tick <-chan time.Time
	if opts.interval > 0 {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return nil
		case err, ok := <-obsErr:
			if ok && err != nil {
				return oops.Code(CodeServeFailed).Wrapf(err, "observability server")
			}
			obsErr = nil
		case <-tick:
			err := rt.Serve(ctx, host.Request{Path: "/"})
			obs.Metrics().RecordRequest(opts.admin, err)
			if err != nil {
				errutil.LogErrorContext(ctx, slog.Default(), "request failed", err)
			}
		}
	}
}
