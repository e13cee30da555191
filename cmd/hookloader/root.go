// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/hookloader/internal/bootstrap"
	"github.com/holomush/hookloader/internal/config"
	"github.com/holomush/hookloader/internal/host"
	"github.com/holomush/hookloader/internal/logging"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the hookloader CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hookloader",
		Short: "hookloader - plugin bootstrap for host lifecycle hooks",
		Long: `hookloader binds a plugin's handlers to the lifecycle hooks of its host
and lets you inspect and exercise those bindings on an in-process host.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/hookloader/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewHooksCmd())
	cmd.AddCommand(NewSimulateCmd())
	cmd.AddCommand(NewPathsCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}

// loadConfig resolves configuration for cmd and installs the default logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.SetDefault("hookloader", cfg.Version, logging.Options{
		Format: cfg.LogFormat,
		Level:  level,
	}, cmd.ErrOrStderr())

	return cfg, nil
}

// newRuntime builds a host runtime and a loader bound to it.
func newRuntime(cfg *config.Config, admin bool) (*host.Runtime, *bootstrap.Loader) {
	rt := host.New(
		host.WithAdmin(admin),
		host.WithLocale(cfg.Locale),
		host.WithLanguagesDir(cfg.LanguagesDir),
	)
	return rt, bootstrap.New(rt, bootstrap.ConfigFrom(cfg))
}
