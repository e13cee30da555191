// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/holomush/hookloader/internal/manifest"
	"github.com/holomush/hookloader/pkg/errutil"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Validate the plugin main file",
		Long: `Validate a plugin.yaml manifest against the manifest JSON Schema and
its semantic rules. Without FILE, the plugin's own main file is checked.
Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines:
  hookloader validate --plugin-dir .`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			_, loader := newRuntime(cfg, false)
			path := loader.PluginMainFile()
			if len(args) == 1 {
				path = args[0]
			}

			m, err := manifest.Load(path)
			if err != nil {
				if errutil.Code(err) == manifest.CodeSchemaInvalid {
					slog.Error("manifest does not match schema",
						"path", path,
						"detail", manifest.FormatSchemaError(err))
				}
				return err
			}

			meta := loader.Metadata()
			if m.TextDomain != meta.TextDomain {
				slog.Warn("manifest text domain differs from configuration",
					"manifest", m.TextDomain,
					"configured", meta.TextDomain)
			}
			if filepath.Clean(m.DomainPath) != filepath.Clean(meta.DomainPath) {
				slog.Warn("manifest domain path differs from configuration",
					"manifest", m.DomainPath,
					"configured", meta.DomainPath)
			}
			if m.Version != meta.Version {
				slog.Warn("manifest version differs from configuration",
					"manifest", m.Version,
					"configured", meta.Version)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s is valid\n", path, m.Name, m.Version)
			return nil
		},
	}
}
