// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPathsCmd creates the paths subcommand.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the plugin directory and main file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			_, loader := newRuntime(cfg, false)
			meta := loader.Metadata()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "plugin_dir: %s\n", loader.PluginDirectory())
			fmt.Fprintf(out, "main_file: %s\n", loader.PluginMainFile())
			fmt.Fprintf(out, "languages_dir: %s\n", meta.LanguagesDir())
			return nil
		},
	}
}
