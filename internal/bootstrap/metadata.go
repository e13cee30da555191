// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bootstrap

import (
	"path/filepath"

	"github.com/holomush/hookloader/internal/config"
	"github.com/holomush/hookloader/internal/manifest"
)

// Config is the immutable input to New.
type Config struct {
	Version    string
	TextDomain string
	// DomainPath is the translation directory relative to the plugin root.
	DomainPath string
	// MainFile is the main file name relative to the plugin root.
	MainFile string
	// PluginDir overrides the plugin root derived from the source location.
	PluginDir string
}

// ConfigFrom maps resolved configuration onto loader configuration.
func ConfigFrom(c *config.Config) Config {
	return Config{
		Version:    c.Version,
		TextDomain: c.TextDomain,
		DomainPath: c.DomainPath,
		MainFile:   c.MainFile,
		PluginDir:  c.PluginDir,
	}
}

// Metadata describes the plugin. It is fixed when the Loader is created.
type Metadata struct {
	Version    string
	TextDomain string
	DomainPath string
	PluginDir  string
	MainFile   string
}

// LanguagesDir returns the plugin's own translation directory.
func (m Metadata) LanguagesDir() string {
	return filepath.Join(m.PluginDir, m.DomainPath)
}

func (c Config) metadata() Metadata {
	if c.Version == "" {
		c.Version = config.DefaultVersion
	}
	if c.TextDomain == "" {
		c.TextDomain = config.DefaultTextDomain
	}
	if c.DomainPath == "" {
		c.DomainPath = manifest.DefaultDomainPath
	}
	if c.MainFile == "" {
		c.MainFile = manifest.FileName
	}

	dir := c.PluginDir
	if dir == "" {
		dir = sourceDirectory()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	return Metadata{
		Version:    c.Version,
		TextDomain: c.TextDomain,
		DomainPath: c.DomainPath,
		PluginDir:  dir,
		MainFile:   filepath.Join(dir, c.MainFile),
	}
}
