// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads hookloader configuration from defaults, an optional
// YAML file and command-line flags, in increasing order of precedence.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/hookloader/internal/logging"
	"github.com/holomush/hookloader/internal/manifest"
	"github.com/holomush/hookloader/internal/xdg"
)

// Error codes for configuration failures.
const (
	CodeLoadFailed = "CONFIG_LOAD_FAILED"
	CodeInvalid    = "CONFIG_INVALID"
)

// Defaults for plugin metadata.
const (
	DefaultVersion    = "0.0.1"
	DefaultTextDomain = "plugin"
	DefaultLocale     = "en_US"
)

// Config is the resolved hookloader configuration.
type Config struct {
	LogFormat    string `koanf:"log-format"`
	LogLevel     string `koanf:"log-level"`
	PluginDir    string `koanf:"plugin-dir"`
	MainFile     string `koanf:"main-file"`
	Version      string `koanf:"plugin-version"`
	TextDomain   string `koanf:"text-domain"`
	DomainPath   string `koanf:"domain-path"`
	LanguagesDir string `koanf:"languages-dir"`
	Locale       string `koanf:"locale"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogFormat:  logging.FormatJSON,
		LogLevel:   "info",
		MainFile:   manifest.FileName,
		Version:    DefaultVersion,
		TextDomain: DefaultTextDomain,
		DomainPath: manifest.DefaultDomainPath,
		Locale:     DefaultLocale,
	}
}

// RegisterFlags adds the configuration flags to flags, using the built-in
// defaults as flag defaults.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("log-format", d.LogFormat, "log format (json or text)")
	flags.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	flags.String("plugin-dir", d.PluginDir, "plugin root directory (default: derived from the binary's source location)")
	flags.String("main-file", d.MainFile, "plugin main file name, relative to the plugin directory")
	flags.String("plugin-version", d.Version, "plugin version")
	flags.String("text-domain", d.TextDomain, "translation text domain")
	flags.String("domain-path", d.DomainPath, "plugin translation directory, relative to the plugin directory")
	flags.String("languages-dir", d.LanguagesDir, "host-wide translation directory (default: XDG_DATA_HOME/hookloader/languages)")
	flags.String("locale", d.Locale, "active locale")
}

// Load resolves configuration. If path is empty, the XDG default config file
// is used when it exists. If flags is non-nil, its values take precedence over
// the file; flags left at their defaults do not override file values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		if def, err := xdg.ConfigFile(); err == nil && exists(def) {
			path = def
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code(CodeLoadFailed).
				With("path", path).
				Wrapf(err, "load config file")
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code(CodeLoadFailed).Wrapf(err, "load flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code(CodeLoadFailed).Wrapf(err, "decode config")
	}

	if cfg.LanguagesDir == "" {
		if dir, err := xdg.LanguagesDir(); err == nil {
			cfg.LanguagesDir = dir
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.LogFormat != logging.FormatJSON && c.LogFormat != logging.FormatText {
		return invalid("log-format", "log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return invalid("log-level", "%v", err)
	}
	if c.Version == "" {
		return invalid("plugin-version", "plugin-version is required")
	}
	if c.TextDomain == "" {
		return invalid("text-domain", "text-domain is required")
	}
	if c.MainFile == "" {
		return invalid("main-file", "main-file is required")
	}
	return nil
}

func invalid(key, format string, args ...any) error {
	return oops.Code(CodeInvalid).
		With("key", key).
		Errorf(format, args...)
}

// exists reports whether path names an existing file.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
