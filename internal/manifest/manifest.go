// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package manifest parses and validates the plugin's main file, plugin.yaml.
package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the plugin's main file.
const FileName = "plugin.yaml"

// DefaultDomainPath is the translation directory used when a manifest omits one.
const DefaultDomainPath = "languages"

// Error codes for manifest failures.
const (
	CodeEmpty         = "MANIFEST_EMPTY"
	CodeInvalidYAML   = "MANIFEST_INVALID_YAML"
	CodeInvalid       = "MANIFEST_INVALID"
	CodeReadFailed    = "MANIFEST_READ_FAILED"
	CodeSchemaInvalid = "MANIFEST_SCHEMA_INVALID"
)

// Manifest represents a plugin.yaml file.
type Manifest struct {
	Name        string `json:"name" yaml:"name" jsonschema:"minLength=1,maxLength=64,pattern=^[a-z]([a-z0-9-]*[a-z0-9])?$"`
	Version     string `json:"version" yaml:"version" jsonschema:"minLength=1"`
	TextDomain  string `json:"text-domain" yaml:"text-domain" jsonschema:"minLength=1,maxLength=64,pattern=^[a-z]([a-z0-9-]*[a-z0-9])?$"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	DomainPath  string `json:"domain-path,omitempty" yaml:"domain-path,omitempty"`
}

// maxNameLength is the maximum allowed length for plugin names and text domains.
const maxNameLength = 64

// namePattern validates plugin names and text domains: must start with a
// lowercase letter, followed by lowercase letters, digits, or hyphens.
// Cannot end with a hyphen.
var namePattern = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)

// Parse parses and validates manifest data.
func Parse(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, oops.Code(CodeEmpty).Errorf("manifest data is empty")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oops.Code(CodeInvalidYAML).Wrapf(err, "invalid YAML")
	}
	if m.DomainPath == "" {
		m.DomainPath = DefaultDomainPath
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads the manifest at path, checks it against the JSON Schema, then
// parses and validates it. Errors carry the path in their context.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured plugin main file
	if err != nil {
		return nil, oops.Code(CodeReadFailed).
			With("path", path).
			Wrapf(err, "read manifest")
	}

	if err := ValidateSchema(data); err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return m, nil
}

// Validate checks manifest constraints.
func (m *Manifest) Validate() error {
	if err := validateIdentifier("name", m.Name); err != nil {
		return err
	}
	if err := validateIdentifier("text-domain", m.TextDomain); err != nil {
		return err
	}

	if m.Version == "" {
		return invalid("version", "version is required")
	}
	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		return oops.Code(CodeInvalid).
			With("field", "version").
			With("version", m.Version).
			Wrapf(err, "version %q is not a semantic version", m.Version)
	}

	if m.DomainPath != "" {
		clean := filepath.ToSlash(filepath.Clean(m.DomainPath))
		if filepath.IsAbs(m.DomainPath) || clean == ".." || strings.HasPrefix(clean, "../") {
			return invalid("domain-path", "domain-path %q must stay inside the plugin directory", m.DomainPath)
		}
	}

	return nil
}

func validateIdentifier(field, value string) error {
	if value == "" || !namePattern.MatchString(value) {
		return invalid(field, "%s %q must start with a-z, contain only a-z, 0-9, hyphens, and not end with a hyphen", field, value)
	}
	if len(value) > maxNameLength {
		return invalid(field, "%s must be %d characters or less, got %d", field, maxNameLength, len(value))
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return oops.Code(CodeInvalid).
		With("field", field).
		Errorf(format, args...)
}
