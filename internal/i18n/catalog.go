// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package i18n loads translation catalogs for text domains.
//
// A catalog is a flat YAML map of message ID to translated string, stored as
// <dir>/<domain>-<locale>.yaml. Loading is best-effort: a missing catalog is
// not an error and lookups fall back to the message ID.
package i18n

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Error codes for catalog loading.
const (
	CodeInvalidCatalog = "INVALID_CATALOG"
	CodeReadFailed     = "CATALOG_READ_FAILED"
)

// Catalog holds the translated strings of one text domain for one locale.
type Catalog struct {
	Domain   string
	Locale   string
	Messages map[string]string
}

// Store holds loaded catalogs. It is safe for concurrent use.
type Store struct {
	catalogs map[string]*Catalog
	mu       sync.RWMutex
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{catalogs: make(map[string]*Catalog)}
}

// FileName returns the catalog file name for a domain and locale.
func FileName(domain, locale string) string {
	return domain + "-" + locale + ".yaml"
}

func key(domain, locale string) string {
	return domain + "\x00" + locale
}

// Load reads the catalog for domain and locale from dir. It reports whether a
// catalog was found. A missing file returns false and no error; a malformed
// file returns an error and leaves any previously loaded catalog in place.
func (s *Store) Load(domain, locale, dir string) (bool, error) {
	path := filepath.Join(dir, FileName(domain, locale))

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured languages directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, oops.Code(CodeReadFailed).
			With("path", path).
			Wrapf(err, "read catalog")
	}

	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return false, oops.Code(CodeInvalidCatalog).
			With("path", path).
			With("domain", domain).
			With("locale", locale).
			Wrapf(err, "parse catalog")
	}
	if messages == nil {
		messages = map[string]string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalogs == nil {
		s.catalogs = make(map[string]*Catalog)
	}
	s.catalogs[key(domain, locale)] = &Catalog{
		Domain:   domain,
		Locale:   locale,
		Messages: messages,
	}
	return true, nil
}

// Loaded reports whether a catalog for domain and locale has been loaded.
func (s *Store) Loaded(domain, locale string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.catalogs[key(domain, locale)]
	return ok
}

// Translate returns the translation of msgid, or msgid itself when no catalog
// or entry exists.
func (s *Store) Translate(domain, locale, msgid string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[key(domain, locale)]
	if !ok {
		return msgid
	}
	if msg, ok := c.Messages[msgid]; ok && msg != "" {
		return msg
	}
	return msgid
}
