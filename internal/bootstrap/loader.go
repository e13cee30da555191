// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package bootstrap binds the plugin to the host's lifecycle events.
//
// The host owns the request loop. Initialize submits a fixed table of
// registrations once per process; the host later invokes the handlers at
// points in its own lifecycle that the loader cannot influence.
package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/hookloader/internal/assets"
	"github.com/holomush/hookloader/internal/hook"
)

// CodeRegistrationFailed marks a registration the host refused.
const CodeRegistrationFailed = "REGISTRATION_FAILED"

// Host is the part of the host runtime the loader depends on.
type Host interface {
	// AddAction submits a handler registration to the host's dispatch table.
	AddAction(ctx context.Context, reg hook.Registration) error

	// IsAdmin reports whether the process serves the management interface.
	IsAdmin() bool

	// IsFeed reports whether the current request is for a syndication feed.
	IsFeed(ctx context.Context) bool

	// IsNotFound reports whether the current response is a not-found response.
	IsNotFound(ctx context.Context) bool

	// LoadTextDomain loads the catalog for domain in the active locale,
	// looking in pluginDir after the host's own translation directory.
	// It reports whether a catalog was found and never fails.
	LoadTextDomain(ctx context.Context, domain, pluginDir string) bool

	// RegisterScript makes a client script eligible for later enqueueing.
	RegisterScript(ctx context.Context, s assets.Script) error
}

// Loader is the plugin bootstrap.
type Loader struct {
	host   Host
	meta   Metadata
	compat hook.Handler
	logger *slog.Logger

	once  sync.Once
	table []hook.Registration
	err   error
}

// Option configures a Loader.
type Option func(*Loader)

// WithCompatibility sets the collaborator run on plugins_loaded to provide
// compatibility wrappers for other plugins.
func WithCompatibility(h hook.Handler) Option {
	return func(l *Loader) {
		l.compat = h
	}
}

// WithLogger sets the logger. Defaults to slog.Default at log time.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader bound to host. cfg is copied; empty fields take
// their defaults.
func New(host Host, cfg Config, opts ...Option) *Loader {
	l := &Loader{
		host: host,
		meta: cfg.metadata(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize registers the loader's handlers with the host. It runs at most
// once; later calls return the result of the first.
//
// The administrative context is queried exactly once and decides between
// the admin and public registrations.
//
// Registration stops at the first handler the host refuses. Handlers
// submitted before it stay registered with the host; Initialize does not
// remove them, and Handlers reports nil.
func (l *Loader) Initialize(ctx context.Context) error {
	l.once.Do(func() {
		table := l.registrations(l.host.IsAdmin())
		for _, reg := range table {
			if err := l.host.AddAction(ctx, reg); err != nil {
				l.err = oops.Code(CodeRegistrationFailed).
					With("event", reg.Event).
					With("handler", reg.Name).
					Wrapf(err, "register %s on %s", reg.Name, reg.Event)
				return
			}
		}
		l.table = table

		l.log().InfoContext(ctx, "plugin hooks registered",
			"version", l.meta.Version,
			"text_domain", l.meta.TextDomain,
			"count", len(table))
	})
	return l.err
}

// Handlers returns the registrations submitted by Initialize, in order.
// It returns nil before a successful Initialize.
func (l *Loader) Handlers() []hook.Registration {
	if l.table == nil {
		return nil
	}
	out := make([]hook.Registration, len(l.table))
	copy(out, l.table)
	return out
}

// Metadata returns the plugin's read-only metadata.
func (l *Loader) Metadata() Metadata {
	return l.meta
}

func (l *Loader) registrations(admin bool) []hook.Registration {
	table := []hook.Registration{
		{Event: hook.EventInit, Name: "LoadTranslatedText", Handler: l.LoadTranslatedText, Priority: hook.DefaultPriority},
		{Event: hook.EventPluginsLoaded, Name: "Compatibility", Handler: l.Compatibility, Priority: hook.DefaultPriority},
		{Event: hook.EventEnqueueScripts, Name: "RegisterScripts", Handler: l.RegisterScripts, Priority: 1},
	}

	if admin {
		return append(table,
			hook.Registration{Event: hook.EventInit, Name: "AdminInit", Handler: l.AdminInit, Priority: hook.DefaultPriority},
		)
	}
	return append(table,
		hook.Registration{Event: hook.EventInit, Name: "PublicInit", Handler: l.PublicInit, Priority: hook.DefaultPriority},
		hook.Registration{Event: hook.EventHeadRender, Name: "OnHeadRender", Handler: l.OnHeadRender, Priority: 1},
	)
}

func (l *Loader) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}
