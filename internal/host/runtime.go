// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package host provides an in-process host runtime: a hook dispatch table,
// request predicates, translation catalogs and a client-script pipeline,
// driven through a fixed per-request lifecycle.
package host

import (
	"context"
	"errors"
	"log/slog"

	"github.com/holomush/hookloader/internal/assets"
	"github.com/holomush/hookloader/internal/hook"
	"github.com/holomush/hookloader/internal/i18n"
	"github.com/holomush/hookloader/pkg/errutil"
)

// DefaultLocale is used when neither the request nor the runtime sets one.
const DefaultLocale = "en_US"

// Runtime is the host. Registrations are process-wide; request state
// travels in the context passed to Serve.
type Runtime struct {
	admin        bool
	locale       string
	languagesDir string
	hooks        *hook.Registry
	catalogs     *i18n.Store
	scripts      *assets.Registry
	logger       *slog.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithAdmin marks the process as serving the management interface.
func WithAdmin(admin bool) Option {
	return func(r *Runtime) { r.admin = admin }
}

// WithLocale sets the default locale.
func WithLocale(locale string) Option {
	return func(r *Runtime) { r.locale = locale }
}

// WithLanguagesDir sets the host-wide translation directory, searched
// before a plugin's own directory.
func WithLanguagesDir(dir string) Option {
	return func(r *Runtime) { r.languagesDir = dir }
}

// WithRegistry sets the hook dispatch table.
func WithRegistry(reg *hook.Registry) Option {
	return func(r *Runtime) { r.hooks = reg }
}

// WithCatalogs sets the translation catalog store.
func WithCatalogs(s *i18n.Store) Option {
	return func(r *Runtime) { r.catalogs = s }
}

// WithScripts sets the client-script registry.
func WithScripts(s *assets.Registry) Option {
	return func(r *Runtime) { r.scripts = s }
}

// WithLogger sets the logger. Defaults to slog.Default at log time.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) { r.logger = logger }
}

// New creates a host runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{locale: DefaultLocale}
	for _, opt := range opts {
		opt(r)
	}
	if r.hooks == nil {
		r.hooks = hook.NewRegistry()
	}
	if r.catalogs == nil {
		r.catalogs = i18n.NewStore()
	}
	if r.scripts == nil {
		r.scripts = assets.NewRegistry()
	}
	return r
}

// Hooks returns the dispatch table.
func (r *Runtime) Hooks() *hook.Registry { return r.hooks }

// Catalogs returns the translation store.
func (r *Runtime) Catalogs() *i18n.Store { return r.catalogs }

// Scripts returns the client-script registry.
func (r *Runtime) Scripts() *assets.Registry { return r.scripts }

// AddAction submits a registration to the dispatch table.
func (r *Runtime) AddAction(_ context.Context, reg hook.Registration) error {
	_, err := r.hooks.Add(reg)
	return err
}

// IsAdmin reports whether the process serves the management interface.
func (r *Runtime) IsAdmin() bool {
	return r.admin
}

// IsFeed reports whether the request in ctx is for a syndication feed.
func (r *Runtime) IsFeed(ctx context.Context) bool {
	req, ok := RequestFrom(ctx)
	return ok && req.Feed
}

// IsNotFound reports whether the request in ctx resolved to a not-found response.
func (r *Runtime) IsNotFound(ctx context.Context) bool {
	req, ok := RequestFrom(ctx)
	return ok && req.NotFound
}

// Locale returns the active locale for ctx.
func (r *Runtime) Locale(ctx context.Context) string {
	if req, ok := RequestFrom(ctx); ok && req.Locale != "" {
		return req.Locale
	}
	return r.locale
}

// LoadTextDomain loads the catalog for domain in the active locale, trying
// the host-wide directory first and then pluginDir. It reports whether a
// catalog was found. Read and parse failures are logged, never returned.
func (r *Runtime) LoadTextDomain(ctx context.Context, domain, pluginDir string) bool {
	locale := r.Locale(ctx)

	for _, dir := range []string{r.languagesDir, pluginDir} {
		if dir == "" {
			continue
		}
		found, err := r.catalogs.Load(domain, locale, dir)
		if err != nil {
			errutil.LogErrorContext(ctx, r.log(), "failed to load translation catalog", err)
			continue
		}
		if found {
			r.log().DebugContext(ctx, "translation catalog loaded",
				"text_domain", domain,
				"locale", locale,
				"dir", dir)
			return true
		}
	}
	return false
}

// RegisterScript makes a client script eligible for later enqueueing.
func (r *Runtime) RegisterScript(_ context.Context, s assets.Script) error {
	return r.scripts.Register(s)
}

// Lifecycle returns the events the host emits for one request, in order.
func Lifecycle(admin bool) []string {
	if admin {
		return []string{hook.EventPluginsLoaded, hook.EventInit}
	}
	return []string{hook.EventPluginsLoaded, hook.EventInit, hook.EventEnqueueScripts, hook.EventHeadRender}
}

// Serve runs one request through the host lifecycle. Handler failures are
// logged by the dispatch table and joined into the returned error; later
// events still fire.
func (r *Runtime) Serve(ctx context.Context, req Request) error {
	ctx = WithRequest(ctx, req)

	r.log().InfoContext(ctx, "serving request",
		"path", req.Path,
		"admin", r.admin,
		"feed", req.Feed,
		"not_found", req.NotFound,
		"locale", r.Locale(ctx))

	var errs []error
	for _, event := range Lifecycle(r.admin) {
		if err := r.hooks.Do(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runtime) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}
