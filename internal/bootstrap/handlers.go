// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bootstrap

import (
	"context"
	"fmt"

	"github.com/holomush/hookloader/pkg/errutil"
)

// Handlers never return an error: the host may treat one as fatal to the
// whole request.

// LoadTranslatedText loads the plugin's catalog for the active locale.
// A missing catalog is not an error.
func (l *Loader) LoadTranslatedText(ctx context.Context, _ ...any) error {
	found := l.host.LoadTextDomain(ctx, l.meta.TextDomain, l.meta.LanguagesDir())
	l.log().DebugContext(ctx, "text domain loaded",
		"text_domain", l.meta.TextDomain,
		"found", found)
	return nil
}

// Compatibility runs the configured compatibility collaborator, if any.
// Without one it does nothing but warns, so the gap stays visible.
func (l *Loader) Compatibility(ctx context.Context, args ...any) (err error) {
	if l.compat == nil {
		l.log().WarnContext(ctx, "no compatibility handler configured",
			"plugin_version", l.meta.Version)
		return nil
	}

	defer func() {
		if p := recover(); p != nil {
			l.log().ErrorContext(ctx, "compatibility handler panicked", "panic", fmt.Sprint(p))
			err = nil
		}
	}()
	if cerr := l.compat(ctx, args...); cerr != nil {
		errutil.LogErrorContext(ctx, l.log(), "compatibility handler failed", cerr)
	}
	return nil
}

// AdminInit is the extension point for management-interface setup such as
// user profile fields.
func (l *Loader) AdminInit(context.Context, ...any) error {
	return nil
}

// PublicInit is the extension point for public page views. Feed requests and
// not-found responses are left alone.
func (l *Loader) PublicInit(ctx context.Context, _ ...any) error {
	if l.host.IsFeed(ctx) {
		return nil
	}
	if l.host.IsNotFound(ctx) {
		return nil
	}
	return nil
}

// OnHeadRender runs while the host renders the document head.
func (l *Loader) OnHeadRender(context.Context, ...any) error {
	return nil
}

// RegisterScripts runs on enqueue_scripts. It registers nothing yet.
// TODO: register the widgets bundle once its handle and source URL are settled.
func (l *Loader) RegisterScripts(context.Context, ...any) error {
	return nil
}
