// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package host

import "context"

// Request describes the request the host is currently serving.
type Request struct {
	Path     string
	Feed     bool
	NotFound bool
	// Locale overrides the runtime's default locale when set.
	Locale string
}

type requestKey struct{}

// WithRequest returns a context carrying req.
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the request carried by ctx, if any.
func RequestFrom(ctx context.Context) (Request, bool) {
	req, ok := ctx.Value(requestKey{}).(Request)
	return req, ok
}
