// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package assets provides the host's client-script pipeline.
//
// Scripts are first registered, which makes them eligible for inclusion, and
// later enqueued for a specific page response.
package assets

import (
	"sort"
	"sync"

	"github.com/samber/oops"
)

// Error codes for script registration failures.
const (
	CodeInvalidScript   = "INVALID_SCRIPT"
	CodeDuplicateScript = "DUPLICATE_SCRIPT"
	CodeUnknownScript   = "UNKNOWN_SCRIPT"
)

// Script describes a client-side script bundle.
type Script struct {
	Handle   string   `json:"handle" yaml:"handle"`
	Src      string   `json:"src" yaml:"src"`
	Deps     []string `json:"deps,omitempty" yaml:"deps,omitempty"`
	Version  string   `json:"version,omitempty" yaml:"version,omitempty"`
	InFooter bool     `json:"in-footer,omitempty" yaml:"in-footer,omitempty"`
}

// Registry tracks registered and enqueued scripts.
// It is safe for concurrent use.
type Registry struct {
	scripts  map[string]Script
	enqueued []string
	mu       sync.RWMutex
}

// NewRegistry creates an empty script registry.
func NewRegistry() *Registry {
	return &Registry{scripts: make(map[string]Script)}
}

// Register makes a script eligible for later enqueueing.
func (r *Registry) Register(s Script) error {
	if s.Handle == "" {
		return oops.Code(CodeInvalidScript).
			With("src", s.Src).
			Errorf("script handle is required")
	}
	if s.Src == "" {
		return oops.Code(CodeInvalidScript).
			With("handle", s.Handle).
			Errorf("script %s has no source", s.Handle)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.scripts == nil {
		r.scripts = make(map[string]Script)
	}
	if _, ok := r.scripts[s.Handle]; ok {
		return oops.Code(CodeDuplicateScript).
			With("handle", s.Handle).
			Errorf("script %s already registered", s.Handle)
	}

	s.Deps = append([]string(nil), s.Deps...)
	r.scripts[s.Handle] = s
	return nil
}

// Enqueue marks a registered script for inclusion in the current response.
// Enqueueing the same handle twice is a no-op.
func (r *Registry) Enqueue(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scripts[handle]; !ok {
		return oops.Code(CodeUnknownScript).
			With("handle", handle).
			Errorf("script %s is not registered", handle)
	}
	for _, h := range r.enqueued {
		if h == handle {
			return nil
		}
	}
	r.enqueued = append(r.enqueued, handle)
	return nil
}

// Registered returns all registered scripts sorted by handle.
func (r *Registry) Registered() []Script {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Script, 0, len(r.scripts))
	for _, s := range r.scripts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Enqueued returns the handles of enqueued scripts in enqueue order.
func (r *Registry) Enqueued() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.enqueued...)
}

// Len returns the number of registered scripts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scripts)
}
