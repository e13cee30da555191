// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package hook provides the host's event dispatch table: a mapping from
// lifecycle event names to priority-ordered handler lists.
package hook

import (
	"context"
	"sort"
	"sync"

	"github.com/gobwas/glob"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Handler is a callback invoked when its event is emitted.
// It receives at most the AcceptedArgs arguments of its registration.
type Handler func(ctx context.Context, args ...any) error

// DefaultPriority is the host's conventional priority. A Registration with
// no Priority set runs at priority 0, ahead of it.
const DefaultPriority = 10

// Registration binds a handler to an event name.
type Registration struct {
	ID           ulid.ULID
	Event        string
	Name         string
	Handler      Handler
	Priority     int
	AcceptedArgs int

	seq uint64
}

// Registry holds handler registrations keyed by event name.
// It is safe for concurrent use.
type Registry struct {
	events map[string][]Registration
	seq    uint64
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		events: make(map[string][]Registration),
	}
}

// Add registers a handler. Multiple registrations under the same event are
// accepted, including the same handler twice. The stored registration, with
// its assigned ID, is returned.
func (r *Registry) Add(reg Registration) (Registration, error) {
	if reg.Event == "" {
		return Registration{}, ErrInvalidEvent(reg.Name)
	}
	if reg.Handler == nil {
		return Registration{}, ErrNilHandler(reg.Event)
	}
	if reg.AcceptedArgs < 0 {
		return Registration{}, ErrInvalidArgs(reg.Event, reg.AcceptedArgs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.events == nil {
		r.events = make(map[string][]Registration)
	}

	r.seq++
	reg.seq = r.seq
	reg.ID = ulid.Make()

	r.events[reg.Event] = append(r.events[reg.Event], reg)
	recordRegistration(reg.Event)
	return reg, nil
}

// Remove unregisters the registration with the given ID.
// Returns false if no such registration exists under event.
func (r *Registry) Remove(event string, id ulid.ULID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs := r.events[event]
	for i, reg := range regs {
		if reg.ID != id {
			continue
		}
		r.events[event] = append(regs[:i:i], regs[i+1:]...)
		if len(r.events[event]) == 0 {
			delete(r.events, event)
		}
		return true
	}
	return false
}

// Has reports whether any handler is registered for event.
func (r *Registry) Has(event string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events[event]) > 0
}

// Count returns the total number of registrations across all events.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, regs := range r.events {
		n += len(regs)
	}
	return n
}

// Handlers returns the registrations for event in dispatch order: ascending
// priority, ties broken by registration order. The returned slice is a copy.
func (r *Registry) Handlers(event string) []Registration {
	r.mu.RLock()
	regs := make([]Registration, len(r.events[event]))
	copy(regs, r.events[event])
	r.mu.RUnlock()

	sortDispatch(regs)
	return regs
}

// List returns every registration whose event name matches pattern, ordered
// by event name then dispatch order. An empty pattern matches all events.
// Patterns use gobwas/glob syntax with '.' as the separator.
func (r *Registry) List(pattern string) ([]Registration, error) {
	var g glob.Glob
	if pattern != "" {
		compiled, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, oops.Code(CodeInvalidPattern).
				With("pattern", pattern).
				Wrapf(err, "compile event pattern")
		}
		g = compiled
	}

	r.mu.RLock()
	events := make([]string, 0, len(r.events))
	for event := range r.events {
		if g == nil || g.Match(event) {
			events = append(events, event)
		}
	}
	r.mu.RUnlock()

	sort.Strings(events)

	var out []Registration
	for _, event := range events {
		out = append(out, r.Handlers(event)...)
	}
	return out, nil
}

func sortDispatch(regs []Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		if regs[i].Priority != regs[j].Priority {
			return regs[i].Priority < regs[j].Priority
		}
		return regs[i].seq < regs[j].seq
	})
}
