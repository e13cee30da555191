// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/holomush/hookloader/internal/hook"
	"github.com/holomush/hookloader/pkg/errutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func noop(context.Context, ...any) error { return nil }

// recorder returns a handler that appends label to calls when invoked.
func recorder(calls *[]string, label string) hook.Handler {
	return func(context.Context, ...any) error {
		*calls = append(*calls, label)
		return nil
	}
}

func TestRegistry_Add(t *testing.T) {
	r := hook.NewRegistry()

	reg, err := r.Add(hook.Registration{
		Event:        hook.EventInit,
		Name:         "load",
		Handler:      noop,
		Priority:     hook.DefaultPriority,
		AcceptedArgs: 0,
	})
	require.NoError(t, err)

	assert.NotEqual(t, ulid.ULID{}, reg.ID, "registration should be assigned an ID")
	assert.True(t, r.Has(hook.EventInit))
	assert.False(t, r.Has(hook.EventHeadRender))
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_Add_Validation(t *testing.T) {
	tests := []struct {
		name string
		reg  hook.Registration
		code string
	}{
		{
			name: "empty event",
			reg:  hook.Registration{Handler: noop},
			code: hook.CodeInvalidEvent,
		},
		{
			name: "nil handler",
			reg:  hook.Registration{Event: hook.EventInit},
			code: hook.CodeNilHandler,
		},
		{
			name: "negative accepted args",
			reg:  hook.Registration{Event: hook.EventInit, Handler: noop, AcceptedArgs: -1},
			code: hook.CodeInvalidArgs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := hook.NewRegistry()
			_, err := r.Add(tt.reg)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, tt.code)
			assert.Zero(t, r.Count())
		})
	}
}

func TestRegistry_Add_AcceptsDuplicates(t *testing.T) {
	r := hook.NewRegistry()

	first, err := r.Add(hook.Registration{Event: hook.EventInit, Handler: noop})
	require.NoError(t, err)
	second, err := r.Add(hook.Registration{Event: hook.EventInit, Handler: noop})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, r.Handlers(hook.EventInit), 2)
}

func TestRegistry_ZeroValueIsUsable(t *testing.T) {
	var r hook.Registry

	_, err := r.Add(hook.Registration{Event: hook.EventInit, Handler: noop})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_Handlers_OrdersByPriorityThenInsertion(t *testing.T) {
	r := hook.NewRegistry()

	for _, reg := range []hook.Registration{
		{Name: "late", Priority: 20},
		{Name: "default-a", Priority: hook.DefaultPriority},
		{Name: "early", Priority: 1},
		{Name: "default-b", Priority: hook.DefaultPriority},
	} {
		reg.Event = hook.EventInit
		reg.Handler = noop
		_, err := r.Add(reg)
		require.NoError(t, err)
	}

	var names []string
	for _, reg := range r.Handlers(hook.EventInit) {
		names = append(names, reg.Name)
	}
	assert.Equal(t, []string{"early", "default-a", "default-b", "late"}, names)
}

func TestRegistry_Do_OmittedPriorityIsZero(t *testing.T) {
	r := hook.NewRegistry()
	var calls []string

	for _, reg := range []hook.Registration{
		{Name: "default", Priority: hook.DefaultPriority},
		{Name: "one", Priority: 1},
		{Name: "omitted"},
	} {
		reg.Event = hook.EventInit
		reg.Handler = recorder(&calls, reg.Name)
		_, err := r.Add(reg)
		require.NoError(t, err)
	}

	require.NoError(t, r.Do(context.Background(), hook.EventInit))
	assert.Equal(t, []string{"omitted", "one", "default"}, calls)
}

func TestRegistry_Handlers_ReturnsCopy(t *testing.T) {
	r := hook.NewRegistry()
	_, err := r.Add(hook.Registration{Event: hook.EventInit, Name: "orig", Handler: noop})
	require.NoError(t, err)

	regs := r.Handlers(hook.EventInit)
	regs[0].Name = "mutated"

	assert.Equal(t, "orig", r.Handlers(hook.EventInit)[0].Name)
}

func TestRegistry_Remove(t *testing.T) {
	r := hook.NewRegistry()
	keep, err := r.Add(hook.Registration{Event: hook.EventInit, Name: "keep", Handler: noop})
	require.NoError(t, err)
	drop, err := r.Add(hook.Registration{Event: hook.EventInit, Name: "drop", Handler: noop})
	require.NoError(t, err)

	assert.True(t, r.Remove(hook.EventInit, drop.ID))
	assert.False(t, r.Remove(hook.EventInit, drop.ID), "second removal should report missing")
	assert.False(t, r.Remove(hook.EventHeadRender, keep.ID), "wrong event should not match")

	regs := r.Handlers(hook.EventInit)
	require.Len(t, regs, 1)
	assert.Equal(t, "keep", regs[0].Name)

	assert.True(t, r.Remove(hook.EventInit, keep.ID))
	assert.False(t, r.Has(hook.EventInit))
}

func TestRegistry_List(t *testing.T) {
	r := hook.NewRegistry()
	for _, event := range []string{"init", "admin.init", "admin.menu", "head_render"} {
		_, err := r.Add(hook.Registration{Event: event, Name: event, Handler: noop})
		require.NoError(t, err)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "", want: []string{"admin.init", "admin.menu", "head_render", "init"}},
		{pattern: "admin.*", want: []string{"admin.init", "admin.menu"}},
		{pattern: "*init", want: []string{"init"}},
		{pattern: "**init", want: []string{"admin.init", "init"}},
		{pattern: "nothing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			regs, err := r.List(tt.pattern)
			require.NoError(t, err)

			var got []string
			for _, reg := range regs {
				got = append(got, reg.Event)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_List_InvalidPattern(t *testing.T) {
	r := hook.NewRegistry()

	_, err := r.List("[unclosed")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, hook.CodeInvalidPattern)
	errutil.AssertErrorContext(t, err, "pattern", "[unclosed")
}

func TestRegistry_Do_InvokesInOrder(t *testing.T) {
	r := hook.NewRegistry()
	var calls []string

	_, err := r.Add(hook.Registration{Event: hook.EventInit, Name: "b", Handler: recorder(&calls, "b"), Priority: hook.DefaultPriority})
	require.NoError(t, err)
	_, err = r.Add(hook.Registration{Event: hook.EventInit, Name: "a", Handler: recorder(&calls, "a"), Priority: 1})
	require.NoError(t, err)
	_, err = r.Add(hook.Registration{Event: hook.EventHeadRender, Name: "other", Handler: recorder(&calls, "other")})
	require.NoError(t, err)

	require.NoError(t, r.Do(context.Background(), hook.EventInit))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestRegistry_Do_NoHandlers(t *testing.T) {
	r := hook.NewRegistry()
	assert.NoError(t, r.Do(context.Background(), "nobody_listens"))
}

func TestRegistry_Do_LimitsArguments(t *testing.T) {
	r := hook.NewRegistry()
	got := map[string][]any{}

	capture := func(name string) hook.Handler {
		return func(_ context.Context, args ...any) error {
			got[name] = args
			return nil
		}
	}

	for name, n := range map[string]int{"zero": 0, "one": 1, "many": 5} {
		_, err := r.Add(hook.Registration{Event: "filter", Name: name, Handler: capture(name), AcceptedArgs: n})
		require.NoError(t, err)
	}

	require.NoError(t, r.Do(context.Background(), "filter", "x", "y"))

	assert.Empty(t, got["zero"])
	assert.Equal(t, []any{"x"}, got["one"])
	assert.Equal(t, []any{"x", "y"}, got["many"])
}

func TestRegistry_Do_ContinuesAfterFailure(t *testing.T) {
	r := hook.NewRegistry()
	var calls []string

	_, err := r.Add(hook.Registration{
		Event:    hook.EventInit,
		Name:     "fails",
		Priority: 1,
		Handler: func(context.Context, ...any) error {
			return errors.New("boom")
		},
	})
	require.NoError(t, err)
	_, err = r.Add(hook.Registration{
		Event:    hook.EventInit,
		Name:     "panics",
		Priority: 2,
		Handler: func(context.Context, ...any) error {
			panic("kaboom")
		},
	})
	require.NoError(t, err)
	_, err = r.Add(hook.Registration{Event: hook.EventInit, Name: "after", Priority: 3, Handler: recorder(&calls, "after")})
	require.NoError(t, err)

	err = r.Do(context.Background(), hook.EventInit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "panicked")
	errutil.AssertJoinedCodes(t, err, hook.CodeHandlerFailed, hook.CodeHandlerPanic)
	assert.Equal(t, []string{"after"}, calls, "later handlers should still run")
}

func TestRegistry_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	hook.RegisterMetrics(reg)

	const event = "metrics_test_event"
	r := hook.NewRegistry()

	_, err := r.Add(hook.Registration{Event: event, Handler: noop})
	require.NoError(t, err)
	_, err = r.Add(hook.Registration{
		Event:   event,
		Handler: func(context.Context, ...any) error { return errors.New("fail") },
	})
	require.NoError(t, err)

	_ = r.Do(context.Background(), event)

	assert.InDelta(t, 2, testutil.ToFloat64(hook.Registrations.WithLabelValues(event)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(hook.Invocations.WithLabelValues(event, hook.StatusSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(hook.Invocations.WithLabelValues(event, hook.StatusError)), 0)
}
