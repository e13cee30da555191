// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bootstrap_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/holomush/hookloader/internal/assets"
	"github.com/holomush/hookloader/internal/hook"
)

// mockHost is a testify mock of bootstrap.Host.
type mockHost struct {
	mock.Mock
}

func (m *mockHost) AddAction(ctx context.Context, reg hook.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *mockHost) IsAdmin() bool {
	return m.Called().Bool(0)
}

func (m *mockHost) IsFeed(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *mockHost) IsNotFound(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *mockHost) LoadTextDomain(ctx context.Context, domain, pluginDir string) bool {
	return m.Called(ctx, domain, pluginDir).Bool(0)
}

func (m *mockHost) RegisterScript(ctx context.Context, s assets.Script) error {
	return m.Called(ctx, s).Error(0)
}

// newRecordingHost returns a host that accepts every registration and keeps them in order.
func newRecordingHost(admin bool) *mockHost {
	h := &mockHost{}
	h.On("IsAdmin").Return(admin).Once()
	h.On("AddAction", mock.Anything, mock.Anything).Return(nil)
	return h
}

// registered returns the registrations submitted to h, in order.
func registered(h *mockHost) []hook.Registration {
	var regs []hook.Registration
	for _, call := range h.Calls {
		if call.Method == "AddAction" {
			regs = append(regs, call.Arguments.Get(1).(hook.Registration))
		}
	}
	return regs
}
