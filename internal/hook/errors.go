// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hook

import (
	"github.com/samber/oops"
)

// Error codes for registration and dispatch failures.
const (
	CodeInvalidEvent   = "INVALID_EVENT"
	CodeNilHandler     = "NIL_HANDLER"
	CodeInvalidArgs    = "INVALID_ARGS"
	CodeInvalidPattern = "INVALID_PATTERN"
	CodeHandlerFailed  = "HANDLER_FAILED"
	CodeHandlerPanic   = "HANDLER_PANIC"
)

// ErrInvalidEvent creates an error for a registration without an event name.
func ErrInvalidEvent(name string) error {
	return oops.Code(CodeInvalidEvent).
		With("handler", name).
		Errorf("event name is required")
}

// ErrNilHandler creates an error for a registration without a handler.
func ErrNilHandler(event string) error {
	return oops.Code(CodeNilHandler).
		With("event", event).
		Errorf("handler for event %s is nil", event)
}

// ErrInvalidArgs creates an error for a negative accepted argument count.
func ErrInvalidArgs(event string, n int) error {
	return oops.Code(CodeInvalidArgs).
		With("event", event).
		With("accepted_args", n).
		Errorf("accepted argument count must not be negative, got %d", n)
}
