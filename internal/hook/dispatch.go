// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/holomush/hookloader/pkg/errutil"
)

var tracer = otel.Tracer("github.com/holomush/hookloader/internal/hook")

// Do emits event, invoking its handlers sequentially in dispatch order in the
// caller's goroutine. Each handler receives at most AcceptedArgs of args.
//
// A failing or panicking handler is logged and does not prevent later
// handlers from running. All failures are joined into the returned error.
// Emitting an event with no handlers is a no-op.
func (r *Registry) Do(ctx context.Context, event string, args ...any) error {
	regs := r.Handlers(event)
	if len(regs) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "hook.do")
	defer span.End()
	span.SetAttributes(
		attribute.String("hook.event", event),
		attribute.Int("hook.handlers", len(regs)),
	)

	var errs []error
	for _, reg := range regs {
		if err := invoke(ctx, reg, args); err != nil {
			errutil.LogErrorContext(ctx, slog.Default(), "hook handler failed", err)
			errs = append(errs, err)
			recordInvocation(event, StatusError)
			continue
		}
		recordInvocation(event, StatusSuccess)
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		return err
	}
	return nil
}

// invoke calls a single handler, converting a panic into an error.
func invoke(ctx context.Context, reg Registration, args []any) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = oops.Code(CodeHandlerPanic).
				With("event", reg.Event).
				With("handler", reg.Name).
				With("panic", fmt.Sprint(p)).
				Errorf("handler %s panicked on %s", reg.Name, reg.Event)
		}
	}()

	n := reg.AcceptedArgs
	if n > len(args) {
		n = len(args)
	}

	if herr := reg.Handler(ctx, args[:n]...); herr != nil {
		return oops.Code(CodeHandlerFailed).
			With("event", reg.Event).
			With("handler", reg.Name).
			Wrap(herr)
	}
	return nil
}
