// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package log provides structured logging utilities.
package log

import (
	"context"

	"github.com/rs/zerolog"
)

// ctxKey names the log field its context value is copied to.
type ctxKey struct{ field string }

var (
	jobIDKey         = ctxKey{FieldJobID}
	correlationIDKey = ctxKey{FieldCorrelationID}
)

// ContextWithJobID tags ctx with a reminder job id.
func ContextWithJobID(ctx context.Context, id string) context.Context {
	return withValue(ctx, jobIDKey, id)
}

// ContextWithCorrelationID tags ctx with a correlation id, usually the
// platform interaction id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withValue(ctx, correlationIDKey, id)
}

func JobIDFromContext(ctx context.Context) string {
	return valueOf(ctx, jobIDKey)
}

func CorrelationIDFromContext(ctx context.Context) string {
	return valueOf(ctx, correlationIDKey)
}

// WithContext copies the ids carried by ctx onto logger. logger is returned
// unchanged when ctx carries none.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	jid, cid := JobIDFromContext(ctx), CorrelationIDFromContext(ctx)
	if jid == "" && cid == "" {
		return logger
	}
	b := logger.With()
	if jid != "" {
		b = b.Str(jobIDKey.field, jid)
	}
	if cid != "" {
		b = b.Str(correlationIDKey.field, cid)
	}
	return b.Logger()
}

// FromContext returns the logger stored in ctx by zerolog, or the base logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	l := Base()
	return &l
}

func withValue(ctx context.Context, key ctxKey, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, id)
}

func valueOf(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
