// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"errors"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	"github.com/ManuGH/bodydouble/internal/metrics"
	"github.com/ManuGH/bodydouble/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// instrumented records metrics and spans around a backend.
type instrumented struct {
	next    Store
	backend string
}

// Instrument wraps s so every Load and Save is counted per backend and traced.
func Instrument(s Store, backend string) Store {
	return &instrumented{next: s, backend: backend}
}

func (i *instrumented) Load(ctx context.Context) (model.PersistedState, error) {
	ctx, span := telemetry.Tracer("store").Start(ctx, "store.load")
	span.SetAttributes(attribute.String(telemetry.BackendKey, i.backend))
	defer span.End()

	state, err := i.next.Load(ctx)
	switch {
	case err == nil:
		metrics.IncStoreOperation(i.backend, "load", "success")
	case errors.Is(err, ErrCorrupt):
		metrics.IncStoreOperation(i.backend, "load", "corrupt")
		span.SetStatus(codes.Error, err.Error())
	default:
		metrics.IncStoreOperation(i.backend, "load", "failure")
		span.SetStatus(codes.Error, err.Error())
	}
	return state, err
}

func (i *instrumented) Save(ctx context.Context, state model.PersistedState) error {
	ctx, span := telemetry.Tracer("store").Start(ctx, "store.save")
	span.SetAttributes(attribute.String(telemetry.BackendKey, i.backend))
	defer span.End()

	err := i.next.Save(ctx, state)
	if err != nil {
		metrics.IncStoreOperation(i.backend, "save", "failure")
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	metrics.IncStoreOperation(i.backend, "save", "success")
	return nil
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
