// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package store persists the session's durable projection. Every backend keeps
// exactly one record per deployment.
package store

import (
	"context"
	"errors"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
)

// ErrCorrupt classifies a record that exists but cannot be decoded.
var ErrCorrupt = errors.New("session state record is corrupt")

// Store reads and writes the single PersistedState record.
//
// Load always returns a usable state: an absent record yields
// model.DefaultState() and a nil error; an unreadable or malformed record
// yields model.DefaultState() together with a non-nil error that callers log.
type Store interface {
	Load(ctx context.Context) (model.PersistedState, error)
	Save(ctx context.Context, state model.PersistedState) error
	Close() error
}
