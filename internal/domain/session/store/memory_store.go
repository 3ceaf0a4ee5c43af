// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"sync"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
)

// MemoryStore keeps the record in process memory. State does not survive a
// restart; it exists for tests and throwaway deployments.
type MemoryStore struct {
	mu    sync.Mutex
	state *model.PersistedState
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (model.PersistedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return model.DefaultState(), nil
	}
	return s.state.Clone().Normalize(), nil
}

func (s *MemoryStore) Save(_ context.Context, state model.PersistedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := state.Clone().Normalize()
	s.state = &clone
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}
