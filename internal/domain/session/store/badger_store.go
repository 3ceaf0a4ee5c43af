// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	"github.com/dgraph-io/badger/v4"
)

var badgerStateKey = []byte("session_state/v1")

// BadgerStore keeps the JSON record under a single badger key.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a badger database in dir. An empty dir opens an
// in-memory instance.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(_ context.Context) (model.PersistedState, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerStateKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.DefaultState(), nil
	}
	if err != nil {
		return model.DefaultState(), fmt.Errorf("read badger state: %w", err)
	}
	return decodeState(data)
}

func (s *BadgerStore) Save(_ context.Context, state model.PersistedState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerStateKey, data)
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
