// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	"github.com/ManuGH/bodydouble/internal/domain/session/store"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type message struct {
	channelID int64
	plain     string
	rich      *ports.RichMessage
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []message
	err  error
}

func (n *recordingNotifier) SendPlain(_ context.Context, channelID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.msgs = append(n.msgs, message{channelID: channelID, plain: text})
	return nil
}

func (n *recordingNotifier) SendRich(_ context.Context, channelID int64, msg ports.RichMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.msgs = append(n.msgs, message{channelID: channelID, rich: &msg})
	return nil
}

func (n *recordingNotifier) sent() []message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]message(nil), n.msgs...)
}

type directory map[int64]string

func (d directory) DisplayName(_ context.Context, userID int64) (string, error) {
	name, ok := d[userID]
	if !ok {
		return "", fmt.Errorf("lookup %d: %w", userID, ports.ErrUserNotFound)
	}
	return name, nil
}

// failingStore loads like its embedded store but refuses every save.
type failingStore struct {
	*store.MemoryStore
}

func (failingStore) Save(context.Context, model.PersistedState) error {
	return errors.New("disk full")
}

// unreachableStore fails every load the way a backend does during an outage.
type unreachableStore struct {
	*store.MemoryStore
}

func (unreachableStore) Load(context.Context) (model.PersistedState, error) {
	return model.DefaultState(), errors.New("dial tcp: i/o timeout")
}

type harness struct {
	m        *Manager
	clock    *clock.Fake
	store    *store.MemoryStore
	notifier *recordingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:    clock.NewFake(epoch),
		store:    store.NewMemoryStore(),
		notifier: &recordingNotifier{},
	}
	h.m = New(Deps{
		Clock:    h.clock,
		Store:    h.store,
		Notifier: h.notifier,
		Users:    directory{1: "Ada", 2: "Grace", 3: "Linus"},
	})
	t.Cleanup(h.m.Close)
	return h
}

func (h *harness) persisted(t *testing.T) model.PersistedState {
	t.Helper()
	state, err := h.store.Load(context.Background())
	if err != nil {
		t.Fatalf("load persisted state: %v", err)
	}
	return state
}
