// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	"github.com/ManuGH/bodydouble/internal/domain/session/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_InterruptedSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ch := int64(10)
	require.NoError(t, h.store.Save(ctx, model.PersistedState{
		Active:    true,
		ChannelID: &ch,
		Tasks:     map[string][]string{"1": {"draft spec"}},
		PingOptIn: []int64{2},
	}))

	h.m.Recover(ctx)

	assert.False(t, h.m.Snapshot().Active())
	if diff := cmp.Diff(model.DefaultState(), h.persisted(t)); diff != "" {
		t.Fatalf("record not rewritten idle (-want +got):\n%s", diff)
	}

	msgs := h.notifier.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(10), msgs[0].channelID)
	assert.Equal(t, RecoveryNotice, msgs[0].plain)
	assert.Zero(t, h.clock.Pending(), "no timer resumed")
}

func TestRecover_ActiveWithoutChannelIsSilent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.Save(ctx, model.PersistedState{Active: true}))

	h.m.Recover(ctx)

	assert.False(t, h.persisted(t).Active)
	assert.Empty(t, h.notifier.sent())
}

func TestRecover_CleanRecordIsUntouched(t *testing.T) {
	h := newHarness(t)
	h.m.Recover(context.Background())

	assert.Zero(t, h.store.Saves())
	assert.Empty(t, h.notifier.sent())
}

func TestRecover_CorruptFileIsReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	n := &recordingNotifier{}
	m := New(Deps{Clock: clock.NewFake(epoch), Store: store.NewFileStore(path), Notifier: n})
	defer m.Close()

	m.Recover(context.Background())

	state, err := store.NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Active)
	assert.Empty(t, n.sent())
}

func TestRecover_LoadFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	ch := int64(10)
	backing := store.NewMemoryStore()
	require.NoError(t, backing.Save(ctx, model.PersistedState{Active: true, ChannelID: &ch}))

	n := &recordingNotifier{}
	m := New(Deps{Clock: clock.NewFake(epoch), Store: unreachableStore{backing}, Notifier: n})
	defer m.Close()

	m.Recover(ctx)

	assert.Equal(t, 1, backing.Saves(), "record must not be rewritten")
	state, err := backing.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.Active)
	assert.Empty(t, n.sent())
	assert.False(t, m.Snapshot().Active())
}

func TestRecover_ThenStartWorks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ch := int64(10)
	require.NoError(t, h.store.Save(ctx, model.PersistedState{Active: true, ChannelID: &ch}))

	h.m.Recover(ctx)
	require.NoError(t, h.m.Start(ctx, 5, 11))
	assert.True(t, h.persisted(t).Active)
	assert.Equal(t, int64(11), h.persisted(t).Channel())
}
