// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecord(t *testing.T, content string) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions_state.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return NewFileStore(path)
}

func TestFileStore_MalformedRecordYieldsDefault(t *testing.T) {
	s := writeRecord(t, `{"session_active": tru`)

	got, err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, model.DefaultState(), got)
}

func TestFileStore_MissingFieldsAreDefaulted(t *testing.T) {
	s := writeRecord(t, `{"session_active": true, "session_channel_id": 10}`)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, int64(10), got.Channel())
	assert.NotNil(t, got.Tasks)
	assert.Empty(t, got.Tasks)
	assert.NotNil(t, got.PingOptIn)
	assert.Empty(t, got.PingOptIn)
}

func TestFileStore_NullChannel(t *testing.T) {
	s := writeRecord(t, `{"session_active": false, "session_channel_id": null, "session_tasks": {}, "session_ping_optin": []}`)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.ChannelID)
}

func TestFileStore_EmptyFileYieldsDefault(t *testing.T) {
	s := writeRecord(t, "")

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultState(), got)
}

func TestFileStore_WritesPersistedLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions_state.json")
	s := NewFileStore(path)

	ch := int64(10)
	require.NoError(t, s.Save(context.Background(), model.PersistedState{
		Active:    true,
		ChannelID: &ch,
		Tasks:     map[string][]string{"7": {"draft spec"}},
		PingOptIn: []int64{8},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"session_active": true,
		"session_channel_id": 10,
		"session_tasks": {"7": ["draft spec"]},
		"session_ping_optin": [8]
	}`, string(raw))
}

func TestFileStore_SaveIntoUnwritableLocationFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewFileStore(filepath.Join(blocker, "sessions_state.json"))
	assert.Error(t, s.Save(context.Background(), model.DefaultState()))
}
