// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_FillsEmptyCollections(t *testing.T) {
	got := PersistedState{Active: true}.Normalize()
	assert.NotNil(t, got.Tasks)
	assert.NotNil(t, got.PingOptIn)
	assert.Empty(t, got.Tasks)
	assert.Empty(t, got.PingOptIn)
}

func TestNormalize_SortsPingSet(t *testing.T) {
	got := PersistedState{PingOptIn: []int64{9, 2, 5}}.Normalize()
	assert.Equal(t, []int64{2, 5, 9}, got.PingOptIn)
}

func TestClone_IsDeep(t *testing.T) {
	ch := int64(10)
	orig := PersistedState{
		Active:    true,
		ChannelID: &ch,
		Tasks:     map[string][]string{"1": {"a"}},
		PingOptIn: []int64{2},
	}
	clone := orig.Clone()
	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	clone.Tasks["1"][0] = "mutated"
	*clone.ChannelID = 99
	clone.PingOptIn[0] = 7

	assert.Equal(t, "a", orig.Tasks["1"][0])
	assert.Equal(t, int64(10), orig.Channel())
	assert.Equal(t, int64(2), orig.PingOptIn[0])
}

func TestUserKeyRoundTrip(t *testing.T) {
	id, err := ParseUserKey(UserKey(123456789012345678))
	assert.NoError(t, err)
	assert.Equal(t, int64(123456789012345678), id)
}
