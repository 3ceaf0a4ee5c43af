// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package model holds the session value types shared by the manager and the stores.
package model

import (
	"sort"
	"strconv"
)

// Phase is the state of the session state machine.
type Phase string

const (
	PhaseIdle   Phase = "idle"
	PhaseActive Phase = "active"
)

// PersistedState is the durable projection of the session. Its JSON layout is
// the on-disk record format.
type PersistedState struct {
	Active    bool                `json:"session_active"`
	ChannelID *int64              `json:"session_channel_id"`
	Tasks     map[string][]string `json:"session_tasks"`
	PingOptIn []int64             `json:"session_ping_optin"`
}

// DefaultState returns the state of a deployment that never ran a session.
func DefaultState() PersistedState {
	return PersistedState{
		Tasks:     map[string][]string{},
		PingOptIn: []int64{},
	}
}

// Normalize replaces nil collections with empty ones and sorts the ping set.
func (s PersistedState) Normalize() PersistedState {
	out := s
	if out.Tasks == nil {
		out.Tasks = map[string][]string{}
	}
	if out.PingOptIn == nil {
		out.PingOptIn = []int64{}
	} else {
		out.PingOptIn = append([]int64{}, out.PingOptIn...)
	}
	sort.Slice(out.PingOptIn, func(i, j int) bool { return out.PingOptIn[i] < out.PingOptIn[j] })
	return out
}

// Clone returns a deep copy.
func (s PersistedState) Clone() PersistedState {
	out := PersistedState{Active: s.Active}
	if s.ChannelID != nil {
		ch := *s.ChannelID
		out.ChannelID = &ch
	}
	if s.Tasks != nil {
		out.Tasks = make(map[string][]string, len(s.Tasks))
		for k, v := range s.Tasks {
			out.Tasks[k] = append([]string(nil), v...)
		}
	}
	if s.PingOptIn != nil {
		out.PingOptIn = append([]int64{}, s.PingOptIn...)
	}
	return out
}

// Channel returns the recorded channel, or 0 when none is set.
func (s PersistedState) Channel() int64 {
	if s.ChannelID == nil {
		return 0
	}
	return *s.ChannelID
}

// UserKey formats a user id the way the task mapping is keyed.
func UserKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// ParseUserKey is the inverse of UserKey.
func ParseUserKey(key string) (int64, error) {
	return strconv.ParseInt(key, 10, 64)
}
