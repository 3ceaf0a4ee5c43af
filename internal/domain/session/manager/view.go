// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
)

// View is a read-only copy of the session.
type View struct {
	Phase      model.Phase `json:"phase"`
	ChannelID  int64       `json:"channel_id,omitempty"`
	Tasks      []UserTasks `json:"tasks"`
	PingOptIn  []int64     `json:"ping_opt_in"`
	StartedAt  time.Time   `json:"started_at,omitempty"`
	EndsAt     time.Time   `json:"ends_at,omitempty"`
	Generation uint64      `json:"generation"`
}

// Active reports whether the view was taken during a session.
func (v View) Active() bool {
	return v.Phase == model.PhaseActive
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{
		Phase:      m.phase,
		ChannelID:  m.channelID,
		Tasks:      m.userTasksLocked(),
		PingOptIn:  m.pingLocked(),
		StartedAt:  m.startedAt,
		EndsAt:     m.endsAt,
		Generation: m.gen,
	}
}
