// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package reminder

import (
	"time"

	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/domain/ports"
)

// Offset is a named lead time before an event's start.
type Offset struct {
	Label string
	Lead  time.Duration
}

const (
	Label24h = "24h"
	Label1h  = "1h"
)

// DefaultOffsets are the lead times every future event is reminded at.
var DefaultOffsets = []Offset{
	{Label: Label24h, Lead: 24 * time.Hour},
	{Label: Label1h, Lead: time.Hour},
}

// JobInfo is a read-only view of an outstanding reminder job.
type JobInfo struct {
	ID      string    `json:"id"`
	EventID int64     `json:"event_id"`
	Label   string    `json:"label"`
	FireAt  time.Time `json:"fire_at"`
}

type job struct {
	id     string
	event  ports.ScheduledEvent
	label  string
	fireAt time.Time
	timer  clock.Timer
}

func (j *job) info() JobInfo {
	return JobInfo{ID: j.id, EventID: j.event.ID, Label: j.label, FireAt: j.fireAt}
}
