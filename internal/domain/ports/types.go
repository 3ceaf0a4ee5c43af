// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package ports declares the narrow collaborator interfaces the reminder
// scheduler and the session manager depend on. The chat platform adapter
// implements them.
package ports

import "time"

// ScheduledEvent is a calendar event owned by the chat platform. It is never
// mutated by this process.
type ScheduledEvent struct {
	ID          int64
	Name        string
	Start       time.Time // zero when the platform did not provide one
	Location    string    // human-readable place or channel reference, may be empty
	Description string
}

// HasStart reports whether the event carries a start timestamp.
func (e ScheduledEvent) HasStart() bool {
	return !e.Start.IsZero()
}

// RichMessage is a titled card posted to a channel.
type RichMessage struct {
	Title     string
	Body      string
	Footer    string
	Timestamp time.Time
	// SessionControls asks the adapter to attach the session action controls.
	SessionControls bool
}
