// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package daemon wires the bot's components together and owns the process
// lifecycle: boot-time reconciliation, event routing and the runtime group.
package daemon

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/rs/zerolog"
)

// SessionRecoverer applies the restart policy to persisted session state.
type SessionRecoverer interface {
	Recover(ctx context.Context)
}

// ReminderIndex is the part of the reminder scheduler driven by events.
type ReminderIndex interface {
	Reconcile(ctx context.Context, ev ports.ScheduledEvent) int
	Cancel(eventID int64)
	Bootstrap(ctx context.Context, events []ports.ScheduledEvent) int
}

// Bootstrapper rebuilds in-memory state once the platform client is ready.
type Bootstrapper struct {
	sessions  SessionRecoverer
	events    ports.EventSource
	reminders ReminderIndex
	logger    zerolog.Logger

	runs  atomic.Int64
	ready atomic.Bool
}

// NewBootstrapper validates its collaborators. events may be nil, in which
// case reminders are only armed by lifecycle notifications.
func NewBootstrapper(sessions SessionRecoverer, events ports.EventSource, reminders ReminderIndex) (*Bootstrapper, error) {
	if sessions == nil {
		return nil, ErrMissingSessions
	}
	if reminders == nil {
		return nil, ErrMissingReminders
	}
	return &Bootstrapper{
		sessions:  sessions,
		events:    events,
		reminders: reminders,
		logger:    log.WithComponent("bootstrap"),
	}, nil
}

// Run recovers the session, then fetches every future event and arms its
// reminders. A failed fetch is logged and leaves the scheduler as it was.
// Run is safe to repeat on every platform reconnect.
func (b *Bootstrapper) Run(ctx context.Context) {
	run := b.runs.Add(1)
	logger := log.WithContext(ctx, b.logger).With().Int64("run", run).Logger()
	start := time.Now()

	b.sessions.Recover(ctx)

	jobs := 0
	if b.events != nil {
		events, err := b.events.FetchFutureEvents(ctx)
		if err != nil {
			logger.Error().
				Err(err).
				Str(log.FieldEvent, "bootstrap.fetch_failed").
				Msg("scheduled events not fetched, reminders wait for the next event update")
		} else {
			jobs = b.reminders.Bootstrap(ctx, events)
		}
	}

	b.ready.Store(true)
	logger.Info().
		Str(log.FieldEvent, "bootstrap.completed").
		Int("jobs", jobs).
		Dur(log.FieldDuration, time.Since(start)).
		Msg("bootstrap completed")
}

// Ready reports whether Run completed at least once.
func (b *Bootstrapper) Ready() bool {
	return b.ready.Load()
}
