// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/rs/zerolog"
)

// EventRouter maps event lifecycle notifications onto the reminder scheduler.
type EventRouter struct {
	reminders ReminderIndex
	logger    zerolog.Logger
}

var _ ports.EventSink = (*EventRouter)(nil)

// NewEventRouter creates a router feeding reminders.
func NewEventRouter(reminders ReminderIndex) (*EventRouter, error) {
	if reminders == nil {
		return nil, ErrMissingReminders
	}
	return &EventRouter{reminders: reminders, logger: log.WithComponent("events")}, nil
}

func (r *EventRouter) EventCreated(ctx context.Context, ev ports.ScheduledEvent) {
	armed := r.reminders.Reconcile(ctx, ev)
	r.logger.Debug().
		Str(log.FieldEvent, "events.created").
		Int64(log.FieldEventID, ev.ID).
		Int("jobs", armed).
		Msg("scheduled event created")
}

// EventUpdated reconciles against the new definition only.
func (r *EventRouter) EventUpdated(ctx context.Context, _ ports.ScheduledEvent, after ports.ScheduledEvent) {
	armed := r.reminders.Reconcile(ctx, after)
	r.logger.Debug().
		Str(log.FieldEvent, "events.updated").
		Int64(log.FieldEventID, after.ID).
		Int("jobs", armed).
		Msg("scheduled event updated")
}

func (r *EventRouter) EventDeleted(_ context.Context, eventID int64) {
	r.reminders.Cancel(eventID)
	r.logger.Debug().
		Str(log.FieldEvent, "events.deleted").
		Int64(log.FieldEventID, eventID).
		Msg("scheduled event deleted")
}
