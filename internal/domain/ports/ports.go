// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import "context"

// Notifier delivers messages to chat channels. Delivery is at most once;
// callers never retry.
type Notifier interface {
	SendPlain(ctx context.Context, channelID int64, text string) error
	SendRich(ctx context.Context, channelID int64, msg RichMessage) error
}

// UserDirectory resolves user identifiers to display names.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID int64) (string, error)
}

// EventSource lists the platform's scheduled events.
type EventSource interface {
	FetchFutureEvents(ctx context.Context) ([]ScheduledEvent, error)
}

// EventSink receives scheduled-event lifecycle notifications.
type EventSink interface {
	EventCreated(ctx context.Context, ev ScheduledEvent)
	EventUpdated(ctx context.Context, before, after ScheduledEvent)
	EventDeleted(ctx context.Context, eventID int64)
}
