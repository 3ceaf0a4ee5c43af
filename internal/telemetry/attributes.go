// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by reminder, session and store spans.
const (
	EventIDKey    = "reminder.event_id"
	OffsetKey     = "reminder.offset"
	JobIDKey      = "reminder.job_id"
	ChannelIDKey  = "chat.channel_id"
	SessionGenKey = "session.generation"
	TransitionKey = "session.transition"
	BackendKey    = "store.backend"
)

// ReminderAttributes creates reminder job span attributes.
func ReminderAttributes(eventID int64, offset, jobID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64(EventIDKey, eventID),
		attribute.String(OffsetKey, offset),
		attribute.String(JobIDKey, jobID),
	}
}

// SessionAttributes creates session transition span attributes.
func SessionAttributes(transition string, generation uint64, channelID int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(TransitionKey, transition),
		attribute.Int64(SessionGenKey, int64(generation)),
		attribute.Int64(ChannelIDKey, channelID),
	}
}
