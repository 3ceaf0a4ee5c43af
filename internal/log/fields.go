// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldEventID       = "event_id"
	FieldJobID         = "job_id"
	FieldCorrelationID = "correlation_id"
	FieldChannelID     = "channel_id"
	FieldUserID        = "user_id"
	FieldGuildID       = "guild_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldBackend   = "backend"

	// Reminder fields
	FieldOffset = "offset"
	FieldFireAt = "fire_at"
	FieldStart  = "start"

	// Session fields
	FieldSessionGen = "session_gen"
	FieldDuration   = "duration_minutes"
	FieldTaskCount  = "task_count"

	// Path fields
	FieldPath = "path"
)
