// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import "errors"

// MaxTaskLength is the longest task text accepted, in runes.
const MaxTaskLength = 200

// Rejections. None of them changes session state.
var (
	ErrAlreadyActive   = errors.New("a session is already running")
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidDuration = errors.New("session duration must be a positive number of minutes")
	ErrEmptyTask       = errors.New("task text is empty")
	ErrTaskTooLong     = errors.New("task text is too long")
)

// rejectionReason maps a rejection to its metric label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, ErrNoActiveSession):
		return "no_active_session"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrEmptyTask):
		return "empty_task"
	case errors.Is(err, ErrTaskTooLong):
		return "task_too_long"
	default:
		return "unknown"
	}
}
