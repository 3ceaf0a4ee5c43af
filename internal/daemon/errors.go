// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import "errors"

var (
	// ErrMissingClient is returned when an App is created without a platform client.
	ErrMissingClient = errors.New("platform client is required")

	// ErrMissingSessions is returned when a Bootstrapper has no session manager.
	ErrMissingSessions = errors.New("session manager is required")

	// ErrMissingReminders is returned when a Bootstrapper or router has no scheduler.
	ErrMissingReminders = errors.New("reminder scheduler is required")
)
