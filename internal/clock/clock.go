// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package clock abstracts wall-clock time and deferred callbacks so that
// schedulers can be driven deterministically in tests.
package clock

import "time"

// Clock is the time source used by the reminder scheduler and the session manager.
type Clock interface {
	Now() time.Time
	// AfterFunc arranges for f to run in its own goroutine after d elapses.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a revocable handle for a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports false when the
	// callback already ran, is running, or the timer was stopped before.
	Stop() bool
}

// Real implements Clock using the standard time package.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
