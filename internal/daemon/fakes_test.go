// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"sync"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeSessions struct{ rec *recorder }

func (f fakeSessions) Recover(context.Context) { f.rec.record("recover") }

type fakeSource struct {
	rec    *recorder
	events []ports.ScheduledEvent
	err    error
}

func (f fakeSource) FetchFutureEvents(context.Context) ([]ports.ScheduledEvent, error) {
	f.rec.record("fetch")
	return f.events, f.err
}

type fakeReminders struct {
	rec        *recorder
	mu         sync.Mutex
	reconciled []ports.ScheduledEvent
	cancelled  []int64
	booted     []ports.ScheduledEvent
}

func (f *fakeReminders) Reconcile(_ context.Context, ev ports.ScheduledEvent) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconciled = append(f.reconciled, ev)
	return 2
}

func (f *fakeReminders) Cancel(eventID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, eventID)
}

func (f *fakeReminders) Bootstrap(_ context.Context, events []ports.ScheduledEvent) int {
	f.rec.record("bootstrap")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booted = append(f.booted, events...)
	return 2 * len(events)
}
