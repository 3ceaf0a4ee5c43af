// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package reminder arms one-shot notification jobs ahead of scheduled events.
package reminder

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/ManuGH/bodydouble/internal/metrics"
	"github.com/ManuGH/bodydouble/internal/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
)

const defaultSendTimeout = 15 * time.Second

// Config parameterizes a Scheduler.
type Config struct {
	// ChannelID receives every reminder.
	ChannelID int64
	// SendTimeout bounds one delivery (plain mention plus card).
	SendTimeout time.Duration
	// Offsets defaults to DefaultOffsets.
	Offsets []Offset
}

// Scheduler owns the reminder jobs of every known event, indexed by event id.
// Jobs live only in memory; Bootstrap rebuilds them after a restart.
type Scheduler struct {
	clock    clock.Clock
	notifier ports.Notifier
	cfg      Config
	logger   zerolog.Logger

	baseCtx    context.Context
	cancelBase context.CancelFunc

	mu     sync.Mutex
	jobs   map[int64][]*job
	count  int
	closed bool
}

// NewScheduler creates a Scheduler delivering through n.
func NewScheduler(c clock.Clock, n ports.Notifier, cfg Config) *Scheduler {
	if c == nil {
		c = clock.Real{}
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	if len(cfg.Offsets) == 0 {
		cfg.Offsets = DefaultOffsets
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		clock:      c,
		notifier:   n,
		cfg:        cfg,
		logger:     log.WithComponent("reminder"),
		baseCtx:    ctx,
		cancelBase: cancel,
		jobs:       make(map[int64][]*job),
	}
}

// Reconcile replaces the jobs of ev with one job per offset whose fire time is
// still ahead. Events without a start, or starting now or earlier, end up with
// no jobs. It returns the number of jobs armed.
func (s *Scheduler) Reconcile(ctx context.Context, ev ports.ScheduledEvent) int {
	logger := log.WithContext(ctx, s.logger).With().Int64(log.FieldEventID, ev.ID).Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	if cancelled := s.cancelLocked(ev.ID); cancelled > 0 {
		logger.Debug().Str(log.FieldEvent, "reminder.superseded").Int("jobs", cancelled).Msg("previous reminder jobs cancelled")
	}
	if s.closed {
		return 0
	}

	now := s.clock.Now()
	if !ev.HasStart() || !ev.Start.After(now) {
		logger.Debug().Str(log.FieldEvent, "reminder.no_future_start").Msg("event has no future start, nothing to schedule")
		s.publishLocked()
		return 0
	}

	armed := make([]*job, 0, len(s.cfg.Offsets))
	for _, off := range s.cfg.Offsets {
		fireAt := ev.Start.Add(-off.Lead)
		if !fireAt.After(now) {
			metrics.IncReminderSkipped(off.Label)
			logger.Info().
				Str(log.FieldEvent, "reminder.skipped").
				Str(log.FieldOffset, off.Label).
				Msg("lead time already elapsed, reminder skipped")
			continue
		}

		j := &job{
			id:     uuid.NewString(),
			event:  ev,
			label:  off.Label,
			fireAt: fireAt,
		}
		j.timer = s.clock.AfterFunc(fireAt.Sub(now), func() { s.fire(j) })
		armed = append(armed, j)

		metrics.IncReminderScheduled(off.Label)
		logger.Info().
			Str(log.FieldEvent, "reminder.scheduled").
			Str(log.FieldJobID, j.id).
			Str(log.FieldOffset, off.Label).
			Time(log.FieldFireAt, fireAt).
			Dur("in", fireAt.Sub(now)).
			Msg("reminder scheduled")
	}

	if len(armed) > 0 {
		s.jobs[ev.ID] = armed
		s.count += len(armed)
	}
	s.publishLocked()
	return len(armed)
}

// Cancel discards every job of eventID. Unknown ids are a no-op.
func (s *Scheduler) Cancel(eventID int64) {
	s.mu.Lock()
	cancelled := s.cancelLocked(eventID)
	s.publishLocked()
	s.mu.Unlock()

	if cancelled > 0 {
		s.logger.Debug().
			Str(log.FieldEvent, "reminder.cancelled").
			Int64(log.FieldEventID, eventID).
			Int("jobs", cancelled).
			Msg("reminder jobs cancelled")
	}
}

// Bootstrap reconciles every event that starts in the future and returns the
// total number of jobs armed.
func (s *Scheduler) Bootstrap(ctx context.Context, events []ports.ScheduledEvent) int {
	now := s.clock.Now()
	total := 0
	considered := 0
	for _, ev := range events {
		if !ev.HasStart() || !ev.Start.After(now) {
			continue
		}
		considered++
		total += s.Reconcile(ctx, ev)
	}
	logger := log.WithContext(ctx, s.logger)
	logger.Info().
		Str(log.FieldEvent, "reminder.bootstrapped").
		Int("events", considered).
		Int("jobs", total).
		Msg("reminders rebuilt from event source")
	return total
}

// Pending lists the outstanding jobs of eventID ordered by fire time.
func (s *Scheduler) Pending(eventID int64) []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := s.jobs[eventID]
	out := make([]JobInfo, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.info())
	}
	sort.Slice(out, func(i, k int) bool { return out[i].FireAt.Before(out[k].FireAt) })
	return out
}

// Len returns the number of outstanding jobs across all events.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close stops every outstanding timer and aborts in-flight deliveries.
// Later Reconcile calls arm nothing.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	stopped := 0
	for id := range s.jobs {
		stopped += s.cancelLocked(id)
	}
	s.publishLocked()
	s.mu.Unlock()

	s.cancelBase()
	s.logger.Info().Str(log.FieldEvent, "reminder.closed").Int("jobs", stopped).Msg("reminder scheduler stopped")
}

// cancelLocked stops and unindexes the jobs of eventID. Caller holds s.mu.
func (s *Scheduler) cancelLocked(eventID int64) int {
	jobs, ok := s.jobs[eventID]
	if !ok {
		return 0
	}
	delete(s.jobs, eventID)
	for _, j := range jobs {
		j.timer.Stop()
	}
	s.count -= len(jobs)
	metrics.AddRemindersCancelled(len(jobs))
	return len(jobs)
}

// claimLocked removes j from the index. It reports false when j was cancelled
// or superseded before its callback got the lock.
func (s *Scheduler) claimLocked(j *job) bool {
	jobs := s.jobs[j.event.ID]
	for i, candidate := range jobs {
		if candidate != j {
			continue
		}
		rest := append(jobs[:i:i], jobs[i+1:]...)
		if len(rest) == 0 {
			delete(s.jobs, j.event.ID)
		} else {
			s.jobs[j.event.ID] = rest
		}
		s.count--
		return true
	}
	return false
}

func (s *Scheduler) publishLocked() {
	metrics.SetRemindersPending(s.count)
}

func (s *Scheduler) fire(j *job) {
	s.mu.Lock()
	owned := s.claimLocked(j)
	if owned {
		s.publishLocked()
	}
	s.mu.Unlock()

	logger := s.logger.With().
		Int64(log.FieldEventID, j.event.ID).
		Str(log.FieldJobID, j.id).
		Str(log.FieldOffset, j.label).
		Logger()

	if !owned {
		logger.Debug().Str(log.FieldEvent, "reminder.fire_stale").Msg("reminder job no longer indexed, not firing")
		return
	}

	ctx, cancel := context.WithTimeout(log.ContextWithJobID(s.baseCtx, j.id), s.cfg.SendTimeout)
	defer cancel()
	ctx, span := telemetry.Tracer("reminder").Start(ctx, "reminder.fire")
	span.SetAttributes(telemetry.ReminderAttributes(j.event.ID, j.label, j.id)...)
	defer span.End()

	err := s.deliver(ctx, j)
	metrics.IncReminderFired(j.label, err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "reminder.delivery_failed").
			Int64(log.FieldChannelID, s.cfg.ChannelID).
			Msg("reminder dropped")
		return
	}
	logger.Info().
		Str(log.FieldEvent, "reminder.fired").
		Int64(log.FieldChannelID, s.cfg.ChannelID).
		Msg("reminder delivered")
}

func (s *Scheduler) deliver(ctx context.Context, j *job) error {
	if err := s.notifier.SendPlain(ctx, s.cfg.ChannelID, EveryoneMention); err != nil {
		return err
	}
	return s.notifier.SendRich(ctx, s.cfg.ChannelID, Card(j.event, s.clock.Now()))
}
