// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package manager runs the single body doubling session: start, task intake,
// ping opt-in, timed or explicit end with a summary, and crash recovery.
package manager

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	"github.com/ManuGH/bodydouble/internal/domain/session/store"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/ManuGH/bodydouble/internal/metrics"
	"github.com/ManuGH/bodydouble/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultSendTimeout = 15 * time.Second

// Transition names used in logs, metrics and spans.
const (
	TransitionStart   = "start"
	TransitionEnd     = "end"
	TransitionExpire  = "expire"
	TransitionRecover = "recover"
)

// Deps are the collaborators of a Manager.
type Deps struct {
	Clock    clock.Clock
	Store    store.Store
	Notifier ports.Notifier
	Users    ports.UserDirectory
	// SendTimeout bounds the notifications of a timer-driven end.
	SendTimeout time.Duration
}

// Manager owns the one session. All state sits behind mu; notifications and
// name lookups run after the lock is released, on copies.
type Manager struct {
	clock       clock.Clock
	store       store.Store
	notifier    ports.Notifier
	users       ports.UserDirectory
	sendTimeout time.Duration
	logger      zerolog.Logger

	baseCtx    context.Context
	cancelBase context.CancelFunc

	mu        sync.Mutex
	phase     model.Phase
	channelID int64
	tasks     map[int64][]string
	order     []int64
	ping      map[int64]struct{}
	startedAt time.Time
	endsAt    time.Time
	timer     clock.Timer
	// gen increments on every start and end; an end-timer only acts on the
	// generation it was armed for.
	gen uint64
}

// New creates an idle Manager.
func New(deps Deps) *Manager {
	c := deps.Clock
	if c == nil {
		c = clock.Real{}
	}
	timeout := deps.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	st := deps.Store
	if st == nil {
		st = store.NewMemoryStore()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		clock:       c,
		store:       st,
		notifier:    deps.Notifier,
		users:       deps.Users,
		sendTimeout: timeout,
		logger:      log.WithComponent("session"),
		baseCtx:     ctx,
		cancelBase:  cancel,
	}
	m.resetLocked()
	metrics.SetSessionActive(false)
	return m
}

// Start opens a session of durationMinutes in channelID, announces it there
// and arms the end-timer.
func (m *Manager) Start(ctx context.Context, durationMinutes int, channelID int64) error {
	m.mu.Lock()
	if m.phase == model.PhaseActive {
		m.mu.Unlock()
		return m.reject(ctx, TransitionStart, ErrAlreadyActive)
	}
	if durationMinutes <= 0 {
		m.mu.Unlock()
		return m.reject(ctx, TransitionStart, ErrInvalidDuration)
	}

	m.resetLocked()
	m.gen++
	gen := m.gen
	now := m.clock.Now()
	duration := time.Duration(durationMinutes) * time.Minute
	m.phase = model.PhaseActive
	m.channelID = channelID
	m.startedAt = now
	m.endsAt = now.Add(duration)
	m.timer = m.clock.AfterFunc(duration, func() { m.expire(gen) })

	ctx, span := m.span(ctx, TransitionStart, gen, channelID)
	defer span.End()
	m.persistLocked(ctx)
	m.mu.Unlock()

	metrics.SetSessionActive(true)
	metrics.IncSessionTransition(TransitionStart)
	logger := log.WithContext(ctx, m.logger)
	logger.Info().
		Str(log.FieldEvent, "session.started").
		Int64(log.FieldChannelID, channelID).
		Uint64(log.FieldSessionGen, gen).
		Dur(log.FieldDuration, duration).
		Msg("session started")

	m.sendRich(ctx, channelID, startMessage(durationMinutes, now), "start")
	return nil
}

// AddTask appends text to the tasks of userID. Text is trimmed first.
func (m *Manager) AddTask(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != model.PhaseActive {
		return m.reject(ctx, "add_task", ErrNoActiveSession)
	}
	if text == "" {
		return m.reject(ctx, "add_task", ErrEmptyTask)
	}
	if utf8.RuneCountInString(text) > MaxTaskLength {
		return m.reject(ctx, "add_task", ErrTaskTooLong)
	}

	if _, ok := m.tasks[userID]; !ok {
		m.order = append(m.order, userID)
	}
	m.tasks[userID] = append(m.tasks[userID], text)
	m.persistLocked(ctx)

	metrics.IncSessionTask()
	logger := log.WithContext(ctx, m.logger)
	logger.Debug().
		Str(log.FieldEvent, "session.task_added").
		Int64(log.FieldUserID, userID).
		Int(log.FieldTaskCount, len(m.tasks[userID])).
		Msg("task added")
	return nil
}

// OptInPing adds userID to the users mentioned when the session ends.
func (m *Manager) OptInPing(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != model.PhaseActive {
		return m.reject(ctx, "opt_in_ping", ErrNoActiveSession)
	}
	if _, ok := m.ping[userID]; ok {
		return nil
	}
	m.ping[userID] = struct{}{}
	m.persistLocked(ctx)

	logger := log.WithContext(ctx, m.logger)
	logger.Debug().
		Str(log.FieldEvent, "session.ping_opt_in").
		Int64(log.FieldUserID, userID).
		Msg("user opted in to end ping")
	return nil
}

// End closes the active session now and posts its summary.
func (m *Manager) End(ctx context.Context) error {
	m.mu.Lock()
	if m.phase != model.PhaseActive {
		m.mu.Unlock()
		return m.reject(ctx, TransitionEnd, ErrNoActiveSession)
	}
	m.finish(ctx, TransitionEnd)
	return nil
}

// TasksSnapshot renders the current task listing, or NoTasksYet.
func (m *Manager) TasksSnapshot(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.phase != model.PhaseActive {
		m.mu.Unlock()
		return "", m.reject(ctx, "tasks_snapshot", ErrNoActiveSession)
	}
	tasks := m.userTasksLocked()
	m.mu.Unlock()

	text := m.listing(ctx, tasks)
	if text == "" {
		return NoTasksYet, nil
	}
	return text, nil
}

// Close stops the end-timer and aborts in-flight notifications. The persisted
// record is left as is, so the next process start recovers it.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()
	m.cancelBase()
}

// expire is the end-timer callback.
func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if m.phase != model.PhaseActive || m.gen != gen {
		current := m.gen
		m.mu.Unlock()
		m.logger.Debug().
			Str(log.FieldEvent, "session.timer_stale").
			Uint64(log.FieldSessionGen, gen).
			Uint64("current_gen", current).
			Msg("end-timer fired for a finished session, ignoring")
		return
	}

	ctx, cancel := context.WithTimeout(m.baseCtx, m.sendTimeout)
	defer cancel()
	m.finish(ctx, TransitionExpire)
}

// finish resets the session, persists, releases mu and then posts the
// mention line and summary. Caller holds mu with the session active.
func (m *Manager) finish(ctx context.Context, transition string) {
	gen := m.gen
	channelID := m.channelID
	tasks := m.userTasksLocked()
	ping := m.pingLocked()
	startedAt := m.startedAt

	ctx, span := m.span(ctx, transition, gen, channelID)
	defer span.End()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.resetLocked()
	m.gen++
	m.persistLocked(ctx)
	m.mu.Unlock()

	metrics.SetSessionActive(false)
	metrics.IncSessionTransition(transition)
	logger := log.WithContext(ctx, m.logger)
	logger.Info().
		Str(log.FieldEvent, "session.ended").
		Str("reason", transition).
		Int64(log.FieldChannelID, channelID).
		Uint64(log.FieldSessionGen, gen).
		Int("participants", len(tasks)).
		Int("pings", len(ping)).
		Dur("elapsed", m.clock.Now().Sub(startedAt)).
		Msg("session ended")

	if line := mentionLine(ping); line != "" {
		m.sendPlain(ctx, channelID, line, "end_mentions")
	}
	m.sendRich(ctx, channelID, summaryMessage(m.listing(ctx, tasks), m.clock.Now()), "summary")
}

// resetLocked puts the session into its idle shape.
func (m *Manager) resetLocked() {
	m.phase = model.PhaseIdle
	m.channelID = 0
	m.tasks = make(map[int64][]string)
	m.order = nil
	m.ping = make(map[int64]struct{})
	m.startedAt = time.Time{}
	m.endsAt = time.Time{}
	m.timer = nil
}

func (m *Manager) userTasksLocked() []UserTasks {
	out := make([]UserTasks, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, UserTasks{UserID: id, Tasks: append([]string(nil), m.tasks[id]...)})
	}
	return out
}

func (m *Manager) pingLocked() []int64 {
	out := make([]int64, 0, len(m.ping))
	for id := range m.ping {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// persistedLocked projects the session onto its durable record.
func (m *Manager) persistedLocked() model.PersistedState {
	state := model.DefaultState()
	if m.phase != model.PhaseActive {
		return state
	}
	state.Active = true
	ch := m.channelID
	state.ChannelID = &ch
	for _, id := range m.order {
		state.Tasks[model.UserKey(id)] = append([]string(nil), m.tasks[id]...)
	}
	state.PingOptIn = m.pingLocked()
	return state
}

// persistLocked writes the durable record. Failures are logged and swallowed:
// the in-memory session stays authoritative.
func (m *Manager) persistLocked(ctx context.Context) {
	if err := m.store.Save(ctx, m.persistedLocked()); err != nil {
		logger := log.WithContext(ctx, m.logger)
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "store.save_failed").
			Uint64(log.FieldSessionGen, m.gen).
			Msg("session state not persisted")
	}
}

func (m *Manager) reject(ctx context.Context, op string, err error) error {
	metrics.IncSessionRejection(rejectionReason(err))
	logger := log.WithContext(ctx, m.logger)
	logger.Debug().
		Err(err).
		Str(log.FieldEvent, "session.rejected").
		Str("op", op).
		Msg("session command rejected")
	return err
}

func (m *Manager) span(ctx context.Context, transition string, gen uint64, channelID int64) (context.Context, trace.Span) {
	ctx, span := telemetry.Tracer("session").Start(ctx, "session."+transition)
	span.SetAttributes(telemetry.SessionAttributes(transition, gen, channelID)...)
	return ctx, span
}

func (m *Manager) sendPlain(ctx context.Context, channelID int64, text, kind string) {
	if m.notifier == nil {
		return
	}
	err := m.notifier.SendPlain(ctx, channelID, text)
	m.delivered(ctx, channelID, kind, err)
}

func (m *Manager) sendRich(ctx context.Context, channelID int64, msg ports.RichMessage, kind string) {
	if m.notifier == nil {
		return
	}
	err := m.notifier.SendRich(ctx, channelID, msg)
	m.delivered(ctx, channelID, kind, err)
}

func (m *Manager) delivered(ctx context.Context, channelID int64, kind string, err error) {
	if err == nil {
		return
	}
	trace.SpanFromContext(ctx).SetStatus(codes.Error, "notification failed")
	logger := log.WithContext(ctx, m.logger)
	evt := logger.Warn()
	if errors.Is(err, ports.ErrChannelUnavailable) {
		evt = logger.Error()
	}
	evt.Err(err).
		Str(log.FieldEvent, "session.notify_failed").
		Str("kind", kind).
		Int64(log.FieldChannelID, channelID).
		Msg("session notification dropped")
}
