// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"errors"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	"github.com/ManuGH/bodydouble/internal/domain/session/store"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/ManuGH/bodydouble/internal/metrics"
)

// Recover applies the restart policy to the persisted record: a session never
// survives a restart. A record left active is rewritten idle, and its channel,
// if known, gets RecoveryNotice once. A load failure other than corruption
// leaves the record as it is. Recover must run before any Start.
func (m *Manager) Recover(ctx context.Context) {
	logger := log.WithContext(ctx, m.logger)

	state, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		logger.Warn().Err(err).Str(log.FieldEvent, "store.load_corrupt").Msg("persisted session state unreadable, starting from defaults")
	case err != nil:
		// The record may still be active; rewriting it now would lose the notice.
		logger.Warn().Err(err).Str(log.FieldEvent, "store.load_failed").Msg("persisted session state not loaded, record left untouched")
		return
	}

	m.mu.Lock()
	if m.phase == model.PhaseActive {
		m.mu.Unlock()
		logger.Warn().Str(log.FieldEvent, "session.recover_skipped").Msg("session already running, recovery skipped")
		return
	}

	stale := !state.Active && (state.ChannelID != nil || len(state.Tasks) > 0 || len(state.PingOptIn) > 0)
	if !state.Active && !stale && err == nil {
		m.mu.Unlock()
		logger.Debug().Str(log.FieldEvent, "session.recover_clean").Msg("no session to recover")
		return
	}

	gen := m.gen
	channelID := state.Channel()
	ctx, span := m.span(ctx, TransitionRecover, gen, channelID)
	defer span.End()
	m.persistLocked(ctx)
	m.mu.Unlock()

	if !state.Active {
		logger.Info().Str(log.FieldEvent, "session.record_normalized").Msg("persisted session record rewritten to idle defaults")
		return
	}

	metrics.IncSessionTransition(TransitionRecover)
	logger.Info().
		Str(log.FieldEvent, "session.recovered").
		Int64(log.FieldChannelID, channelID).
		Int("participants", len(state.Tasks)).
		Int("pings", len(state.PingOptIn)).
		Msg("interrupted session discarded after restart")

	if channelID != 0 {
		m.sendPlain(ctx, channelID, RecoveryNotice, "recovery_notice")
	}
}
