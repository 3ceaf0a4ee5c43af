// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"fmt"

	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// EventSource lists the guild's scheduled events.
type EventSource struct {
	api     eventLister
	guildID string
	clock   clock.Clock
	logger  zerolog.Logger
}

var _ ports.EventSource = (*EventSource)(nil)

func newEventSource(api eventLister, guildID int64, c clock.Clock) *EventSource {
	if c == nil {
		c = clock.Real{}
	}
	return &EventSource{api: api, guildID: formatID(guildID), clock: c, logger: log.WithComponent("events")}
}

// FetchFutureEvents returns the events that start after now.
func (s *EventSource) FetchFutureEvents(ctx context.Context) ([]ports.ScheduledEvent, error) {
	evs, err := s.api.GuildScheduledEvents(s.guildID, false, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch scheduled events of guild %s: %w", s.guildID, err)
	}
	now := s.clock.Now()
	out := make([]ports.ScheduledEvent, 0, len(evs))
	for _, raw := range evs {
		ev, err := s.convert(ctx, raw)
		if err != nil {
			s.logger.Warn().Err(err).Str(log.FieldEvent, "events.malformed").Str(log.FieldEventID, raw.ID).Msg("skipping scheduled event")
			continue
		}
		if !ev.HasStart() || !ev.Start.After(now) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *EventSource) convert(ctx context.Context, raw *discordgo.GuildScheduledEvent) (ports.ScheduledEvent, error) {
	id, err := parseID(raw.ID)
	if err != nil || id == 0 {
		return ports.ScheduledEvent{}, fmt.Errorf("invalid event id %q", raw.ID)
	}
	return ports.ScheduledEvent{
		ID:          id,
		Name:        raw.Name,
		Start:       raw.ScheduledStartTime,
		Location:    s.location(ctx, raw),
		Description: raw.Description,
	}, nil
}

// location is the external place, "channel <name>" for stage and voice
// events, or "" when neither resolves.
func (s *EventSource) location(ctx context.Context, raw *discordgo.GuildScheduledEvent) string {
	if raw.EntityType == discordgo.GuildScheduledEventEntityTypeExternal {
		if raw.EntityMetadata.Location != "" {
			return raw.EntityMetadata.Location
		}
		return "external"
	}
	if raw.ChannelID == "" {
		return ""
	}
	ch, err := s.api.Channel(raw.ChannelID, discordgo.WithContext(ctx))
	if err != nil || ch == nil || ch.Name == "" {
		s.logger.Debug().Err(err).Str(log.FieldEvent, "events.channel_unresolved").Str(log.FieldChannelID, raw.ChannelID).Msg("event channel not resolved")
		return ""
	}
	return "channel " + ch.Name
}
