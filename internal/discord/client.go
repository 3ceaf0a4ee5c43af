// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const (
	handlerTimeout   = 30 * time.Second
	bootstrapTimeout = 2 * time.Minute
)

// ErrNotAttached is returned by Run when Attach was not called.
var ErrNotAttached = errors.New("discord client has no handlers attached")

// Config configures the gateway client.
type Config struct {
	Token   string
	GuildID int64
	Greeter GreeterConfig
	Notify  NotifierConfig
}

// Bootstrap runs once per gateway ready.
type Bootstrap interface {
	Run(ctx context.Context)
}

// Handlers are the domain components gateway events are routed to.
type Handlers struct {
	Sessions  SessionController
	Events    ports.EventSink
	Bootstrap Bootstrap
}

// Client owns the gateway connection.
type Client struct {
	session *discordgo.Session
	guildID int64
	logger  zerolog.Logger

	notifier *Notifier
	events   *EventSource
	users    *Directory
	greeter  *Greeter

	interactions *Interactions
	sink         ports.EventSink
	boot         Bootstrap

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// New creates a client. Nothing connects until Run.
func New(cfg Config, c clock.Clock) (*Client, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildScheduledEvents

	n := NewNotifier(s, cfg.Notify)
	return &Client{
		session:  s,
		guildID:  cfg.GuildID,
		logger:   log.WithComponent("discord"),
		notifier: n,
		events:   newEventSource(s, cfg.GuildID, c),
		users:    &Directory{api: s},
		greeter:  newGreeter(cfg.Greeter, n),
	}, nil
}

// Notifier posts to guild channels.
func (c *Client) Notifier() *Notifier { return c.notifier }

// EventSource lists the guild's scheduled events.
func (c *Client) EventSource() *EventSource { return c.events }

// Users resolves display names.
func (c *Client) Users() *Directory { return c.users }

// Attach wires the domain handlers. Call before Run.
func (c *Client) Attach(h Handlers) {
	if h.Sessions != nil {
		c.interactions = newInteractions(h.Sessions, c.session)
	}
	c.sink = h.Events
	c.boot = h.Bootstrap
}

// Run connects to the gateway and serves events until ctx ends.
func (c *Client) Run(ctx context.Context) error {
	if c.interactions == nil || c.sink == nil || c.boot == nil {
		return ErrNotAttached
	}

	removers := []func(){
		c.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
			c.track(ctx, bootstrapTimeout, func(ctx context.Context) { c.onReady(ctx, r) })
		}),
		c.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
			c.track(ctx, handlerTimeout, func(ctx context.Context) {
				c.interactions.Handle(log.ContextWithCorrelationID(ctx, i.ID), i.Interaction)
			})
		}),
		c.session.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildScheduledEventCreate) {
			c.track(ctx, handlerTimeout, func(ctx context.Context) { c.onEventCreate(ctx, e.GuildScheduledEvent) })
		}),
		c.session.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildScheduledEventUpdate) {
			c.track(ctx, handlerTimeout, func(ctx context.Context) { c.onEventUpdate(ctx, e.GuildScheduledEvent) })
		}),
		c.session.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildScheduledEventDelete) {
			c.track(ctx, handlerTimeout, func(ctx context.Context) { c.onEventDelete(ctx, e.GuildScheduledEvent) })
		}),
		c.session.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
			c.track(ctx, handlerTimeout, func(ctx context.Context) { c.onMember(ctx, m.Member, c.greeter.MemberJoined) })
		}),
		c.session.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberRemove) {
			c.track(ctx, handlerTimeout, func(ctx context.Context) { c.onMember(ctx, m.Member, c.greeter.MemberLeft) })
		}),
		c.session.AddHandler(func(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
			c.track(ctx, handlerTimeout, func(ctx context.Context) { c.onVoice(ctx, v) })
		}),
	}

	if err := c.session.Open(); err != nil {
		for _, remove := range removers {
			remove()
		}
		return fmt.Errorf("open discord gateway: %w", err)
	}
	c.logger.Info().Str(log.FieldEvent, "discord.connected").Msg("gateway connection opened")

	<-ctx.Done()

	for _, remove := range removers {
		remove()
	}
	c.mu.Lock()
	c.closing = true
	c.mu.Unlock()

	err := c.session.Close()
	c.wg.Wait()
	if err != nil {
		c.logger.Warn().Err(err).Str(log.FieldEvent, "discord.close_failed").Msg("gateway close failed")
	}
	c.logger.Info().Str(log.FieldEvent, "discord.disconnected").Msg("gateway connection closed")
	return nil
}

// track runs fn with a bounded context unless the client is shutting down.
func (c *Client) track(parent context.Context, timeout time.Duration, fn func(ctx context.Context)) {
	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	fn(ctx)
}

func (c *Client) onReady(ctx context.Context, r *discordgo.Ready) {
	c.logger.Info().Str(log.FieldEvent, "discord.ready").Str("user", r.User.Username).Msg("gateway ready")

	cmds, err := c.session.ApplicationCommandBulkOverwrite(r.User.ID, formatID(c.guildID), Commands(), discordgo.WithContext(ctx))
	if err != nil {
		c.logger.Error().Err(err).Str(log.FieldEvent, "discord.commands_sync_failed").Msg("slash commands not registered")
	} else {
		c.logger.Info().Str(log.FieldEvent, "discord.commands_synced").Int("count", len(cmds)).Msg("slash commands registered")
	}

	c.boot.Run(ctx)
}

func (c *Client) ownGuild(guildID string) bool {
	return guildID == formatID(c.guildID)
}

func (c *Client) onEventCreate(ctx context.Context, raw *discordgo.GuildScheduledEvent) {
	if raw == nil || !c.ownGuild(raw.GuildID) {
		return
	}
	ev, err := c.events.convert(ctx, raw)
	if err != nil {
		c.logger.Warn().Err(err).Str(log.FieldEvent, "events.malformed").Msg("ignoring scheduled event")
		return
	}
	c.sink.EventCreated(ctx, ev)
}

// onEventUpdate only knows the new definition; the gateway does not carry
// the previous one.
func (c *Client) onEventUpdate(ctx context.Context, raw *discordgo.GuildScheduledEvent) {
	if raw == nil || !c.ownGuild(raw.GuildID) {
		return
	}
	ev, err := c.events.convert(ctx, raw)
	if err != nil {
		c.logger.Warn().Err(err).Str(log.FieldEvent, "events.malformed").Msg("ignoring scheduled event")
		return
	}
	c.sink.EventUpdated(ctx, ports.ScheduledEvent{ID: ev.ID}, ev)
}

func (c *Client) onEventDelete(ctx context.Context, raw *discordgo.GuildScheduledEvent) {
	if raw == nil || !c.ownGuild(raw.GuildID) {
		return
	}
	id, err := parseID(raw.ID)
	if err != nil || id == 0 {
		return
	}
	c.sink.EventDeleted(ctx, id)
}

func (c *Client) onMember(ctx context.Context, m *discordgo.Member, fn func(context.Context, int64)) {
	if m == nil || m.User == nil || !c.ownGuild(m.GuildID) {
		return
	}
	id, err := parseID(m.User.ID)
	if err != nil || id == 0 {
		return
	}
	fn(ctx, id)
}

func (c *Client) onVoice(ctx context.Context, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil || !c.ownGuild(v.GuildID) {
		return
	}
	userID, err := parseID(v.UserID)
	if err != nil || userID == 0 {
		return
	}
	after, _ := parseID(v.ChannelID)
	var before int64
	if v.BeforeUpdate != nil {
		before, _ = parseID(v.BeforeUpdate.ChannelID)
	}
	c.greeter.VoiceMoved(ctx, userID, before, after)
}
