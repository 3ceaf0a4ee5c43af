// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/domain/reminder"
	"github.com/ManuGH/bodydouble/internal/metrics"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

const (
	defaultNotifyRate    = 5.0
	defaultNotifyTimeout = 15 * time.Second

	// embedColor is Discord's blurple.
	embedColor = 0x5865F2
)

// NotifierConfig paces and bounds outbound messages.
type NotifierConfig struct {
	RatePerSec float64
	Timeout    time.Duration
}

// Notifier implements ports.Notifier on the channel message endpoint.
// Delivery is attempted once.
type Notifier struct {
	api     messageSender
	limiter *rate.Limiter
	timeout time.Duration
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier sending through api.
func NewNotifier(api messageSender, cfg NotifierConfig) *Notifier {
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = defaultNotifyRate
	}
	burst := int(perSec)
	if burst < 1 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return &Notifier{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
		timeout: timeout,
	}
}

func (n *Notifier) SendPlain(ctx context.Context, channelID int64, text string) error {
	return n.send(ctx, channelID, "plain", plainMessage(text))
}

func (n *Notifier) SendRich(ctx context.Context, channelID int64, msg ports.RichMessage) error {
	return n.send(ctx, channelID, "rich", richMessage(msg))
}

func (n *Notifier) send(ctx context.Context, channelID int64, kind string, msg *discordgo.MessageSend) (err error) {
	defer func() { metrics.IncNotification(kind, err) }()

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.limiter.Wait(ctx); err != nil {
		return &ports.DeliveryError{ChannelID: channelID, Err: fmt.Errorf("%w: %w", ports.ErrDeliveryFailed, err)}
	}
	if _, err := n.api.ChannelMessageSendComplex(formatID(channelID), msg, discordgo.WithContext(ctx)); err != nil {
		return &ports.DeliveryError{ChannelID: channelID, Err: classify(err)}
	}
	return nil
}

// classify maps REST failures onto the port's error kinds.
func classify(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) {
		if rest.Message != nil {
			switch rest.Message.Code {
			case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
				return fmt.Errorf("%w: %w", ports.ErrChannelUnavailable, err)
			}
		}
		if rest.Response != nil {
			switch rest.Response.StatusCode {
			case http.StatusForbidden, http.StatusNotFound:
				return fmt.Errorf("%w: %w", ports.ErrChannelUnavailable, err)
			}
		}
	}
	return fmt.Errorf("%w: %w", ports.ErrDeliveryFailed, err)
}

// plainMessage pings users it mentions; @everyone only when asked for.
func plainMessage(text string) *discordgo.MessageSend {
	allowed := &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
	}
	if strings.Contains(text, reminder.EveryoneMention) {
		allowed.Parse = append(allowed.Parse, discordgo.AllowedMentionTypeEveryone)
	}
	return &discordgo.MessageSend{Content: text, AllowedMentions: allowed}
}

// richMessage renders a card as an embed. Cards never ping.
func richMessage(msg ports.RichMessage) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Body,
		Color:       embedColor,
	}
	if !msg.Timestamp.IsZero() {
		embed.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	}
	if msg.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: msg.Footer}
	}
	send := &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if msg.SessionControls {
		send.Components = sessionControls()
	}
	return send
}
