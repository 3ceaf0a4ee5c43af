// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// The adapter talks to narrow slices of *discordgo.Session so tests can fake
// the REST surface.

type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type userFetcher interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

type eventLister interface {
	GuildScheduledEvents(guildID string, userCount bool, options ...discordgo.RequestOption) ([]*discordgo.GuildScheduledEvent, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var (
	_ messageSender = (*discordgo.Session)(nil)
	_ userFetcher   = (*discordgo.Session)(nil)
	_ eventLister   = (*discordgo.Session)(nil)
	_ responder     = (*discordgo.Session)(nil)
)

// parseID converts a snowflake. The empty string maps to 0.
func parseID(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
