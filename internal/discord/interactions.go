// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManuGH/bodydouble/internal/domain/session/manager"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Ephemeral replies.
const (
	replyStarted        = "session started."
	replyEnded          = "session ended."
	replyPingOptIn      = "ok. you will be pinged when the session ends."
	replyTaskAdded      = "task added: "
	replyAlreadyActive  = "a session is already running."
	replyNoSession      = "no active session."
	replyNoSessionHint  = "no active session. use start_session."
	replyInvalidMinutes = "duration must be at least 1 minute."
	replyEmptyTask      = "task cannot be empty."
	replyGuildOnly      = "this command only works in a server channel."
	replyFailed         = "something went wrong."
)

// SessionController is the session surface the commands drive.
type SessionController interface {
	Start(ctx context.Context, durationMinutes int, channelID int64) error
	AddTask(ctx context.Context, userID int64, text string) error
	OptInPing(ctx context.Context, userID int64) error
	End(ctx context.Context) error
	TasksSnapshot(ctx context.Context) (string, error)
}

var _ SessionController = (*manager.Manager)(nil)

// Interactions serves slash commands, session buttons and the task modal.
// Every answer is ephemeral; public output goes through the Notifier.
type Interactions struct {
	sessions SessionController
	api      responder
	logger   zerolog.Logger
}

func newInteractions(sessions SessionController, api responder) *Interactions {
	return &Interactions{sessions: sessions, api: api, logger: log.WithComponent("interactions")}
}

// Handle dispatches one interaction.
func (h *Interactions) Handle(ctx context.Context, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.command(ctx, i)
	case discordgo.InteractionMessageComponent:
		h.component(ctx, i)
	case discordgo.InteractionModalSubmit:
		h.modal(ctx, i)
	}
}

func (h *Interactions) command(ctx context.Context, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case CommandStartSession:
		channelID, err := parseID(i.ChannelID)
		if err != nil || channelID == 0 || i.GuildID == "" {
			h.reply(ctx, i, replyGuildOnly)
			return
		}
		minutes := durationOption(data.Options)
		// Start posts the session card before returning, which can outlast
		// the interaction's answer window.
		if !h.deferReply(ctx, i) {
			return
		}
		h.edit(ctx, i, replyFor(h.sessions.Start(ctx, minutes, channelID), replyStarted, replyNoSession))
	case CommandEndSession:
		if !h.deferReply(ctx, i) {
			return
		}
		h.edit(ctx, i, replyFor(h.sessions.End(ctx), replyEnded, replyNoSession))
	default:
		h.logger.Debug().Str(log.FieldEvent, "interactions.unknown_command").Str("command", data.Name).Msg("unknown command")
	}
}

func (h *Interactions) component(ctx context.Context, i *discordgo.Interaction) {
	data := i.MessageComponentData()
	switch data.CustomID {
	case ButtonPingMe:
		userID, ok := h.user(ctx, i)
		if !ok {
			return
		}
		h.reply(ctx, i, replyFor(h.sessions.OptInPing(ctx, userID), replyPingOptIn, replyNoSession))
	case ButtonNewTask:
		h.respond(ctx, i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: newTaskModal(),
		})
	case ButtonTasksList:
		text, err := h.sessions.TasksSnapshot(ctx)
		h.reply(ctx, i, replyFor(err, text, replyNoSession))
	}
}

func (h *Interactions) modal(ctx context.Context, i *discordgo.Interaction) {
	data := i.ModalSubmitData()
	if data.CustomID != ModalNewTask {
		return
	}
	userID, ok := h.user(ctx, i)
	if !ok {
		return
	}
	text := modalValue(data, inputTask)
	err := h.sessions.AddTask(ctx, userID, text)
	h.reply(ctx, i, replyFor(err, replyTaskAdded+strings.TrimSpace(text), replyNoSessionHint))
}

// replyFor renders the outcome of a session operation.
func replyFor(err error, ok, idle string) string {
	switch {
	case err == nil:
		return ok
	case errors.Is(err, manager.ErrAlreadyActive):
		return replyAlreadyActive
	case errors.Is(err, manager.ErrNoActiveSession):
		return idle
	case errors.Is(err, manager.ErrInvalidDuration):
		return replyInvalidMinutes
	case errors.Is(err, manager.ErrEmptyTask):
		return replyEmptyTask
	case errors.Is(err, manager.ErrTaskTooLong):
		return fmt.Sprintf("task is longer than %d characters.", manager.MaxTaskLength)
	default:
		return replyFailed
	}
}

func durationOption(opts []*discordgo.ApplicationCommandInteractionDataOption) int {
	for _, o := range opts {
		if o.Name == optionDuration && o.Type == discordgo.ApplicationCommandOptionInteger {
			return int(o.IntValue())
		}
	}
	return 0
}

func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if in, ok := rc.(*discordgo.TextInput); ok && in.CustomID == customID {
				return in.Value
			}
		}
	}
	return ""
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (h *Interactions) user(ctx context.Context, i *discordgo.Interaction) (int64, bool) {
	id, err := parseID(interactionUserID(i))
	if err != nil || id == 0 {
		h.logger.Warn().Err(err).Str(log.FieldEvent, "interactions.no_user").Msg("interaction without a user")
		h.reply(ctx, i, replyFailed)
		return 0, false
	}
	return id, true
}

func (h *Interactions) reply(ctx context.Context, i *discordgo.Interaction, text string) {
	h.respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         text,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
}

func (h *Interactions) deferReply(ctx context.Context, i *discordgo.Interaction) bool {
	return h.respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

func (h *Interactions) respond(ctx context.Context, i *discordgo.Interaction, resp *discordgo.InteractionResponse) bool {
	if err := h.api.InteractionRespond(i, resp, discordgo.WithContext(ctx)); err != nil {
		logger := log.WithContext(ctx, h.logger)
		logger.Warn().Err(err).Str(log.FieldEvent, "interactions.respond_failed").Str("interaction_id", i.ID).Msg("interaction response failed")
		return false
	}
	return true
}

func (h *Interactions) edit(ctx context.Context, i *discordgo.Interaction, text string) {
	if _, err := h.api.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &text}, discordgo.WithContext(ctx)); err != nil {
		logger := log.WithContext(ctx, h.logger)
		logger.Warn().Err(err).Str(log.FieldEvent, "interactions.edit_failed").Str("interaction_id", i.ID).Msg("interaction follow-up failed")
	}
}
