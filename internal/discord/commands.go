// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"github.com/ManuGH/bodydouble/internal/domain/session/manager"
	"github.com/bwmarrin/discordgo"
)

// Slash commands and component identifiers.
const (
	CommandStartSession = "start_session"
	CommandEndSession   = "end_session"

	ButtonPingMe    = "session:ping_me"
	ButtonNewTask   = "session:new_task"
	ButtonTasksList = "session:tasks_list"
	ModalNewTask    = "session:new_task_modal"

	optionDuration = "duration"
	inputTask      = "task"
)

// Commands are registered per guild when the gateway is ready.
func Commands() []*discordgo.ApplicationCommand {
	minDuration := 1.0
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandStartSession,
			Description: "start a body doubling session",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optionDuration,
					Description: "duration of the session in minutes",
					Required:    true,
					MinValue:    &minDuration,
				},
			},
		},
		{
			Name:        CommandEndSession,
			Description: "end the running session and post its summary",
		},
	}
}

func sessionControls() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "🔔 ping me", Style: discordgo.DangerButton, CustomID: ButtonPingMe},
				discordgo.Button{Label: "📝 new task", Style: discordgo.PrimaryButton, CustomID: ButtonNewTask},
				discordgo.Button{Label: "tasks list", Style: discordgo.SecondaryButton, CustomID: ButtonTasksList},
			},
		},
	}
}

func newTaskModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: ModalNewTask,
		Title:    "add a task for this session",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    inputTask,
						Label:       "task",
						Style:       discordgo.TextInputShort,
						Placeholder: "what will you work on",
						Required:    true,
						MaxLength:   manager.MaxTaskLength,
					},
				},
			},
		},
	}
}
