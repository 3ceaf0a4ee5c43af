// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
)

type sentMessage struct {
	channelID string
	msg       *discordgo.MessageSend
}

// fakeAPI records REST calls.
type fakeAPI struct {
	mu sync.Mutex

	sent    []sentMessage
	sendErr error

	users   map[string]*discordgo.User
	userErr error

	events    []*discordgo.GuildScheduledEvent
	eventsErr error
	channels  map[string]*discordgo.Channel

	responses []*discordgo.InteractionResponse
	respErr   error
	edits     []string
}

func (f *fakeAPI) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, msg: data})
	return &discordgo.Message{ChannelID: channelID, Content: data.Content}, nil
}

func (f *fakeAPI) User(userID string, _ ...discordgo.RequestOption) (*discordgo.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.users[userID], nil
}

func (f *fakeAPI) GuildScheduledEvents(_ string, _ bool, _ ...discordgo.RequestOption) ([]*discordgo.GuildScheduledEvent, error) {
	return f.events, f.eventsErr
}

func (f *fakeAPI) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel}}
	}
	return ch, nil
}

func (f *fakeAPI) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.respErr != nil {
		return f.respErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeAPI) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, *edit.Content)
	return &discordgo.Message{}, nil
}

// fakeSessions records calls and returns canned errors.
type fakeSessions struct {
	startErr, addErr, pingErr, endErr, listErr error
	listing                                    string

	started  []int
	startCh  []int64
	added    []string
	addedBy  []int64
	pinged   []int64
	endCalls int
}

func (f *fakeSessions) Start(_ context.Context, minutes int, channelID int64) error {
	f.started = append(f.started, minutes)
	f.startCh = append(f.startCh, channelID)
	return f.startErr
}

func (f *fakeSessions) AddTask(_ context.Context, userID int64, text string) error {
	f.addedBy = append(f.addedBy, userID)
	f.added = append(f.added, text)
	return f.addErr
}

func (f *fakeSessions) OptInPing(_ context.Context, userID int64) error {
	f.pinged = append(f.pinged, userID)
	return f.pingErr
}

func (f *fakeSessions) End(context.Context) error {
	f.endCalls++
	return f.endErr
}

func (f *fakeSessions) TasksSnapshot(context.Context) (string, error) {
	return f.listing, f.listErr
}
