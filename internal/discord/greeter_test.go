// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	general = 10
	mods    = 11
	guide   = 12
	intros  = 13
	vc      = 14
)

func newTestGreeter() (*Greeter, *fakeAPI) {
	api := &fakeAPI{}
	g := newGreeter(GreeterConfig{
		GeneralChannelID:       general,
		ModsChannelID:          mods,
		ServerGuideChannelID:   guide,
		IntroductionsChannelID: intros,
		VCGeneralID:            vc,
		WelcomeQuestionsURL:    "https://example.org/q",
	}, NewNotifier(api, NotifierConfig{RatePerSec: 100}))
	return g, api
}

func TestGreeter_MemberJoined(t *testing.T) {
	g, api := newTestGreeter()
	g.MemberJoined(context.Background(), 42)

	require.Len(t, api.sent, 1)
	assert.Equal(t, "10", api.sent[0].channelID)
	assert.Equal(t, "Welcome <@42>!\n"+
		"You can learn more about the group at <#12>\n"+
		"Please introduce yourself by answering the [questions](https://example.org/q)\n"+
		"in <#13> when you have time!", api.sent[0].msg.Content)
}

func TestGreeter_MemberLeft(t *testing.T) {
	g, api := newTestGreeter()
	g.MemberLeft(context.Background(), 42)

	require.Len(t, api.sent, 1)
	assert.Equal(t, "11", api.sent[0].channelID)
	assert.Equal(t, "<@42> has left", api.sent[0].msg.Content)
}

func TestGreeter_VoiceMoved(t *testing.T) {
	tests := []struct {
		name          string
		before, after int64
		want          string
	}{
		{"join general", 0, vc, "🔊 <@42> has joined the general VC."},
		{"leave general", vc, 0, "👋 <@42> has left the general VC."},
		{"switch away from general", vc, 99, "👋 <@42> has left the general VC."},
		{"switch into general", 99, vc, ""},
		{"other channel", 0, 99, ""},
		{"mute in general", vc, vc, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, api := newTestGreeter()
			g.VoiceMoved(context.Background(), 42, tt.before, tt.after)
			if tt.want == "" {
				assert.Empty(t, api.sent)
				return
			}
			require.Len(t, api.sent, 1)
			assert.Equal(t, "11", api.sent[0].channelID)
			assert.Equal(t, tt.want, api.sent[0].msg.Content)
		})
	}
}

func TestGreeter_DeliveryFailureSwallowed(t *testing.T) {
	g, api := newTestGreeter()
	api.sendErr = assert.AnError
	assert.NotPanics(t, func() { g.MemberLeft(context.Background(), 1) })
}
