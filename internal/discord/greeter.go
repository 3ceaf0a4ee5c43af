// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"fmt"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/domain/session/manager"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/rs/zerolog"
)

// GreeterConfig names the channels the community messages go to.
type GreeterConfig struct {
	GeneralChannelID       int64
	ModsChannelID          int64
	ServerGuideChannelID   int64
	IntroductionsChannelID int64
	VCGeneralID            int64
	WelcomeQuestionsURL    string
}

// Greeter posts welcome and leave notices and logs presence in the general
// voice channel.
type Greeter struct {
	cfg      GreeterConfig
	notifier ports.Notifier
	logger   zerolog.Logger
}

func newGreeter(cfg GreeterConfig, n ports.Notifier) *Greeter {
	return &Greeter{cfg: cfg, notifier: n, logger: log.WithComponent("greeter")}
}

// MemberJoined welcomes userID in the general channel.
func (g *Greeter) MemberJoined(ctx context.Context, userID int64) {
	g.send(ctx, g.cfg.GeneralChannelID, welcomeText(g.cfg, userID), "greeter.welcome")
}

// MemberLeft tells the moderators that userID left.
func (g *Greeter) MemberLeft(ctx context.Context, userID int64) {
	g.send(ctx, g.cfg.ModsChannelID, manager.Mention(userID)+" has left", "greeter.leave")
}

// VoiceMoved logs joins to and departures from the general voice channel.
// 0 means no channel. Moves between other channels are ignored.
func (g *Greeter) VoiceMoved(ctx context.Context, userID, before, after int64) {
	if text := voiceText(g.cfg.VCGeneralID, userID, before, after); text != "" {
		g.send(ctx, g.cfg.ModsChannelID, text, "greeter.voice")
	}
}

func (g *Greeter) send(ctx context.Context, channelID int64, text, event string) {
	if err := g.notifier.SendPlain(ctx, channelID, text); err != nil {
		g.logger.Warn().Err(err).Str(log.FieldEvent, event+"_failed").Int64(log.FieldChannelID, channelID).Msg("community message dropped")
	}
}

func welcomeText(cfg GreeterConfig, userID int64) string {
	return fmt.Sprintf("Welcome %s!\n"+
		"You can learn more about the group at <#%d>\n"+
		"Please introduce yourself by answering the [questions](%s)\n"+
		"in <#%d> when you have time!",
		manager.Mention(userID), cfg.ServerGuideChannelID, cfg.WelcomeQuestionsURL, cfg.IntroductionsChannelID)
}

func voiceText(vc, userID, before, after int64) string {
	switch {
	case before == 0 && after == vc:
		return fmt.Sprintf("🔊 %s has joined the general VC.", manager.Mention(userID))
	case before == vc && after != vc:
		return fmt.Sprintf("👋 %s has left the general VC.", manager.Mention(userID))
	default:
		return ""
	}
}
