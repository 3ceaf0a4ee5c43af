// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"

	"github.com/ManuGH/bodydouble/internal/validate"
)

// PlaceholderToken is the token value shipped in example environment files.
const PlaceholderToken = "token_here"

var storeBackends = []string{"file", "sqlite", "badger", "redis", "memory"}

// Validate checks cfg and returns a ValidationError listing every problem.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty(EnvToken, cfg.Token)
	if cfg.Token != "" {
		v.Custom(EnvToken, cfg.Token, func(val interface{}) error {
			if val.(string) == PlaceholderToken {
				return errors.New("placeholder token, set the real bot token")
			}
			return nil
		})
	}

	v.PositiveID(EnvGuildID, cfg.GuildID)
	v.PositiveID(EnvGeneralChannelID, cfg.Channels.General)
	v.PositiveID(EnvModsChannelID, cfg.Channels.Mods)
	v.PositiveID(EnvRulesChannelID, cfg.Channels.Rules)
	v.PositiveID(EnvServerGuideID, cfg.Channels.ServerGuide)
	v.PositiveID(EnvIntroductionsID, cfg.Channels.Introductions)
	v.PositiveID(EnvVCGeneralID, cfg.VCGeneralID)

	if cfg.WelcomeQuestionsURL != "" {
		v.URL(EnvWelcomeQuestionsURL, cfg.WelcomeQuestionsURL, []string{"http", "https"})
	}

	if _, err := validate.ParseLogLevel(cfg.LogLevel); err != nil {
		v.AddError(EnvLogLevel, err.Error(), cfg.LogLevel)
	}

	v.OneOf(EnvStoreBackend, cfg.Store.Backend, storeBackends)
	switch cfg.Store.Backend {
	case "file":
		v.NotEmpty(EnvSessionStatePath, cfg.Store.FilePath)
	case "sqlite":
		v.NotEmpty(EnvStoreSqlitePath, cfg.Store.SqlitePath)
	case "redis":
		v.NotEmpty(EnvStoreRedisAddr, cfg.Store.RedisAddr)
	}

	if cfg.Ops.Listen != "" {
		v.ListenAddr(EnvOpsListen, cfg.Ops.Listen)
	}

	v.FloatRange(EnvNotifyRate, cfg.Notify.RatePerSec, 0.1, 50)
	if cfg.Notify.Timeout <= 0 {
		v.AddError(EnvNotifyTimeout, "timeout must be positive", cfg.Notify.Timeout.String())
	}

	if cfg.Tracing.Enabled {
		v.OneOf(EnvTracingExporter, cfg.Tracing.Exporter, []string{"grpc", "http"})
		v.NotEmpty(EnvTracingEndpoint, cfg.Tracing.Endpoint)
		v.FloatRange(EnvTracingSampleRate, cfg.Tracing.SampleRate, 0, 1)
	}

	return v.Err()
}
