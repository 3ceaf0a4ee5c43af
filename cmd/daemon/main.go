// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ManuGH/bodydouble/internal/api/ops"
	"github.com/ManuGH/bodydouble/internal/clock"
	"github.com/ManuGH/bodydouble/internal/config"
	"github.com/ManuGH/bodydouble/internal/daemon"
	"github.com/ManuGH/bodydouble/internal/discord"
	"github.com/ManuGH/bodydouble/internal/domain/reminder"
	"github.com/ManuGH/bodydouble/internal/domain/session/manager"
	"github.com/ManuGH/bodydouble/internal/domain/session/store"
	xglog "github.com/ManuGH/bodydouble/internal/log"
	"github.com/ManuGH/bodydouble/internal/telemetry"
)

var (
	version   = "v0.1.0"
	commit    = "none"
	buildDate = "unknown"
)

const serviceName = "bodydouble"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:]))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:]))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before the environment is read")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Safe defaults until config is loaded
	xglog.Configure(xglog.Config{
		Level:   "info",
		Service: serviceName,
		Version: version,
	})
	logger := xglog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(strings.TrimSpace(*configPath), *envFile, version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "config.load_failed").
			Str("config_path", loader.ConfigPath()).
			Msg("failed to load configuration")
	}
	if err := config.Validate(cfg); err != nil {
		evt := logger.Fatal().Err(err).Str(xglog.FieldEvent, "config.invalid")
		var ve config.ValidationError
		if errors.As(err, &ve) {
			evt = evt.Strs("fields", ve.Fields())
		}
		evt.Msg("configuration is invalid")
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: serviceName,
		Version: cfg.Version,
	})

	source := "env+defaults"
	if loader.ConfigPath() != "" {
		source = "file"
	}
	logger.Info().
		Str(xglog.FieldEvent, "config.loaded").
		Str("source", source).
		Str("path", loader.ConfigPath()).
		Str("store_backend", cfg.Store.Backend).
		Msg("loaded configuration")

	if err := run(ctx, cfg, config.NewHolder(cfg, loader)); err != nil {
		logger.Fatal().Err(err).Str(xglog.FieldEvent, "daemon.failed").Msg("daemon stopped with error")
	}
	logger.Info().Str(xglog.FieldEvent, "daemon.stopped").Msg("shutdown complete")
}

// run builds the component graph and blocks until ctx ends.
func run(ctx context.Context, cfg config.AppConfig, holder *config.Holder) error {
	logger := xglog.WithComponent("daemon")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldEvent, "telemetry.shutdown_failed").Msg("tracer shutdown failed")
		}
	}()

	st, err := store.Open(ctx, store.Options{
		Backend:    cfg.Store.Backend,
		FilePath:   cfg.Store.FilePath,
		SqlitePath: cfg.Store.SqlitePath,
		BadgerDir:  cfg.Store.BadgerDir,
		RedisAddr:  cfg.Store.RedisAddr,
		RedisKey:   cfg.Store.RedisKey,
	})
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldEvent, "store.close_failed").Msg("session store close failed")
		}
	}()

	clk := clock.Real{}
	client, err := discord.New(discord.Config{
		Token:   cfg.Token,
		GuildID: cfg.GuildID,
		Greeter: discord.GreeterConfig{
			GeneralChannelID:       cfg.Channels.General,
			ModsChannelID:          cfg.Channels.Mods,
			ServerGuideChannelID:   cfg.Channels.ServerGuide,
			IntroductionsChannelID: cfg.Channels.Introductions,
			VCGeneralID:            cfg.VCGeneralID,
			WelcomeQuestionsURL:    cfg.WelcomeQuestionsURL,
		},
		Notify: discord.NotifierConfig{
			RatePerSec: cfg.Notify.RatePerSec,
			Timeout:    cfg.Notify.Timeout,
		},
	}, clk)
	if err != nil {
		return err
	}

	reminders := reminder.NewScheduler(clk, client.Notifier(), reminder.Config{
		ChannelID:   cfg.Channels.General,
		SendTimeout: cfg.Notify.Timeout,
	})
	defer reminders.Close()

	sessions := manager.New(manager.Deps{
		Clock:       clk,
		Store:       st,
		Notifier:    client.Notifier(),
		Users:       client.Users(),
		SendTimeout: cfg.Notify.Timeout,
	})
	defer sessions.Close()

	boot, err := daemon.NewBootstrapper(sessions, client.EventSource(), reminders)
	if err != nil {
		return err
	}
	router, err := daemon.NewEventRouter(reminders)
	if err != nil {
		return err
	}
	client.Attach(discord.Handlers{Sessions: sessions, Events: router, Bootstrap: boot})

	var opsRunner daemon.Runner
	if cfg.Ops.Listen != "" {
		opsRunner = ops.New(ops.Config{Listen: cfg.Ops.Listen, Version: cfg.Version}, ops.Deps{
			Ready:     boot,
			Sessions:  sessions,
			Reminders: reminders,
		})
	}

	return daemon.NewApp(client, opsRunner, holder).Run(ctx)
}
