// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/bodydouble/internal/config"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/rs/zerolog"
)

// Runner is a long-lived subsystem that blocks until ctx ends.
type Runner interface {
	Run(ctx context.Context) error
}

// App owns the long-lived runtime lifecycle: the platform client, the ops
// server and the config watcher.
type App struct {
	logger       zerolog.Logger
	client       Runner
	ops          Runner
	cfgHolder    *config.Holder
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. ops and cfgHolder may be nil.
func NewApp(client Runner, ops Runner, cfgHolder *config.Holder) *App {
	return &App{
		logger:       log.WithComponent("daemon"),
		client:       client,
		ops:          ops,
		cfgHolder:    cfgHolder,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned subsystems and blocks until ctx is cancelled or one
// of them fails.
func (a *App) Run(ctx context.Context) error {
	if a.client == nil {
		return ErrMissingClient
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.cfgHolder != nil {
		// Config watcher is best-effort: a failure is logged, never fatal.
		g.Go(func() error {
			if err := a.cfgHolder.Watch(ctx); err != nil {
				a.logger.Warn().Err(err).Str(log.FieldEvent, "config.watcher_start_failed").Msg("failed to start config watcher")
			}
			return nil
		})
	}

	// SIGHUP trigger for manual reload.
	if a.cfgHolder != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str(log.FieldEvent, "config.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading config")

					if err := a.cfgHolder.Reload(ctx); err != nil {
						a.logger.Warn().
							Err(err).
							Str(log.FieldEvent, "config.reload_failed").
							Msg("config reload failed")
					}
				}
			}
		})
	}

	if a.ops != nil {
		g.Go(func() error {
			return a.ops.Run(ctx)
		})
	}

	g.Go(func() error {
		return a.client.Run(ctx)
	})

	return g.Wait()
}
