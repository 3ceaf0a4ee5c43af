// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package ops serves the operational endpoints: liveness, readiness,
// Prometheus metrics and a JSON status snapshot.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/session/manager"
	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// ReadinessProbe reports whether boot-time reconciliation finished.
type ReadinessProbe interface {
	Ready() bool
}

// SessionView exposes the session snapshot.
type SessionView interface {
	Snapshot() manager.View
}

// ReminderCounter exposes the number of armed reminders.
type ReminderCounter interface {
	Len() int
}

// Config configures the ops server.
type Config struct {
	Listen  string
	Version string
	// RateLimit defaults to 120 requests per minute per client IP.
	RateLimit RateLimitConfig
}

// Deps are the read-only views the server reports on. Any may be nil.
type Deps struct {
	Ready     ReadinessProbe
	Sessions  SessionView
	Reminders ReminderCounter
}

// Server is the ops HTTP server.
type Server struct {
	cfg    Config
	deps   Deps
	router *chi.Mux
	logger zerolog.Logger
}

// Status is the /status document.
type Status struct {
	Version          string        `json:"version"`
	Ready            bool          `json:"ready"`
	Session          *manager.View `json:"session,omitempty"`
	RemindersPending int           `json:"reminders_pending"`
}

// New builds the router.
func New(cfg Config, deps Deps) *Server {
	if cfg.RateLimit.RequestLimit <= 0 {
		cfg.RateLimit.RequestLimit = 120
	}
	if cfg.RateLimit.WindowSize <= 0 {
		cfg.RateLimit.WindowSize = time.Minute
	}
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: log.WithComponent("ops"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traced("bodydouble-ops"))
	r.Use(middleware.RequestID)
	r.Use(s.requestLog)
	r.Use(RateLimit(cfg.RateLimit))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.router = r
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on cfg.Listen until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str(log.FieldEvent, "ops.listening").Str("addr", ln.Addr().String()).Msg("ops server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn().Err(err).Str(log.FieldEvent, "ops.shutdown_failed").Msg("ops server shutdown incomplete")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info().Str(log.FieldEvent, "ops.stopped").Msg("ops server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.deps.Ready != nil && !s.deps.Ready.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := Status{Version: s.cfg.Version, Ready: s.deps.Ready == nil || s.deps.Ready.Ready()}
	if s.deps.Sessions != nil {
		v := s.deps.Sessions.Snapshot()
		st.Session = &v
	}
	if s.deps.Reminders != nil {
		st.RemindersPending = s.deps.Reminders.Len()
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str(log.FieldEvent, "ops.request").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Dur(log.FieldDuration, time.Since(start)).
			Msg("ops request")
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
