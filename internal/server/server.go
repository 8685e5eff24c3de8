package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jfmyers9/nowplaying/internal/badge"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const shutdownTimeout = 10 * time.Second

// Config holds server configuration
type Config struct {
	Listen string

	// Username served by /now-playing and /card; empty disables them
	Username string

	Presenter Presenter
	Renderer  *badge.Renderer
	Logger    zerolog.Logger
}

// Server serves SVG badges over HTTP
type Server struct {
	cfg        Config
	httpServer *http.Server
	logger     zerolog.Logger
}

// New creates a server
func New(cfg Config) *Server {
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "server").Logger(),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", WelcomeHandler(s.cfg.Username))
	mux.HandleFunc("GET /healthz", HealthzHandler)
	mux.HandleFunc("GET "+badge.LocalPlaceholder, PlaceholderHandler)
	mux.Handle("GET /user/{username}", NewBadgeHandler(s.cfg.Presenter, s.cfg.Renderer, "", true))
	mux.HandleFunc("GET /user/{$}", missingUsernameHandler)

	if s.cfg.Username != "" {
		mux.Handle("GET /now-playing", NewBadgeHandler(s.cfg.Presenter, s.cfg.Renderer, s.cfg.Username, false))
		mux.Handle("GET /card", NewBadgeHandler(s.cfg.Presenter, s.cfg.Renderer, s.cfg.Username, true))
	}

	return withLogging(s.logger, mux)
}

// withLogging attaches a request-scoped logger and writes one access log
// line per request
func withLogging(logger zerolog.Logger, next http.Handler) http.Handler {
	h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request")
	})(next)
	h = hlog.UserAgentHandler("user_agent")(h)
	h = hlog.RemoteAddrHandler("remote_addr")(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-Id")(h)
	return hlog.NewHandler(logger)(h)
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Listening")
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
