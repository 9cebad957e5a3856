package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ironsheep/shot-diff/internal/config"
	"github.com/ironsheep/shot-diff/internal/fetch"
)

// shutdownGrace is how long in-flight requests get to finish once the
// server is asked to stop.
const shutdownGrace = 10 * time.Second

// Server compares two remote images per request and answers with the
// rendered overlay. It owns no mutable state beyond the listener; every
// request works inside its own temporary directory.
type Server struct {
	addr    string
	cfg     *config.Config
	fetcher *fetch.Client
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithFetcher sets a custom download client, mainly for tests that need
// smaller limits. Defaults to fetch.NewClient().
func WithFetcher(fetcher *fetch.Client) Option {
	return func(s *Server) {
		s.fetcher = fetcher
	}
}

// New creates a Server around a validated configuration. The comparison
// tunables (threshold, min area, padding, highlight color) are fixed for
// the server's lifetime; only the output location varies per request.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		addr: cfg.Addr,
		cfg:  cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.fetcher == nil {
		s.fetcher = fetch.NewClient()
	}

	return s, nil
}

// Routes returns the HTTP handler with all endpoints registered:
//
//	GET /        compare two images given by the i1 and i2 query parameters
//	GET /health  liveness probe
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCompare)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe runs the HTTP server until it fails or the context is
// cancelled. On cancellation, in-flight requests get shutdownGrace to
// finish before the listener is torn down. A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
