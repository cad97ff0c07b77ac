// Package serve exposes the query generation pipeline over HTTP. Handlers
// are thin glue over the Generator and the query library; all business logic
// lives in the packages they call.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/zero-day-ai/huntgen"
	"github.com/zero-day-ai/huntgen/library"
)

// Config holds serve configuration.
type Config struct {
	// Port is the TCP port on which the HTTP server listens.
	// Default: 8090
	Port int

	// GracefulTimeout is the maximum duration to wait for active requests
	// to complete during graceful shutdown.
	// Default: 30 seconds
	GracefulTimeout time.Duration

	// ReadTimeout bounds reading the request, including the body.
	// Default: 30 seconds
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response. Generation calls wait on
	// the model, so this defaults generously.
	// Default: 2 minutes
	WriteTimeout time.Duration

	// Logger is used for request and lifecycle logging.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns default serve configuration, suitable for local
// development and testing.
func DefaultConfig() *Config {
	return &Config{
		Port:            8090,
		GracefulTimeout: 30 * time.Second,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    2 * time.Minute,
	}
}

// Server wraps an HTTP server with lifecycle management: startup, signal
// handling, and graceful shutdown.
type Server struct {
	httpServer *http.Server
	config     *Config
	logger     *slog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a Server routing requests to the given generator. The
// store is optional; without one the library endpoints return 503.
func NewServer(gen *huntgen.Generator, store library.Store, cfg *Config) (*Server, error) {
	if gen == nil {
		return nil, errors.New("serve: generator is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Port == 0 {
		cfg.Port = 8090
	}
	if cfg.GracefulTimeout == 0 {
		cfg.GracefulTimeout = 30 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 2 * time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{gen: gen, store: store, logger: logger}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      api.routes(),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// Start begins listening and blocks until the context is cancelled, a
// SIGINT/SIGTERM arrives, or the server fails. Shutdown is graceful within
// the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("serve: listen on %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("http server listening", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-sigCh:
		s.logger.Info("shutting down on signal", "signal", sig.String())
	case <-ctx.Done():
		s.logger.Info("shutting down on context cancellation")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.GracefulTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: graceful shutdown: %w", err)
	}
	return nil
}

// Addr returns the bound address once Start has been called, and the
// configured address before that.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}
