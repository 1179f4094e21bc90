// Package server exposes the focus dispatcher over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/focus/internal/core/focus"
)

const shutdownTimeout = 10 * time.Second

// Server serves the focus HTTP API.
type Server struct {
	httpServer *http.Server
	mu         sync.Mutex
	listener   net.Listener
	addr       string
	dispatcher *focus.Dispatcher
	log        zerolog.Logger
	errs       chan error
}

// New creates a Server that will listen on addr.
func New(addr string, dispatcher *focus.Dispatcher, logger zerolog.Logger) *Server {
	s := &Server{
		addr:       addr,
		dispatcher: dispatcher,
		log:        logger,
		errs:       make(chan error, 1),
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the routed handler with request middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("GET /update", s.handleUpdate)
	mux.HandleFunc("GET /modes", s.handleModes)

	return s.withRequestID(s.withAccessLog(mux))
}

// Start binds the listener and serves in the background. Serve failures after
// Start returns are delivered on Errors.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.log.Info().Str("addr", listener.Addr().String()).Msg("starting focus server")

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
		close(s.errs)
	}()

	return nil
}

// Errors reports a fatal serve error. It is closed once the server stops.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down focus server")
	return s.httpServer.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is cancelled or serving fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	select {
	case err := <-s.errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}
