// Package web serves the contact pages over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"rolodex/internal/contacts"
	"rolodex/internal/eventbus"
	"rolodex/internal/routes"
)

const (
	DefaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Options configures a Server
type Options struct {
	Logger          *zap.Logger
	Bus             eventbus.EventBus // optional; receives ServerStartedEvent
	ShutdownTimeout time.Duration
}

// Server renders the root layout and the contact routes
type Server struct {
	root     *routes.Root
	contacts *routes.Contacts
	pages    *renderer
	logger   *zap.Logger
	bus      eventbus.EventBus
	shutdown time.Duration
	handler  http.Handler
}

// New creates a server over store
func New(store contacts.Store, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pages, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	shutdown := opts.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = DefaultShutdownTimeout
	}

	s := &Server{
		root:     routes.NewRoot(store, logger),
		contacts: routes.NewContacts(store, logger),
		pages:    pages,
		logger:   logger.Named("web"),
		bus:      opts.Bus,
		shutdown: shutdown,
	}

	mux := http.NewServeMux()
	s.register(mux)
	s.handler = s.logRequests(s.recoverPanics(mux))
	return s, nil
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleNew)
	mux.HandleFunc("GET /contacts/{id}", s.handleShow)
	mux.HandleFunc("GET /contacts/{id}/edit", s.handleEdit)
	mux.HandleFunc("POST /contacts/{id}/edit", s.handleUpdate)
	mux.HandleFunc("POST /contacts/{id}/destroy", s.handleDestroy)
	mux.HandleFunc("POST /contacts/{id}/favorite", s.handleFavorite)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFiles())))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("/", s.handleNotFound)
}

// ListenAndServe listens on addr and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return errors.New("empty listen address")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	addr := ln.Addr().String()
	s.logger.Info("server started", zap.String("addr", addr))
	if s.bus != nil {
		s.bus.Publish(eventbus.ServerStartedEvent{Addr: addr})
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped", zap.String("addr", addr))
	return nil
}
