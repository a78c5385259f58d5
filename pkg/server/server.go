// Package server exposes level generation over HTTP.
//
// # Routes
//
//	GET  /healthz   build information
//	GET  /catalog   the server's template catalog
//	POST /levels    generate a level from JSON options
//
// Every request builds its own generator, so requests never share state.
// A request is bounded by the server's timeout, reset cap and the default
// attempt limit per step, regardless of what the client asks for. A running
// step notices the timeout while it samples.
//
// # Usage
//
//	srv, err := server.New(server.Config{Addr: ":8080"}, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.ListenAndServe(ctx)
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// Default server limits.
const (
	DefaultAddr         = ":8080"
	DefaultTimeout      = 10 * time.Second
	DefaultMaxResets    = pipeline.DefaultMaxResets
	DefaultMaxBodyBytes = 1 << 20
)

// Config configures the HTTP server.
type Config struct {
	Addr string

	// CatalogPath is the TOML catalog used when a request carries no
	// templates. Empty means the builtin catalog.
	CatalogPath string

	// Timeout bounds one generation request.
	Timeout time.Duration

	// MaxResets caps rejected attempts per request.
	MaxResets int

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxResets <= 0 {
		c.MaxResets = DefaultMaxResets
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	lib    *catalog.Library
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New loads the catalog and builds the router. A nil logger discards output.
func New(cfg Config, logger *log.Logger) (*Server, error) {
	cfg.setDefaults()
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	lib, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		lib:    lib,
		runner: pipeline.NewRunner(logger),
		logger: logger,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)
	r.Post("/levels", s.handleGenerate)

	s.router = r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.cfg.Addr, "templates", s.lib.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
