// Package server exposes the wikigraph pipeline over HTTP.
//
// Routes:
//
//	GET /graph/{category}?format=svg|dot|html&depth=&downsize=&style=&lang=
//	GET /healthz
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the pipeline error code. Invalid input maps to 400, unknown
// categories to 404, MediaWiki failures to 502 and timeouts to 504.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wikigraph/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address of the preview server.
	DefaultAddr = "localhost:8080"

	// DefaultTimeout bounds a single graph request including the crawl.
	DefaultTimeout = 2 * time.Minute

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Runner  *pipeline.Runner
	Logger  *log.Logger
	Timeout time.Duration // Per-request timeout (0 = DefaultTimeout)
}

// Server is the preview HTTP server.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a server with all routes registered.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, cfg.Logger)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	s := &Server{cfg: cfg}
	s.setupRoutes()
	return s
}

// setupRoutes builds the router and middleware stack.
func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph/{category}", s.handleGraph)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no such route")
	})

	s.router = r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// and returns ctx.Err().
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.cfg.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
