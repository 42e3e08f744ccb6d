// Package server exposes the rendering pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness probe
//	GET  /tree.svg?mode=       the configured tree as interactive SVG
//	GET  /tree.json?mode=      the configured tree as positioned JSON
//	POST /render?format=&mode= render the Newick text in the request body
//	GET  /metrics              Prometheus metrics, when enabled
//
// Errors are returned as JSON objects {"code": ..., "message": ...} with the
// status code derived from the error code.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/treeoflife/pkg/cache"
	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/observability/prom"
	"github.com/matzehuels/treeoflife/pkg/pipeline"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// Config holds server configuration.
type Config struct {
	Addr           string
	AllowedOrigins []string      // CORS origins; empty allows any
	Timeout        time.Duration // per-request timeout; 0 disables it
	Logger         *log.Logger
	Metrics        *prom.Metrics // nil disables /metrics
}

// Server serves one preloaded tree plus ad-hoc renders.
type Server struct {
	cfg        Config
	runner     *pipeline.Runner
	defaults   pipeline.Options
	router     chi.Router
	httpServer *http.Server

	mu       sync.RWMutex
	layout   *radial.Layout
	textHash string
}

// New creates a server. defaults supplies width, label margin, domain,
// legend and mode for every request; per-request query parameters override
// the mode.
func New(cfg Config, runner *pipeline.Runner, defaults pipeline.Options) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if defaults.Logger == nil {
		defaults.Logger = cfg.Logger
	}
	s := &Server{
		cfg:      cfg,
		runner:   runner,
		defaults: defaults,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.cfg.Logger))
	r.Use(middleware.Recoverer)
	if s.cfg.Timeout > 0 {
		r.Use(middleware.Timeout(s.cfg.Timeout))
	}
	if s.cfg.Metrics != nil {
		r.Use(s.cfg.Metrics.Middleware)
	}

	// CORS
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{headerRenderID, headerCache},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/tree.svg", s.handleTree(pipeline.FormatSVG))
	r.Get("/tree.json", s.handleTree(pipeline.FormatJSON))
	r.Post("/render", s.handleRender)
	if s.cfg.Metrics != nil {
		r.Handle("/metrics", s.cfg.Metrics.Handler())
	}

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Load reads, parses and lays out the tree served at /tree.svg and
// /tree.json. It may be called again to replace the tree.
func (s *Server) Load(ctx context.Context, src string) error {
	opts := s.defaults
	opts.Source = src
	text, err := s.runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	l, err := s.runner.Layout(ctx, text, opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.layout = l
	s.textHash = cache.Hash(text)
	s.mu.Unlock()

	s.cfg.Logger.Info("loaded tree", "source", src, "nodes", len(l.Nodes), "leaves", len(l.Leaves()))
	return nil
}

func (s *Server) current() (*radial.Layout, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.layout == nil {
		return nil, "", errors.New(errors.ErrCodeNotFound, "no tree configured; start the server with a source")
	}
	return s.layout, s.textHash, nil
}

// Start begins listening on the configured address. It blocks until the
// server is shut down and then returns http.ErrServerClosed.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.cfg.Logger.Info("treeoflife server listening", "addr", s.cfg.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger logs one line per request with the structured logger.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
