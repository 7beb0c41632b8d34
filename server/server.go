// Package server exposes the portfolio engine over HTTP. The server owns a
// single portfolio (one simulation per process) and serializes every engine
// call behind a mutex, since the engine itself is single-owner.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/sim"
)

// Config holds server configuration
type Config struct {
	Port         int
	Log          zerolog.Logger
	Portfolio    *sim.Portfolio
	Events       *eventlog.Log
	Journal      journal.Journal
	Rand         sim.Rand
	SnapshotPath string
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	mu           sync.Mutex
	portfolio    *sim.Portfolio
	events       *eventlog.Log
	jnl          journal.Journal
	rng          sim.Rand
	snapshotPath string
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		log:          cfg.Log.With().Str("component", "server").Logger(),
		portfolio:    cfg.Portfolio,
		events:       cfg.Events,
		jnl:          cfg.Journal,
		rng:          cfg.Rand,
		snapshotPath: cfg.SnapshotPath,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/portfolio", func(r chi.Router) {
		r.Get("/", s.handleGetPortfolio)
		r.Get("/stocks", s.handleGetStocks)
		r.Get("/pool", s.handleGetPool)
		r.Get("/events", s.handleGetEvents)

		r.Post("/buy", s.handleBuy)
		r.Post("/sell", s.handleSell)
		r.Post("/sell-all", s.handleSellAll)
		r.Post("/venture", s.handleVenture)
		r.Post("/progress-day", s.handleProgressDay)
		r.Post("/loan", s.handleLoan)

		r.Post("/save", s.handleSave)
		r.Post("/load", s.handleLoad)
		r.Post("/reset", s.handleReset)
	})
}

// loggingMiddleware logs each request with method, path, status and timing.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
