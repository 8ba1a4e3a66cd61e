// internal/httpserver/server.go
//
// HTTP server wiring for the BananaGame backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request
//     IDs, Prometheus telemetry).
//   - Public endpoints: "/", "/health", "/metrics", "/leaderboard",
//     "/auth/signup", "/auth/login", "/auth/logout".
//   - Gated endpoints (JWT required): "/auth/me", "/game/state",
//     "/game/guess", "/stats/me".
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the auth cookie
//     works from the browser client.
//   - The guess handler is the only place that mutates game state; it
//     serializes per user via the session store's round lock.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bananagame/go-server/internal/config"
	"github.com/bananagame/go-server/internal/question"
	"github.com/bananagame/go-server/internal/session"
	"github.com/bananagame/go-server/internal/store"
)

// Server bundles the router with its collaborators.
type Server struct {
	r         *chi.Mux
	cfg       *config.Config
	store     *store.Store
	sessions  *session.Store
	questions question.Source
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st *store.Store, sessions *session.Store, questions question.Source) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		cfg:       cfg,
		store:     st,
		sessions:  sessions,
		questions: questions,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(15 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFor(cfg.ClientOrigin))
	s.r.Use(telemetry)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"bananagame","endpoints":["/health","/leaderboard","/auth/*","GET /game/state","POST /game/guess"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.Handler())

	// --- auth ---
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)
	s.r.With(s.requireAuth()).Get("/auth/me", s.handleMe)

	// --- game ---
	s.r.With(s.requireAuth()).Get("/game/state", s.handleState)
	s.r.With(s.requireAuth()).Post("/game/guess", s.handleGuess)
	s.r.With(s.requireAuth()).Get("/stats/me", s.handleStats)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }
