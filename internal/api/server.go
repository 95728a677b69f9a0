// Package api provides the HTTP API server for FounderLink.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/founderlink/founderlink/internal/analytics"
	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/feedback"
	"github.com/founderlink/founderlink/internal/logging"
	"github.com/founderlink/founderlink/internal/matching"
	"github.com/founderlink/founderlink/internal/storage"
)

// SignalIndexer maintains the vector index alongside the signal store
type SignalIndexer interface {
	IndexSignal(ctx context.Context, sig core.Signal) error
	RemoveSignal(ctx context.Context, kind core.SignalKind, id core.SignalID) error
}

// HealthChecker reports readiness of an external collaborator
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server is the HTTP API server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	log        *zap.Logger

	matcher   *matching.Service
	recorder  *feedback.Recorder
	analytics *analytics.Service

	userStore   *storage.UserStore
	signalStore *storage.SignalStore
	introStore  *storage.IntroStore

	indexer SignalIndexer
	embed   HealthChecker

	registry *prometheus.Registry
}

// Config for the server
type Config struct {
	Host string
	Port int

	Matcher   *matching.Service
	Recorder  *feedback.Recorder
	Analytics *analytics.Service

	UserStore   *storage.UserStore
	SignalStore *storage.SignalStore
	IntroStore  *storage.IntroStore

	Indexer SignalIndexer
	Embed   HealthChecker

	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// New creates a new API server
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	s := &Server{
		log:         log,
		matcher:     cfg.Matcher,
		recorder:    cfg.Recorder,
		analytics:   cfg.Analytics,
		userStore:   cfg.UserStore,
		signalStore: cfg.SignalStore,
		introStore:  cfg.IntroStore,
		indexer:     cfg.Indexer,
		embed:       cfg.Embed,
		registry:    cfg.Registry,
	}

	s.setupRouter()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the configured routes, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Matching
		r.Post("/matching/suggestions", s.handleSuggestIntroductions)
		r.Get("/matching/score", s.handleCalculateScore)

		// Introductions
		r.Post("/introductions", s.handleCreateIntroduction)
		r.Get("/introductions/{introID}", s.handleGetIntroduction)
		r.Post("/introductions/{introID}/respond", s.handleRespondIntroduction)
		r.Post("/introductions/{introID}/complete", s.handleCompleteIntroduction)
		r.Get("/introductions/{introID}/feedback", s.handleFeedbackHistory)

		// Users
		r.Put("/users/{userID}", s.handleUpsertUser)
		r.Get("/users/{userID}", s.handleGetUser)

		// Signals
		r.Post("/signals", s.handleCreateSignal)
		r.Get("/signals", s.handleListSignals)
		r.Delete("/signals/{signalID}", s.handleDeactivateSignal)

		// Analytics
		r.Get("/analytics", s.handleAnalytics)
	})

	// Operational endpoints
	r.Get("/healthz", s.handleHealth)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	s.router = r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("api server starting", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- Response helpers ---

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps sentinel errors onto HTTP statuses
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrRecordNotFound), errors.Is(err, core.ErrIntroNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrInvalidTransition):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrSelfMatch),
		errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrInvalidRating),
		errors.Is(err, core.ErrOutcomeRequired),
		errors.Is(err, core.ErrUnknownOutcome):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrSearchUnavailable):
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if s.embed != nil {
		if err := s.embed.Health(r.Context()); err != nil {
			status["status"] = "degraded"
			status["embeddings"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	s.respondJSON(w, code, status)
}
