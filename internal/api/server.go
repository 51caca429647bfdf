package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shubh-37/social-content-engine/internal/agents"
	"github.com/shubh-37/social-content-engine/internal/models"
	"github.com/shubh-37/social-content-engine/internal/monitoring"
	"github.com/sirupsen/logrus"
)

// PostStore is the post persistence the handlers use
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetAll(ctx context.Context) ([]*models.Post, error)
	GetByStatus(ctx context.Context, status string) ([]*models.Post, error)
	GetEngaged(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateEngagement(ctx context.Context, id string, engagement int) error
	Delete(ctx context.Context, id string) error
}

type AnalyticsStore interface {
	Record(ctx context.Context, entry *models.AnalyticsEntry) error
	PlatformSummary(ctx context.Context) ([]models.PlatformSummary, error)
}

type ContentGenerator interface {
	Generate(platforms []string, tone string, topic string) ([]agents.GeneratedPost, error)
}

type HashtagSuggester interface {
	ExtractHashtags(text, platform string, count int) []string
}

type TimingAnalyzer interface {
	BestPostingTimes(samples []agents.EngagementSample, topN int) ([]agents.PostingTime, error)
}

type HealthChecker interface {
	Health(ctx context.Context) error
}

// Dependencies wires the server to the engine and storage
type Dependencies struct {
	Posts     PostStore
	Analytics AnalyticsStore
	Generator ContentGenerator
	Hashtags  HashtagSuggester
	Timing    TimingAnalyzer
	DB        HealthChecker
	Metrics   *monitoring.MetricsCollector
	Log       logrus.FieldLogger

	// Slack is mounted at /slack/events when set
	Slack http.Handler
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	deps       Dependencies
	validator  *requestValidator
	log        logrus.FieldLogger
}

// New creates a new HTTP server instance listening on port
func New(deps Dependencies, port int) *Server {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}

	s := &Server{
		router:    chi.NewRouter(),
		deps:      deps,
		validator: newRequestValidator(),
		log:       deps.Log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(20 * time.Second))

	if s.deps.Metrics != nil {
		s.router.Use(s.deps.Metrics.MetricsMiddleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	if s.deps.Metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	}
	if s.deps.Slack != nil {
		s.router.Method(http.MethodPost, "/slack/events", s.deps.Slack)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/generate-content", s.handleGenerateContent)
		r.Post("/generate", s.handleGenerate)
		r.Post("/suggest-hashtags", s.handleSuggestHashtags)
		r.Get("/best-posting-time", s.handleBestPostingTime)
		r.Get("/analytics", s.handleAnalytics)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Post("/", s.handleCreatePost)
			r.Get("/{id}", s.handleGetPost)
			r.Put("/{id}", s.handleUpdatePost)
			r.Delete("/{id}", s.handleDeletePost)
			r.Post("/{id}/engagement", s.handleRecordEngagement)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("🌐 Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance
func (s *Server) Router() *chi.Mux {
	return s.router
}
