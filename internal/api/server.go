package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/foxzi/sheetboard/internal/analyze"
	"github.com/foxzi/sheetboard/internal/auth"
	"github.com/foxzi/sheetboard/internal/config"
	"github.com/foxzi/sheetboard/internal/feed"
	"github.com/foxzi/sheetboard/internal/metrics"
	"github.com/foxzi/sheetboard/internal/store"
)

// Version is the reported service version
const Version = "0.1.0"

// Server is the HTTP API server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	feeds      *feed.Service
	store      *store.Store
	auth       *auth.Service
	analyzer   *analyze.Analyzer
	config     *config.ServerConfig
	logger     *slog.Logger
	startTime  time.Time
}

// NewServer creates a new API server. The analyzer may be nil when no
// spreadsheet credentials are configured; the analyze endpoint then
// reports the failure instead of crashing.
func NewServer(feeds *feed.Service, st *store.Store, au *auth.Service, an *analyze.Analyzer, cfg *config.ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		feeds:     feeds,
		store:     st,
		auth:      au,
		analyzer:  an,
		config:    cfg,
		logger:    logger,
		startTime: time.Now(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.HTTPMiddleware)

	// Health check (no auth required)
	s.router.Get("/health", s.handleHealth)

	// Session auth
	s.router.Post("/auth/login", s.handleLogin)
	s.router.Post("/auth/logout", s.handleLogout)
	s.router.Get("/auth/session", s.handleSession)

	// Data feeds
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/websites", s.handleWebsites)
		r.Get("/websites-detail", s.handleWebsitesDetail)
		r.Get("/campaigns", s.handleCampaigns)
		r.Get("/emails", s.handleEmails)
		r.Get("/keywords", s.handleKeywords)
		r.Get("/analytics", s.handleAnalytics)
		r.Get("/metrics-sheet", s.handleMetricsSheet)
		r.Get("/analyze-sheet", s.handleAnalyzeSheet)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Get("/dashboard", s.handleDashboard)
		})
	})
}

// Router returns the configured HTTP handler, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting HTTP API server", "addr", s.config.ListenAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP API server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
