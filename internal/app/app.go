// Package app wires configuration, the sheets client, the data store and
// the HTTP servers into one runnable unit.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foxzi/sheetboard/internal/analyze"
	"github.com/foxzi/sheetboard/internal/api"
	"github.com/foxzi/sheetboard/internal/auth"
	"github.com/foxzi/sheetboard/internal/config"
	"github.com/foxzi/sheetboard/internal/feed"
	"github.com/foxzi/sheetboard/internal/metrics"
	"github.com/foxzi/sheetboard/internal/sheets"
	"github.com/foxzi/sheetboard/internal/store"
)

// App is the main application
type App struct {
	config        *config.Config
	sessions      *auth.SessionStore
	apiServer     *api.Server
	metricsServer *metrics.Server
	logger        *slog.Logger
}

// New creates a new application
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)

	m := metrics.New()
	metrics.SetGlobal(m)

	// Sheets access is optional: without credentials every feed degrades
	// to its fallback payload instead of refusing to start.
	var rowSource feed.RowSource
	var analyzer *analyze.Analyzer
	client, err := sheets.NewClient(&cfg.Sheets)
	switch {
	case err == nil:
		rowSource = client
		analyzer = analyze.New(client, logger.With("component", "analyzer"))
	case errors.Is(err, sheets.ErrNotConfigured):
		logger.Warn("no google sheets credentials configured, serving fallback data")
		rowSource = unconfiguredSource{}
	default:
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	feeds := feed.New(rowSource, &cfg.Sheets, logger.With("component", "feeds"))
	st := store.New(feeds, cfg.Cache.TTL, logger.With("component", "store"))

	sessions, err := auth.NewSessionStore(cfg.Auth.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	authSvc, err := auth.NewService(sessions, cfg.Auth.SessionTTL, logger.With("component", "auth"))
	if err != nil {
		sessions.Close()
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	apiServer := api.NewServer(feeds, st, authSvc, analyzer, &cfg.Server, logger.With("component", "api"))

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(m, cfg.Metrics.ListenAddr, cfg.Metrics.Path, logger.With("component", "metrics"))
	}

	return &App{
		config:        cfg,
		sessions:      sessions,
		apiServer:     apiServer,
		metricsServer: metricsServer,
		logger:        logger,
	}, nil
}

// unconfiguredSource fails every fetch so endpoints degrade uniformly
type unconfiguredSource struct{}

func (unconfiguredSource) Rows(ctx context.Context, sheetName string) ([]sheets.Record, error) {
	return nil, sheets.ErrNotConfigured
}

// Run starts all servers and blocks until a signal or a fatal error
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting sheetboard",
		"api_addr", a.config.Server.ListenAddr,
		"spreadsheet_configured", a.config.Sheets.Configured(),
		"cache_ttl", a.config.Cache.TTL,
	)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 2)

	go func() {
		if err := a.apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.logger.Error("server error", "error", err)
		cancel()
	}

	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down all components
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := a.apiServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("api server shutdown error", "error", err)
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("metrics server shutdown error", "error", err)
		}
	}

	if err := a.sessions.Close(); err != nil {
		a.logger.Error("session store close error", "error", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}

// setupLogger creates a logger based on configuration
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
