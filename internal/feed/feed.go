// Package feed binds the sheets client to the domain mappers: one method
// per data feed, each fetching the configured sheet tab and mapping its
// rows. Feeds fail loudly; converting failures into degraded responses is
// the endpoint boundary's job.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxzi/sheetboard/internal/config"
	"github.com/foxzi/sheetboard/internal/mapper"
	"github.com/foxzi/sheetboard/internal/metrics"
	"github.com/foxzi/sheetboard/internal/sheets"
)

// RowSource is the slice of the sheets client the feeds need
type RowSource interface {
	Rows(ctx context.Context, sheetName string) ([]sheets.Record, error)
}

// Service exposes the typed data feeds
type Service struct {
	source RowSource
	cfg    *config.SheetsConfig
	logger *slog.Logger
}

// New creates a feed service
func New(source RowSource, cfg *config.SheetsConfig, logger *slog.Logger) *Service {
	return &Service{source: source, cfg: cfg, logger: logger}
}

func (s *Service) rows(ctx context.Context, sheetName string) ([]sheets.Record, error) {
	start := time.Now()
	records, err := s.source.Rows(ctx, sheetName)
	metrics.ObserveSheetFetch(sheetName, time.Since(start), err)
	if err != nil {
		s.logger.Error("sheet fetch failed", "sheet", sheetName, "error", err)
		return nil, err
	}
	s.logger.Debug("sheet fetched", "sheet", sheetName, "rows", len(records))
	return records, nil
}

// Websites returns the website summary feed
func (s *Service) Websites(ctx context.Context) ([]mapper.WebsiteData, error) {
	records, err := s.rows(ctx, s.cfg.WebsitesSheet)
	if err != nil {
		return nil, err
	}
	return mapper.Websites(records), nil
}

// WebsitesDetail returns the website contact-tracking feed
func (s *Service) WebsitesDetail(ctx context.Context) ([]mapper.WebsiteDetailData, error) {
	records, err := s.rows(ctx, s.cfg.WebsitesSheet)
	if err != nil {
		return nil, err
	}
	return mapper.WebsitesDetail(records), nil
}

// Campaigns returns the campaign performance feed
func (s *Service) Campaigns(ctx context.Context) ([]mapper.CampaignData, error) {
	records, err := s.rows(ctx, s.cfg.CampaignsSheet)
	if err != nil {
		return nil, err
	}
	return mapper.Campaigns(records), nil
}

// Emails returns the outreach email feed
func (s *Service) Emails(ctx context.Context) ([]mapper.EmailData, error) {
	records, err := s.rows(ctx, s.cfg.EmailsSheet)
	if err != nil {
		return nil, err
	}
	return mapper.Emails(records), nil
}

// Keywords returns the keyword research feed
func (s *Service) Keywords(ctx context.Context) ([]mapper.KeywordData, error) {
	records, err := s.rows(ctx, s.cfg.KeywordsSheet)
	if err != nil {
		return nil, err
	}
	return mapper.Keywords(records), nil
}

// Analytics returns the delivery statistics feed
func (s *Service) Analytics(ctx context.Context) ([]mapper.AnalyticsData, error) {
	records, err := s.rows(ctx, s.cfg.AnalyticsSheet)
	if err != nil {
		return nil, err
	}
	return mapper.Analytics(records), nil
}

// DashboardMetrics returns the precomputed metrics feed
func (s *Service) DashboardMetrics(ctx context.Context) ([]mapper.DashboardMetric, error) {
	records, err := s.rows(ctx, s.cfg.DashboardSheet)
	if err != nil {
		return nil, err
	}
	return mapper.DashboardMetrics(records), nil
}
