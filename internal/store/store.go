// Package store holds the merged dashboard state: one explicitly
// constructed object owning the collections, a debounce window guarding
// refetches, and partial-failure tolerance across the four feeds.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/foxzi/sheetboard/internal/mapper"
	"github.com/foxzi/sheetboard/internal/metrics"
)

// connectivityError is the single generic error surfaced when every feed
// fails; partial outages stay invisible.
const connectivityError = "Failed to fetch data from Google Sheets"

// FeedSource provides the four feeds the dashboard snapshot merges
type FeedSource interface {
	WebsitesDetail(ctx context.Context) ([]mapper.WebsiteDetailData, error)
	Keywords(ctx context.Context) ([]mapper.KeywordData, error)
	Campaigns(ctx context.Context) ([]mapper.CampaignData, error)
	Emails(ctx context.Context) ([]mapper.EmailData, error)
}

// Store is the in-memory dashboard data store
type Store struct {
	feeds  FeedSource
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	websites  []mapper.WebsiteDetailData
	keywords  []mapper.KeywordData
	campaigns []mapper.CampaignData
	emails    []mapper.EmailData
	loading   bool
	lastFetch time.Time
	err       string
}

// New creates a store. ttl is the debounce window within which FetchAll
// reuses cached data.
func New(feeds FeedSource, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		feeds:  feeds,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// FetchAll refreshes all four collections. Calls within the debounce
// window are no-ops. The four feeds run concurrently and all state
// updates land in one step after every feed has finished, so a snapshot
// never mixes collections from a single cycle. Overlapping cycles are
// possible; the last one to finish wins.
func (s *Store) FetchAll(ctx context.Context) {
	s.mu.Lock()
	if !s.lastFetch.IsZero() && s.now().Sub(s.lastFetch) < s.ttl {
		s.mu.Unlock()
		s.logger.Debug("using cached data", "age", s.now().Sub(s.lastFetch))
		metrics.IncStoreDebounceHit()
		return
	}
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	s.logger.Info("fetching fresh data from google sheets")

	var (
		wg        sync.WaitGroup
		websites  []mapper.WebsiteDetailData
		keywords  []mapper.KeywordData
		campaigns []mapper.CampaignData
		emails    []mapper.EmailData

		websitesErr, keywordsErr, campaignsErr, emailsErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		websites, websitesErr = s.feeds.WebsitesDetail(ctx)
	}()
	go func() {
		defer wg.Done()
		keywords, keywordsErr = s.feeds.Keywords(ctx)
	}()
	go func() {
		defer wg.Done()
		campaigns, campaignsErr = s.feeds.Campaigns(ctx)
	}()
	go func() {
		defer wg.Done()
		emails, emailsErr = s.feeds.Emails(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	failures := 0
	if websitesErr == nil {
		s.websites = websites
	} else {
		failures++
	}
	if keywordsErr == nil {
		s.keywords = keywords
	} else {
		failures++
	}
	if campaignsErr == nil {
		s.campaigns = campaigns
	} else {
		failures++
	}
	if emailsErr == nil {
		s.emails = emails
	} else {
		failures++
	}

	s.lastFetch = s.now()
	s.loading = false

	switch failures {
	case 0:
		metrics.IncStoreRefresh("ok")
	case 4:
		s.err = connectivityError
		s.logger.Error("all data feeds failed")
		metrics.IncStoreRefresh("failed")
	default:
		s.logger.Warn("some data feeds failed", "failures", failures)
		metrics.IncStoreRefresh("partial")
	}
}

// Refresh bypasses the debounce window and fetches immediately
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.lastFetch = time.Time{}
	s.mu.Unlock()
	s.FetchAll(ctx)
}

// Snapshot is the merged state plus the aggregate statistics the
// dashboard cards show
type Snapshot struct {
	Websites  []mapper.WebsiteDetailData `json:"websites"`
	Keywords  []mapper.KeywordData       `json:"keywords"`
	Campaigns []mapper.CampaignData      `json:"campaigns"`
	Emails    []mapper.EmailData         `json:"emails"`
	Stats     Stats                      `json:"stats"`
	Loading   bool                       `json:"loading"`
	LastFetch *time.Time                 `json:"lastFetchTime"`
	Error     string                     `json:"error,omitempty"`
}

// Snapshot returns a copy of the current state with computed statistics
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Websites:  append([]mapper.WebsiteDetailData(nil), s.websites...),
		Keywords:  append([]mapper.KeywordData(nil), s.keywords...),
		Campaigns: append([]mapper.CampaignData(nil), s.campaigns...),
		Emails:    append([]mapper.EmailData(nil), s.emails...),
		Loading:   s.loading,
		Error:     s.err,
	}
	if !s.lastFetch.IsZero() {
		t := s.lastFetch
		snap.LastFetch = &t
	}
	snap.Stats = ComputeStats(snap.Websites, snap.Keywords, snap.Campaigns)
	return snap
}

// LastFetch returns the time of the last completed fetch cycle
func (s *Store) LastFetch() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetch
}
