package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalMetrics *Metrics
	globalMu      sync.RWMutex
)

// Metrics holds all Prometheus metrics for Sheetboard
type Metrics struct {
	// Sheet access
	SheetFetchTotal           *prometheus.CounterVec
	SheetFetchDurationSeconds *prometheus.HistogramVec

	// Data store
	StoreRefreshTotal   *prometheus.CounterVec
	StoreDebounceHits   prometheus.Counter
	StoreLastFetchUnix  prometheus.Gauge

	// API metrics
	APIRequestsTotal          *prometheus.CounterVec
	APIRequestDurationSeconds *prometheus.HistogramVec

	// System metrics
	UptimeSeconds prometheus.Gauge

	registry  *prometheus.Registry
	startTime time.Time
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SheetFetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheetboard_sheet_fetch_total",
				Help: "Total number of sheet fetches by sheet and result",
			},
			[]string{"sheet", "result"},
		),
		SheetFetchDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sheetboard_sheet_fetch_duration_seconds",
				Help:    "Sheet fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sheet"},
		),
		StoreRefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheetboard_store_refresh_total",
				Help: "Total number of data store refresh cycles by result",
			},
			[]string{"result"},
		),
		StoreDebounceHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sheetboard_store_debounce_hits_total",
				Help: "Refresh requests answered from the debounce window",
			},
		),
		StoreLastFetchUnix: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sheetboard_store_last_fetch_timestamp_seconds",
				Help: "Unix timestamp of the last completed fetch cycle",
			},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheetboard_api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sheetboard_api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		UptimeSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sheetboard_uptime_seconds",
				Help: "Time since service start in seconds",
			},
		),
		registry:  reg,
		startTime: time.Now(),
	}

	reg.MustRegister(
		m.SheetFetchTotal,
		m.SheetFetchDurationSeconds,
		m.StoreRefreshTotal,
		m.StoreDebounceHits,
		m.StoreLastFetchUnix,
		m.APIRequestsTotal,
		m.APIRequestDurationSeconds,
		m.UptimeSeconds,
	)

	return m
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// UpdateUptime refreshes the uptime gauge
func (m *Metrics) UpdateUptime() {
	m.UptimeSeconds.Set(time.Since(m.startTime).Seconds())
}

// SetGlobal sets the global metrics instance
func SetGlobal(m *Metrics) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMetrics = m
}

// Global returns the global metrics instance, nil when metrics are disabled
func Global() *Metrics {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}

// ObserveSheetFetch records one sheet fetch attempt
func ObserveSheetFetch(sheet string, duration time.Duration, err error) {
	m := Global()
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SheetFetchTotal.WithLabelValues(sheet, result).Inc()
	m.SheetFetchDurationSeconds.WithLabelValues(sheet).Observe(duration.Seconds())
}

// IncStoreRefresh records one completed store refresh cycle
func IncStoreRefresh(result string) {
	if m := Global(); m != nil {
		m.StoreRefreshTotal.WithLabelValues(result).Inc()
		m.StoreLastFetchUnix.SetToCurrentTime()
	}
}

// IncStoreDebounceHit records a refresh absorbed by the debounce window
func IncStoreDebounceHit() {
	if m := Global(); m != nil {
		m.StoreDebounceHits.Inc()
	}
}
