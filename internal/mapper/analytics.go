package mapper

import "github.com/foxzi/sheetboard/internal/sheets"

// AnalyticsData is one day of email delivery statistics
type AnalyticsData struct {
	ID           int    `json:"id"`
	Date         string `json:"date"`
	Requests     int    `json:"requests"`
	Delivered    int    `json:"delivered"`
	Bounces      int    `json:"bounces"`
	Opens        int    `json:"opens"`
	UniqueOpens  int    `json:"uniqueOpens"`
	Clicks       int    `json:"clicks"`
	UniqueClicks int    `json:"uniqueClicks"`
	SpamReports  int    `json:"spamReports"`
	Unsubscribes int    `json:"unsubscribes"`
	Blocks       int    `json:"blocks"`
}

// Analytics maps raw records to delivery statistics. Rows without a date
// are excluded; surviving rows are renumbered.
func Analytics(records []sheets.Record) []AnalyticsData {
	out := make([]AnalyticsData, 0, len(records))
	for _, r := range records {
		date := r.Get("date")
		if date == "" {
			continue
		}

		out = append(out, AnalyticsData{
			ID:           len(out) + 1,
			Date:         date,
			Requests:     pickInt(r, "requests"),
			Delivered:    pickInt(r, "delivered"),
			Bounces:      pickInt(r, "bounces"),
			Opens:        pickInt(r, "opens"),
			UniqueOpens:  pickInt(r, "unique_opens"),
			Clicks:       pickInt(r, "clicks"),
			UniqueClicks: pickInt(r, "unique_clicks"),
			SpamReports:  pickInt(r, "spam_reports"),
			Unsubscribes: pickInt(r, "unsubscribes"),
			Blocks:       pickInt(r, "blocks"),
		})
	}
	return out
}

// DashboardMetric is one precomputed metric row from the Dashboard sheet
type DashboardMetric struct {
	Metric      string `json:"metric"`
	Value       string `json:"value"`
	LastUpdated string `json:"lastUpdated"`
}

// DashboardMetrics maps raw records to dashboard metrics. Rows missing
// either metric or value are excluded.
func DashboardMetrics(records []sheets.Record) []DashboardMetric {
	out := make([]DashboardMetric, 0, len(records))
	for _, r := range records {
		if r.Get("metric") == "" || r.Get("value") == "" {
			continue
		}
		out = append(out, DashboardMetric{
			Metric:      r.Get("metric"),
			Value:       field{keys: []string{"value"}, fallback: "0"}.pick(r),
			LastUpdated: r.Get("last_updated"),
		})
	}
	return out
}
