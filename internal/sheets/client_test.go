package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foxzi/sheetboard/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		baseURL:       srv.URL,
		spreadsheetID: "sheet-1",
		apiKey:        "test-key",
		httpClient:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestNewClientNotConfigured(t *testing.T) {
	if _, err := NewClient(&config.SheetsConfig{}); err != ErrNotConfigured {
		t.Errorf("NewClient(empty) error = %v, want ErrNotConfigured", err)
	}

	// Spreadsheet ID alone is not enough
	cfg := &config.SheetsConfig{SpreadsheetID: "abc"}
	if _, err := NewClient(cfg); err != ErrNotConfigured {
		t.Errorf("NewClient(no credentials) error = %v, want ErrNotConfigured", err)
	}
}

func TestNewClientAPIKey(t *testing.T) {
	cfg := &config.SheetsConfig{SpreadsheetID: "abc", APIKey: "k"}
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.SpreadsheetID() != "abc" {
		t.Errorf("SpreadsheetID() = %q, want abc", c.SpreadsheetID())
	}
	if c.apiKey != "k" || c.tokens != nil {
		t.Error("expected API key auth mode")
	}
}

func TestRows(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing key query parameter, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(valuesResponse{
			Range: "Websites!A1:Z1000",
			Values: [][]string{
				{"Website URL", "Title"},
				{"https://a.example", "A"},
				{"https://b.example", "B"},
			},
		})
	})

	records, err := client.Rows(context.Background(), "Websites")
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[1].Get("title") != "B" {
		t.Errorf("title = %q, want B", records[1].Get("title"))
	}
}

func TestRowsEmptySheet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(valuesResponse{Range: "Empty!A1:Z1000"})
	})

	records, err := client.Rows(context.Background(), "Empty")
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestRowsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	})

	_, err := client.Rows(context.Background(), "Websites")
	if err == nil {
		t.Fatal("Rows() error = nil, want permission error")
	}
}

func TestMetadata(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spreadsheets/sheet-1" {
			t.Errorf("path = %q, want /spreadsheets/sheet-1", r.URL.Path)
		}
		w.Write([]byte(`{
			"properties": {"title": "Outreach Tracker"},
			"sheets": [
				{"properties": {"title": "Websites", "gridProperties": {"rowCount": 120, "columnCount": 12}}},
				{"properties": {"title": "Campaigns", "gridProperties": {"rowCount": 40, "columnCount": 8}}}
			]
		}`))
	})

	info, err := client.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if info.Title != "Outreach Tracker" {
		t.Errorf("Title = %q, want Outreach Tracker", info.Title)
	}
	if len(info.Sheets) != 2 {
		t.Fatalf("len(Sheets) = %d, want 2", len(info.Sheets))
	}
	if info.Sheets[0].RowCount != 120 {
		t.Errorf("RowCount = %d, want 120", info.Sheets[0].RowCount)
	}
}
