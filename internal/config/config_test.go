package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `
server:
  listen_addr: ":8085"

sheets:
  spreadsheet_id: "1abcDEF"
  api_key: "test-key"
  websites_sheet: "Sites"

cache:
  ttl: 10s

auth:
  session_ttl: 1h
  store_path: "/tmp/sessions.db"

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
  listen_addr: ":9191"
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddr != ":8085" {
		t.Errorf("Server.ListenAddr = %v, want :8085", cfg.Server.ListenAddr)
	}
	if cfg.Sheets.SpreadsheetID != "1abcDEF" {
		t.Errorf("Sheets.SpreadsheetID = %v, want 1abcDEF", cfg.Sheets.SpreadsheetID)
	}
	if cfg.Sheets.WebsitesSheet != "Sites" {
		t.Errorf("Sheets.WebsitesSheet = %v, want Sites", cfg.Sheets.WebsitesSheet)
	}
	if cfg.Sheets.CampaignsSheet != "Campaigns" {
		t.Errorf("Sheets.CampaignsSheet = %v, want default Campaigns", cfg.Sheets.CampaignsSheet)
	}
	if cfg.Cache.TTL != 10*time.Second {
		t.Errorf("Cache.TTL = %v, want 10s", cfg.Cache.TTL)
	}
	if cfg.Auth.SessionTTL != time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 1h", cfg.Auth.SessionTTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Metrics.ListenAddr != ":9191" {
		t.Errorf("Metrics.ListenAddr = %v, want :9191", cfg.Metrics.ListenAddr)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %v, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Cache.TTL != 5*time.Second {
		t.Errorf("Cache.TTL = %v, want 5s", cfg.Cache.TTL)
	}
	if cfg.Sheets.Configured() {
		t.Error("Sheets.Configured() = true, want false")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %v/%v, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_SHEET_ID", "env-sheet-id")
	t.Setenv("GOOGLE_SHEETS_API_KEY", "env-key")
	t.Setenv("WEBSITES_SHEET_NAME", "EnvSites")

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	content := `
sheets:
  spreadsheet_id: "file-sheet-id"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sheets.SpreadsheetID != "env-sheet-id" {
		t.Errorf("SpreadsheetID = %v, want env-sheet-id", cfg.Sheets.SpreadsheetID)
	}
	if cfg.Sheets.APIKey != "env-key" {
		t.Errorf("APIKey = %v, want env-key", cfg.Sheets.APIKey)
	}
	if cfg.Sheets.WebsitesSheet != "EnvSites" {
		t.Errorf("WebsitesSheet = %v, want EnvSites", cfg.Sheets.WebsitesSheet)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.Sheets.SpreadsheetID = "abc"
	cfg.setDefaults()

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for spreadsheet without credentials")
	}
}

func TestLoadPrivateKeyUnescapesNewlines(t *testing.T) {
	s := &SheetsConfig{PrivateKey: `-----BEGIN KEY-----\nabc\n-----END KEY-----`}
	key, err := s.LoadPrivateKey()
	if err != nil {
		t.Fatalf("LoadPrivateKey() error = %v", err)
	}
	want := "-----BEGIN KEY-----\nabc\n-----END KEY-----"
	if string(key) != want {
		t.Errorf("LoadPrivateKey() = %q, want %q", key, want)
	}
}
