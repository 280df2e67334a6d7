package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sheets  SheetsConfig  `yaml:"sheets"`
	Cache   CacheConfig   `yaml:"cache"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Mailgun MailgunConfig `yaml:"mailgun"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	ListenAddr   string        `yaml:"listen_addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// SheetsConfig contains Google Sheets access settings.
// Either an API key or a service account (client_email + private key)
// must be configured. Environment variables override file values so the
// service can run from environment variables alone.
type SheetsConfig struct {
	SpreadsheetID  string `yaml:"spreadsheet_id"`
	APIKey         string `yaml:"api_key"`
	ClientEmail    string `yaml:"client_email"`
	PrivateKey     string `yaml:"private_key"`
	PrivateKeyFile string `yaml:"private_key_file"`

	// Per-sheet tab name overrides
	WebsitesSheet  string `yaml:"websites_sheet"`
	CampaignsSheet string `yaml:"campaigns_sheet"`
	KeywordsSheet  string `yaml:"keywords_sheet"`
	EmailsSheet    string `yaml:"emails_sheet"`
	AnalyticsSheet string `yaml:"analytics_sheet"`
	DashboardSheet string `yaml:"dashboard_sheet"`
}

// CacheConfig contains data store cache settings
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"` // debounce window for feed refetches
}

// AuthConfig contains demo session settings
type AuthConfig struct {
	SessionTTL time.Duration `yaml:"session_ttl"`
	StorePath  string        `yaml:"store_path"` // bbolt file holding sessions
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// MetricsConfig contains Prometheus metrics settings
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"` // Default: :9090
	Path       string `yaml:"path"`        // Default: /metrics
}

// MailgunConfig contains settings for the test-mail command
type MailgunConfig struct {
	Domain string `yaml:"domain"`
	APIKey string `yaml:"api_key"`
	From   string `yaml:"from"`
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration built only from defaults and environment
// variables, for running without a config file.
func Default() (*Config, error) {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides sheet settings from the environment. These are the
// variable names used in hosted deployments.
func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_SHEETS_API_KEY"); v != "" {
		c.Sheets.APIKey = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_EMAIL"); v != "" {
		c.Sheets.ClientEmail = v
	}
	if v := os.Getenv("GOOGLE_PRIVATE_KEY"); v != "" {
		c.Sheets.PrivateKey = v
	}
	if v := os.Getenv("WEBSITES_SHEET_NAME"); v != "" {
		c.Sheets.WebsitesSheet = v
	}
	if v := os.Getenv("CAMPAIGNS_SHEET_NAME"); v != "" {
		c.Sheets.CampaignsSheet = v
	}
	if v := os.Getenv("KEYWORDS_SHEET_NAME"); v != "" {
		c.Sheets.KeywordsSheet = v
	}
}

// setDefaults sets default values for configuration
func (c *Config) setDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}

	if c.Sheets.WebsitesSheet == "" {
		c.Sheets.WebsitesSheet = "Websites"
	}
	if c.Sheets.CampaignsSheet == "" {
		c.Sheets.CampaignsSheet = "Campaigns"
	}
	if c.Sheets.KeywordsSheet == "" {
		c.Sheets.KeywordsSheet = "Keywords"
	}
	if c.Sheets.EmailsSheet == "" {
		c.Sheets.EmailsSheet = "Emails"
	}
	if c.Sheets.AnalyticsSheet == "" {
		c.Sheets.AnalyticsSheet = "Analytics"
	}
	if c.Sheets.DashboardSheet == "" {
		c.Sheets.DashboardSheet = "Dashboard"
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Second
	}

	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.StorePath == "" {
		c.Auth.StorePath = "/var/lib/sheetboard/sessions.db"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Metrics.ListenAddr == "" {
		c.Metrics.ListenAddr = ":9090"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks configuration correctness
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	if c.Sheets.Configured() {
		if !c.Sheets.HasAPIKey() && !c.Sheets.HasServiceAccount() {
			return fmt.Errorf("sheets: spreadsheet_id set but no credentials configured (api_key or client_email + private_key)")
		}
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache: ttl must not be negative")
	}

	return nil
}

// Configured reports whether a backing spreadsheet is configured at all.
// Without one, every feed serves fallback data.
func (s *SheetsConfig) Configured() bool {
	return s.SpreadsheetID != ""
}

// HasAPIKey reports whether API-key authentication is configured
func (s *SheetsConfig) HasAPIKey() bool {
	return s.APIKey != ""
}

// HasServiceAccount reports whether service-account authentication is configured
func (s *SheetsConfig) HasServiceAccount() bool {
	return s.ClientEmail != "" && (s.PrivateKey != "" || s.PrivateKeyFile != "")
}

// LoadPrivateKey returns the service account private key PEM. Keys passed
// through the environment arrive with literal \n sequences; those are
// unescaped here.
func (s *SheetsConfig) LoadPrivateKey() ([]byte, error) {
	if s.PrivateKey != "" {
		return []byte(strings.ReplaceAll(s.PrivateKey, `\n`, "\n")), nil
	}
	if s.PrivateKeyFile != "" {
		data, err := os.ReadFile(s.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key file: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no private key configured")
}
