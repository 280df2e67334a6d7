package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/foxzi/sheetboard/internal/config"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4"
	readonlyScope  = "https://www.googleapis.com/auth/spreadsheets.readonly"

	// dataRange is the cell window fetched per sheet
	dataRange = "A1:Z1000"
)

// ErrNotConfigured indicates that no spreadsheet ID or credentials are
// configured. This is fatal at this layer; fallback behavior belongs to
// the caller.
var ErrNotConfigured = errors.New("google sheets access not configured")

// Client is a read-only Google Sheets v4 API client
type Client struct {
	baseURL       string
	spreadsheetID string
	apiKey        string
	tokens        oauth2.TokenSource
	httpClient    *http.Client
}

// NewClient creates a sheets client from configuration. Service account
// credentials take precedence over a bare API key.
func NewClient(cfg *config.SheetsConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	c := &Client{
		baseURL:       defaultBaseURL,
		spreadsheetID: cfg.SpreadsheetID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	switch {
	case cfg.HasServiceAccount():
		key, err := cfg.LoadPrivateKey()
		if err != nil {
			return nil, fmt.Errorf("load service account key: %w", err)
		}
		jwtCfg := &jwt.Config{
			Email:      cfg.ClientEmail,
			PrivateKey: key,
			Scopes:     []string{readonlyScope},
			TokenURL:   google.JWTTokenURL,
		}
		c.tokens = jwtCfg.TokenSource(context.Background())
	case cfg.HasAPIKey():
		c.apiKey = cfg.APIKey
	default:
		return nil, ErrNotConfigured
	}

	return c, nil
}

// SpreadsheetID returns the configured spreadsheet ID
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

// Rows fetches a sheet and converts it into normalized records. The first
// row is treated as the header row. An empty sheet yields an empty slice.
func (c *Client) Rows(ctx context.Context, sheetName string) ([]Record, error) {
	values, err := c.Values(ctx, sheetName+"!"+dataRange)
	if err != nil {
		return nil, err
	}
	return Records(values), nil
}

// Values fetches raw cell values for an A1-notation range
func (c *Client) Values(ctx context.Context, a1Range string) ([][]string, error) {
	var resp valuesResponse
	path := fmt.Sprintf("/spreadsheets/%s/values/%s", c.spreadsheetID, url.PathEscape(a1Range))
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch range %s: %w", a1Range, err)
	}
	return resp.Values, nil
}

// SpreadsheetInfo describes the spreadsheet and its sheet tabs
type SpreadsheetInfo struct {
	Title  string
	Sheets []SheetProperties
}

// SheetProperties describes one sheet tab's grid
type SheetProperties struct {
	Title       string
	RowCount    int
	ColumnCount int
}

// Metadata fetches the spreadsheet title and per-sheet grid properties
func (c *Client) Metadata(ctx context.Context) (*SpreadsheetInfo, error) {
	var resp spreadsheetResponse
	path := "/spreadsheets/" + c.spreadsheetID
	query := url.Values{"fields": {"properties.title,sheets.properties"}}
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}

	info := &SpreadsheetInfo{Title: resp.Properties.Title}
	for _, s := range resp.Sheets {
		info.Sheets = append(info.Sheets, SheetProperties{
			Title:       s.Properties.Title,
			RowCount:    s.Properties.GridProperties.RowCount,
			ColumnCount: s.Properties.GridProperties.ColumnCount,
		})
	}
	return info, nil
}

// get performs an authenticated GET against the Sheets API
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" && c.tokens == nil {
		query.Set("key", c.apiKey)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("obtain access token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp apiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Message == "" {
			return fmt.Errorf("sheets API: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("sheets API: %s (HTTP %d)", errResp.Error.Message, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

type valuesResponse struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

type spreadsheetResponse struct {
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
	Sheets []struct {
		Properties struct {
			Title          string `json:"title"`
			GridProperties struct {
				RowCount    int `json:"rowCount"`
				ColumnCount int `json:"columnCount"`
			} `json:"gridProperties"`
		} `json:"properties"`
	} `json:"sheets"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
