// Package mailer sends mail through the Mailgun HTTP API. The dashboard
// itself never sends mail; this backs the mail test command used to
// verify outreach credentials.
package mailer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foxzi/sheetboard/internal/config"
)

const defaultBaseURL = "https://api.mailgun.net/v3"

// Message is one outgoing mail
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
}

// Client talks to the Mailgun messages endpoint
type Client struct {
	baseURL    string
	domain     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Mailgun client from configuration
func NewClient(cfg *config.MailgunConfig) (*Client, error) {
	if cfg.Domain == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("mailgun domain and api_key are required")
	}
	return &Client{
		baseURL:    defaultBaseURL,
		domain:     cfg.Domain,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Send submits a message. Mailgun responds 200 on acceptance; anything
// else is returned as an error with the response body attached.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if msg.From == "" || msg.To == "" {
		return fmt.Errorf("from and to are required")
	}

	form := url.Values{}
	form.Set("from", msg.From)
	form.Set("to", msg.To)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Text)

	endpoint := fmt.Sprintf("%s/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth("api", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailgun request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailgun returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
