package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foxzi/sheetboard/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.MailgunConfig{
		Domain: "mg.example.com",
		APIKey: "key-test",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = srv.URL
	return client
}

func TestSend(t *testing.T) {
	var gotPath, gotAuth string
	var gotForm map[string][]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, _ := r.BasicAuth()
		gotAuth = user + ":" + pass
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"message":"Queued. Thank you."}`))
	})

	err := client.Send(context.Background(), &Message{
		From:    "Dashboard <postmaster@mg.example.com>",
		To:      "recipient@example.com",
		Subject: "Test Email",
		Text:    "This is a test email!",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/mg.example.com/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "api:key-test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if got := gotForm["to"]; len(got) != 1 || got[0] != "recipient@example.com" {
		t.Errorf("to = %v", got)
	}
	if got := gotForm["subject"]; len(got) != 1 || got[0] != "Test Email" {
		t.Errorf("subject = %v", got)
	}
}

func TestSendAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid private key"}`))
	})

	err := client.Send(context.Background(), &Message{
		From: "a@mg.example.com",
		To:   "b@example.com",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want status code mentioned", err)
	}
}

func TestSendValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	if err := client.Send(context.Background(), &Message{To: "b@example.com"}); err == nil {
		t.Error("expected error for missing from")
	}
	if err := client.Send(context.Background(), &Message{From: "a@mg.example.com"}); err == nil {
		t.Error("expected error for missing to")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(&config.MailgunConfig{Domain: "mg.example.com"}); err == nil {
		t.Error("expected error for missing api key")
	}
	if _, err := NewClient(&config.MailgunConfig{APIKey: "key"}); err == nil {
		t.Error("expected error for missing domain")
	}
}
