package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/foxzi/sheetboard/internal/analyze"
	"github.com/foxzi/sheetboard/internal/auth"
	"github.com/foxzi/sheetboard/internal/mapper"
	"github.com/foxzi/sheetboard/internal/store"
)

// DataResponse is the envelope for every data feed endpoint. Success
// responses carry only data; degraded responses keep HTTP 200, flip
// success to false and attach the fallback payload plus error details.
type DataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is the response for the auth endpoints
type SessionResponse struct {
	Success bool       `json:"success"`
	User    *auth.User `json:"user,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// AnalyzeResponse is the success response for GET /api/analyze-sheet
type AnalyzeResponse struct {
	Success  bool              `json:"success"`
	Analysis *analyze.Analysis `json:"analysis"`
	Markdown string            `json:"markdown"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	LastFetch string `json:"last_fetch,omitempty"`
}

// ErrorResponse is a generic error response
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	sessionCookie = "sheetboard_session"

	feedError = "Failed to fetch from Google Sheets."
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: Version,
		Uptime:  time.Since(s.startTime).String(),
	}
	if last := s.store.LastFetch(); !last.IsZero() {
		resp.LastFetch = last.UTC().Format(time.RFC3339)
	}
	s.sendJSON(w, http.StatusOK, resp)
}

// handleWebsites handles GET /api/websites
func (s *Server) handleWebsites(w http.ResponseWriter, r *http.Request) {
	data, err := s.feeds.Websites(r.Context())
	if err != nil {
		s.sendDegraded(w, r, []mapper.WebsiteData{}, feedError, err)
		return
	}
	s.sendData(w, data)
}

// handleWebsitesDetail handles GET /api/websites-detail
func (s *Server) handleWebsitesDetail(w http.ResponseWriter, r *http.Request) {
	data, err := s.feeds.WebsitesDetail(r.Context())
	if err != nil {
		s.sendDegraded(w, r, []mapper.WebsiteDetailData{}, feedError, err)
		return
	}
	s.sendData(w, data)
}

// handleCampaigns handles GET /api/campaigns. On failure it serves the
// demo campaign set so the dashboard stays populated.
func (s *Server) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	data, err := s.feeds.Campaigns(r.Context())
	if err != nil {
		s.sendDegraded(w, r, fallbackCampaigns(), feedError+" Using fallback data.", err)
		return
	}
	s.sendData(w, data)
}

// handleEmails handles GET /api/emails
func (s *Server) handleEmails(w http.ResponseWriter, r *http.Request) {
	data, err := s.feeds.Emails(r.Context())
	if err != nil {
		s.sendDegraded(w, r, fallbackEmails(), feedError+" Using fallback data.", err)
		return
	}
	s.sendData(w, data)
}

// handleKeywords handles GET /api/keywords
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	data, err := s.feeds.Keywords(r.Context())
	if err != nil {
		s.sendDegraded(w, r, []mapper.KeywordData{}, feedError, err)
		return
	}
	s.sendData(w, data)
}

// handleAnalytics handles GET /api/analytics
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	data, err := s.feeds.Analytics(r.Context())
	if err != nil {
		s.sendDegraded(w, r, []mapper.AnalyticsData{}, feedError, err)
		return
	}
	s.sendData(w, data)
}

// handleMetricsSheet handles GET /api/metrics-sheet
func (s *Server) handleMetricsSheet(w http.ResponseWriter, r *http.Request) {
	data, err := s.feeds.DashboardMetrics(r.Context())
	if err != nil {
		s.sendDegraded(w, r, []mapper.DashboardMetric{}, feedError, err)
		return
	}
	s.sendData(w, data)
}

// handleAnalyzeSheet handles GET /api/analyze-sheet. Unlike the data
// feeds this endpoint returns HTTP 500 on failure: it is a diagnostic
// surface and a degraded report would hide the problem it exists to find.
func (s *Server) handleAnalyzeSheet(w http.ResponseWriter, r *http.Request) {
	setNoCache(w)
	if s.analyzer == nil {
		s.sendJSON(w, http.StatusInternalServerError, DataResponse{
			Success: false,
			Error:   "Failed to analyze sheet structure",
			Message: "google sheets access not configured",
		})
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context())
	if err != nil {
		s.logger.Error("sheet analysis failed", "error", err)
		s.sendJSON(w, http.StatusInternalServerError, DataResponse{
			Success: false,
			Error:   "Failed to analyze sheet structure",
			Message: err.Error(),
		})
		return
	}

	s.sendJSON(w, http.StatusOK, AnalyzeResponse{
		Success:  true,
		Analysis: analysis,
		Markdown: analyze.MarkdownReport(analysis),
	})
}

// handleDashboard handles GET /api/dashboard. It runs a debounced fetch
// cycle (or a forced one with ?refresh=1) and returns the aggregated
// snapshot, optionally filtered by search and status query parameters.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		s.store.Refresh(r.Context())
	} else {
		s.store.FetchAll(r.Context())
	}

	snap := s.store.Snapshot()

	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	if search != "" || status != "" {
		snap.Websites = store.FilterWebsites(snap.Websites, search, status)
	}

	setNoCache(w)
	s.sendJSON(w, http.StatusOK, DataResponse{Success: snap.Error == "", Data: snap, Error: snap.Error})
}

// handleLogin handles POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.sendError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.sendJSON(w, http.StatusUnauthorized, SessionResponse{
				Success: false,
				Error:   "Invalid username or password",
			})
			return
		}
		s.logger.Error("login failed", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.sendJSON(w, http.StatusOK, SessionResponse{Success: true, User: &session.User})
}

// handleLogout handles POST /auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if err := s.auth.Logout(c.Value); err != nil {
			s.logger.Error("logout failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleSession handles GET /auth/session
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession(r)
	if session == nil {
		s.sendJSON(w, http.StatusUnauthorized, SessionResponse{
			Success: false,
			Error:   "Not authenticated",
		})
		return
	}
	s.sendJSON(w, http.StatusOK, SessionResponse{Success: true, User: &session.User})
}

// currentSession resolves the session cookie, returning nil when the
// request has no valid session.
func (s *Server) currentSession(r *http.Request) *auth.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	session, err := s.auth.Session(c.Value)
	if err != nil {
		return nil
	}
	return session
}

// sendData sends a successful feed envelope with caching disabled
func (s *Server) sendData(w http.ResponseWriter, data any) {
	setNoCache(w)
	s.sendJSON(w, http.StatusOK, DataResponse{Success: true, Data: data})
}

// sendDegraded sends a failed feed envelope. The status stays 200 so
// dashboard clients can render the fallback payload instead of erroring.
func (s *Server) sendDegraded(w http.ResponseWriter, r *http.Request, fallback any, errMsg string, cause error) {
	s.logger.Error("feed fetch failed",
		"path", r.URL.Path,
		"error", cause,
	)
	setNoCache(w)
	s.sendJSON(w, http.StatusOK, DataResponse{
		Success: false,
		Data:    fallback,
		Error:   errMsg,
		Message: cause.Error(),
	})
}

// setNoCache disables intermediary and browser caching so every poll
// reflects the live spreadsheet
func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// sendJSON sends a JSON response
func (s *Server) sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, ErrorResponse{Error: message})
}
