package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"bytes", ww.BytesWritten(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// sessionMiddleware rejects requests without a valid session cookie
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.currentSession(r) == nil {
			s.logger.Warn("unauthenticated request",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			s.sendJSON(w, http.StatusUnauthorized, SessionResponse{
				Success: false,
				Error:   "Not authenticated",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
