package api

import (
	"net/http"

	"github.com/vytor/userdirectory/internal/logger"
)

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady reports 503 while the page store is unreachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed - database: %v", err)
			http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ready"))
}
