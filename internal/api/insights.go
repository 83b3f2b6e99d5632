package api

import (
	"net/http"
	"time"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.tracker.Trends(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "trends", err)
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.tracker.Suggestions(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "suggestions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions":  suggestions,
		"generated_at": s.tracker.Now().UTC().Format(time.RFC3339),
	})
}
