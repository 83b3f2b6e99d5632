package api

import (
	"context"
	"net/http"
	"time"

	"jobpilot.local/internal/logger"
)

const debugTimeout = 8 * time.Second

func (s *Server) handleDebugNotion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), debugTimeout)
	defer cancel()

	if err := s.notion.Ping(ctx); err != nil {
		s.log.Warn("Notion ping failed", logger.Error(err))
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
	})
}

func (s *Server) handleDebugSearchDatabases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), debugTimeout)
	defer cancel()

	dbs, err := s.notion.SearchDatabases(ctx)
	if err != nil {
		s.log.Warn("Notion search failed", logger.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	type liteDB struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	out := struct {
		Count int      `json:"count"`
		DBs   []liteDB `json:"dbs"`
	}{DBs: []liteDB{}}

	for _, db := range dbs {
		title := ""
		if len(db.Title) > 0 {
			title = db.Title[0].PlainText
		}
		out.DBs = append(out.DBs, liteDB{
			ID:    db.ID,
			Title: title,
		})
	}
	out.Count = len(out.DBs)

	writeJSON(w, http.StatusOK, out)
}
