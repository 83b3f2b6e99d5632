package api

import (
	"net/http"

	"jobpilot.local/internal/domain"
	"jobpilot.local/internal/logger"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	apps, err := s.tracker.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.writeServiceError(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	app, err := s.tracker.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req domain.NewApplication
	if err := decodeJSON(w, r, &req); err != nil {
		s.log.Debug("JSON decode error",
			logger.String("request_id", requestIDFrom(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	app, err := s.tracker.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "create", err)
		return
	}
	s.metrics.ObserveMutation("create")
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var patch domain.ApplicationPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.log.Debug("JSON decode error",
			logger.String("request_id", requestIDFrom(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	app, err := s.tracker.Update(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, "update", err)
		return
	}
	s.metrics.ObserveMutation("update")
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.tracker.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, "delete", err)
		return
	}
	s.metrics.ObserveMutation("delete")
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Job application deleted successfully",
	})
}
