package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"jobpilot.local/internal/config"
	"jobpilot.local/internal/logger"
	"jobpilot.local/internal/metrics"
	"jobpilot.local/internal/notion"
	"jobpilot.local/internal/tracker"
)

type Server struct {
	tracker *tracker.Service
	notion  *notion.Client // nil when Notion is not configured
	metrics *metrics.Metrics
	log     logger.Logger
	mux     *http.ServeMux
}

func New(svc *tracker.Service, n *notion.Client, m *metrics.Metrics, log logger.Logger) *Server {
	s := &Server{
		tracker: svc,
		notion:  n,
		metrics: m,
		log:     log,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	s.mux.HandleFunc("POST /api/jobs", s.handleCreateJob)
	s.mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	s.mux.HandleFunc("PUT /api/jobs/{id}", s.handleUpdateJob)
	s.mux.HandleFunc("DELETE /api/jobs/{id}", s.handleDeleteJob)

	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/analytics/trends", s.handleTrends)
	s.mux.HandleFunc("GET /api/ai/suggestions", s.handleSuggestions)

	s.mux.Handle("GET /metrics", s.metrics.Handler())

	if s.notion != nil {
		s.mux.HandleFunc("GET /debug/notion", s.handleDebugNotion)
		s.mux.HandleFunc("GET /debug/notion/search", s.handleDebugSearchDatabases)
	}
}

// Handler returns the mux wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.recoverPanics(s.withRequestID(s.instrument(s.mux)))
}

// Run serves on cfg's address until ctx is cancelled, then drains
// in-flight requests for up to cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP listening", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server", logger.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "JobPilot API",
		"version": "2.0",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "Job Tracker API is running",
	})
}
