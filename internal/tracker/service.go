// Package tracker holds the job application lifecycle rules and the
// read-only views computed over the full record set.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"jobpilot.local/internal/domain"
	"jobpilot.local/internal/logger"
)

// Repository is the persistence the service needs. *store.Store satisfies it.
type Repository interface {
	CreateApplication(ctx context.Context, app *domain.Application) error
	GetApplication(ctx context.Context, id int64) (*domain.Application, error)
	ListApplications(ctx context.Context, status string) ([]domain.Application, error)
	UpdateApplication(ctx context.Context, app *domain.Application) error
	DeleteApplication(ctx context.Context, id int64) error
	SaveNotionPageID(ctx context.Context, id int64, pageID string) error
}

type Options struct {
	// StrictStatus rejects statuses outside domain.KnownStatuses.
	StrictStatus bool
	// Mirror receives a copy of every mutation. Optional.
	Mirror Mirror
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	repo   Repository
	mirror Mirror
	log    logger.Logger
	now    func() time.Time
	strict bool

	// mu makes each store mutation atomic with respect to the others. Mirror
	// calls run after it is released.
	mu sync.Mutex
}

func NewService(repo Repository, log logger.Logger, opts Options) *Service {
	s := &Service{
		repo:   repo,
		mirror: opts.Mirror,
		log:    log,
		now:    opts.Now,
		strict: opts.StrictStatus,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.mirror == nil {
		s.mirror = nopMirror{}
	}
	return s
}

func (s *Service) Create(ctx context.Context, in domain.NewApplication) (*domain.Application, error) {
	if in.Company == "" {
		return nil, &domain.ValidationError{Field: "company", Reason: "is required"}
	}
	if in.Position == "" {
		return nil, &domain.ValidationError{Field: "position", Reason: "is required"}
	}

	status := in.Status
	if status == "" {
		status = domain.DefaultStatus
	}
	if err := s.checkStatus(status); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	app := &domain.Application{
		Company:     in.Company,
		Position:    in.Position,
		Location:    in.Location,
		Status:      status,
		AppliedDate: now,
		JobURL:      in.JobURL,
		SalaryRange: in.SalaryRange,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.AppliedDate != "" {
		d, err := time.Parse(domain.DateLayout, in.AppliedDate)
		if err != nil {
			s.log.Debug("Ignoring unparsable applied_date",
				logger.String("applied_date", in.AppliedDate),
				logger.Error(err),
			)
		} else {
			app.AppliedDate = d
		}
	}

	s.mu.Lock()
	err := s.repo.CreateApplication(ctx, app)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	s.log.Info("Application created",
		logger.Int64("application_id", app.ID),
		logger.String("company", app.Company),
		logger.String("status", string(app.Status)),
	)

	s.mirrorCreated(ctx, app)
	return app, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Application, error) {
	return s.repo.GetApplication(ctx, id)
}

// List returns all applications in insertion order, or only those whose
// status equals statusFilter exactly when it is non-empty.
func (s *Service) List(ctx context.Context, statusFilter string) ([]domain.Application, error) {
	return s.repo.ListApplications(ctx, statusFilter)
}

// Update applies the fields present in patch and always refreshes
// UpdatedAt, even when no value actually changed. A missing record is
// reported before any validation error.
func (s *Service) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	app, err := s.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if err := s.mirror.Updated(ctx, *app); err != nil {
		s.log.Warn("Mirror update failed",
			logger.Int64("application_id", app.ID),
			logger.Error(err),
		)
	}
	return app, nil
}

func (s *Service) update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Company.Set && patch.Company.Value == "" {
		return nil, &domain.ValidationError{Field: "company", Reason: "must not be empty"}
	}
	if patch.Position.Set && patch.Position.Value == "" {
		return nil, &domain.ValidationError{Field: "position", Reason: "must not be empty"}
	}
	if patch.Status.Set {
		if err := s.checkStatus(patch.Status.Value); err != nil {
			return nil, err
		}
	}

	patch.Apply(app)
	app.UpdatedAt = s.now().UTC()
	if app.UpdatedAt.Before(app.CreatedAt) {
		app.UpdatedAt = app.CreatedAt
	}

	if err := s.repo.UpdateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	s.log.Info("Application updated",
		logger.Int64("application_id", app.ID),
		logger.String("status", string(app.Status)),
	)
	return app, nil
}

// Delete removes the record, then archives its mirror copy outside the
// mutation lock.
func (s *Service) Delete(ctx context.Context, id int64) error {
	app, err := s.delete(ctx, id)
	if err != nil {
		return err
	}

	if err := s.mirror.Deleted(ctx, *app); err != nil {
		s.log.Warn("Mirror delete failed",
			logger.Int64("application_id", id),
			logger.Error(err),
		)
	}
	return nil
}

func (s *Service) delete(ctx context.Context, id int64) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteApplication(ctx, id); err != nil {
		return nil, err
	}
	s.log.Info("Application deleted", logger.Int64("application_id", id))
	return app, nil
}

// Stats recomputes the summary counts over every application.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	apps, err := s.repo.ListApplications(ctx, "")
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return ComputeStats(apps), nil
}

// Trends recomputes the monthly and per-status breakdowns.
func (s *Service) Trends(ctx context.Context) (Trends, error) {
	apps, err := s.repo.ListApplications(ctx, "")
	if err != nil {
		return Trends{}, fmt.Errorf("trends: %w", err)
	}
	return ComputeTrends(apps), nil
}

func (s *Service) Suggestions(ctx context.Context) ([]Suggestion, error) {
	apps, err := s.repo.ListApplications(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return BuildSuggestions(apps, s.now()), nil
}

// Now exposes the service clock so callers can stamp responses consistently.
func (s *Service) Now() time.Time { return s.now() }

func (s *Service) checkStatus(status domain.Status) error {
	if status.Known() {
		return nil
	}
	if s.strict {
		known := make([]string, len(domain.KnownStatuses))
		for i, k := range domain.KnownStatuses {
			known[i] = string(k)
		}
		return &domain.ValidationError{
			Field:  "status",
			Reason: "must be one of " + strings.Join(known, ", "),
		}
	}
	s.log.Warn("Storing unknown application status", logger.String("status", string(status)))
	return nil
}

func (s *Service) mirrorCreated(ctx context.Context, app *domain.Application) {
	pageID, err := s.mirror.Created(ctx, *app)
	if err != nil {
		s.log.Warn("Mirror create failed",
			logger.Int64("application_id", app.ID),
			logger.Error(err),
		)
		return
	}
	if pageID == "" {
		return
	}
	if err := s.repo.SaveNotionPageID(ctx, app.ID, pageID); err != nil {
		s.log.Warn("Saving mirror page id failed",
			logger.Int64("application_id", app.ID),
			logger.Error(err),
		)
		return
	}
	app.NotionPageID = pageID
}
