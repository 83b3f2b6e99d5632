package tracker

import (
	"context"
	"errors"
	"sync"

	"jobpilot.local/internal/domain"
)

type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    []domain.Application
	listErr error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{} }

func (r *fakeRepo) CreateApplication(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	app.ID = r.nextID
	r.rows = append(r.rows, *app)
	return nil
}

func (r *fakeRepo) GetApplication(_ context.Context, id int64) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, domain.NotFoundError(id)
}

func (r *fakeRepo) ListApplications(_ context.Context, status string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Application, 0, len(r.rows))
	for _, a := range r.rows {
		if status == "" || string(a.Status) == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateApplication(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == app.ID {
			applied, created, page := r.rows[i].AppliedDate, r.rows[i].CreatedAt, r.rows[i].NotionPageID
			r.rows[i] = *app
			r.rows[i].AppliedDate, r.rows[i].CreatedAt, r.rows[i].NotionPageID = applied, created, page
			return nil
		}
	}
	return domain.NotFoundError(app.ID)
}

func (r *fakeRepo) DeleteApplication(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError(id)
}

func (r *fakeRepo) SaveNotionPageID(_ context.Context, id int64, pageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].NotionPageID = pageID
			return nil
		}
	}
	return domain.NotFoundError(id)
}

type fakeMirror struct {
	pageID  string
	fail    bool
	created []int64
	updated []int64
	deleted []string
}

func (m *fakeMirror) Created(_ context.Context, app domain.Application) (string, error) {
	if m.fail {
		return "", errors.New("notion unavailable")
	}
	m.created = append(m.created, app.ID)
	return m.pageID, nil
}

func (m *fakeMirror) Updated(_ context.Context, app domain.Application) error {
	if m.fail {
		return errors.New("notion unavailable")
	}
	m.updated = append(m.updated, app.ID)
	return nil
}

func (m *fakeMirror) Deleted(_ context.Context, app domain.Application) error {
	if m.fail {
		return errors.New("notion unavailable")
	}
	m.deleted = append(m.deleted, app.NotionPageID)
	return nil
}

// blockingMirror holds Updated until release is closed. Deleted returns at once.
type blockingMirror struct {
	nopMirror
	entered chan struct{}
	release chan struct{}
}

func newBlockingMirror() *blockingMirror {
	return &blockingMirror{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *blockingMirror) Updated(ctx context.Context, _ domain.Application) error {
	close(m.entered)
	select {
	case <-m.release:
	case <-ctx.Done():
	}
	return nil
}
