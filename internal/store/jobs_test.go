package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot.local/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	st := New(db)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func sampleApplication(company string, status domain.Status) *domain.Application {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Application{
		Company:     company,
		Position:    "Platform Engineer",
		Location:    "Toronto",
		Status:      status,
		AppliedDate: time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC),
		JobURL:      "https://jobs.example/" + company,
		SalaryRange: "90k-110k",
		Notes:       "applied via site",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := sampleApplication("Acme", domain.StatusApplied)
	require.NoError(t, st.CreateApplication(ctx, app))
	assert.Equal(t, int64(1), app.ID)

	got, err := st.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, *app, *got)
}

func TestStore_GetMissing(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetApplication(context.Background(), 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_ListOrderAndFilter(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, a := range []*domain.Application{
		sampleApplication("Beta", domain.StatusInterview),
		sampleApplication("Alpha", domain.StatusApplied),
		sampleApplication("Gamma", domain.StatusInterview),
	} {
		require.NoError(t, st.CreateApplication(ctx, a))
	}

	all, err := st.ListApplications(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Beta", "Alpha", "Gamma"},
		[]string{all[0].Company, all[1].Company, all[2].Company})

	interviews, err := st.ListApplications(ctx, "Interview")
	require.NoError(t, err)
	require.Len(t, interviews, 2)
	assert.Equal(t, "Beta", interviews[0].Company)
	assert.Equal(t, "Gamma", interviews[1].Company)

	lower, err := st.ListApplications(ctx, "interview")
	require.NoError(t, err)
	assert.Empty(t, lower)

	offers, err := st.ListApplications(ctx, "Offer")
	require.NoError(t, err)
	assert.NotNil(t, offers)
	assert.Empty(t, offers)
}

func TestStore_Update(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := sampleApplication("Acme", domain.StatusApplied)
	require.NoError(t, st.CreateApplication(ctx, app))

	app.Status = domain.StatusOffer
	app.Notes = "verbal offer"
	app.UpdatedAt = app.CreatedAt.Add(time.Hour)
	app.AppliedDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC) // not persisted
	require.NoError(t, st.UpdateApplication(ctx, app))

	got, err := st.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffer, got.Status)
	assert.Equal(t, "verbal offer", got.Notes)
	assert.Equal(t, app.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC), got.AppliedDate)

	missing := sampleApplication("Ghost", domain.StatusApplied)
	missing.ID = 99
	assert.True(t, errors.Is(st.UpdateApplication(ctx, missing), domain.ErrNotFound))
}

func TestStore_DeleteTwice(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := sampleApplication("Acme", domain.StatusApplied)
	require.NoError(t, st.CreateApplication(ctx, app))

	require.NoError(t, st.DeleteApplication(ctx, app.ID))
	assert.True(t, errors.Is(st.DeleteApplication(ctx, app.ID), domain.ErrNotFound))

	_, err := st.GetApplication(ctx, app.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_IDsNeverReused(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := sampleApplication("One", domain.StatusApplied)
	require.NoError(t, st.CreateApplication(ctx, first))
	second := sampleApplication("Two", domain.StatusApplied)
	require.NoError(t, st.CreateApplication(ctx, second))
	require.NoError(t, st.DeleteApplication(ctx, second.ID))

	third := sampleApplication("Three", domain.StatusApplied)
	require.NoError(t, st.CreateApplication(ctx, third))
	assert.Greater(t, third.ID, second.ID)
}

func TestStore_SaveNotionPageID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := sampleApplication("Acme", domain.StatusApplied)
	require.NoError(t, st.CreateApplication(ctx, app))
	require.NoError(t, st.SaveNotionPageID(ctx, app.ID, "page-123"))

	got, err := st.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "page-123", got.NotionPageID)

	assert.True(t, errors.Is(st.SaveNotionPageID(ctx, 999, "x"), domain.ErrNotFound))
}

func TestStore_CreateApplication_SQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := New(db)
	app := sampleApplication("Acme", domain.StatusScreening)

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(
			"Acme",
			"Platform Engineer",
			"Toronto",
			"Screening",
			"2026-04-28T00:00:00Z",
			"https://jobs.example/Acme",
			"90k-110k",
			"applied via site",
			"2026-05-01T12:00:00Z",
			"2026-05-01T12:00:00Z",
			"",
		).
		WillReturnResult(sqlmock.NewResult(17, 1))

	require.NoError(t, st.CreateApplication(context.Background(), app))
	assert.Equal(t, int64(17), app.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListApplications_SQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := New(db)

	rows := sqlmock.NewRows([]string{
		"id", "company", "position", "location", "status", "applied_date",
		"job_url", "salary_range", "notes", "created_at", "updated_at", "notion_page_id",
	}).AddRow(
		3, "Acme", "SRE", "", "Offer", "2026-02-01T00:00:00Z",
		"", "", "", "2026-02-02T10:00:00Z", "2026-02-03T10:00:00Z", "",
	)

	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE status = \? ORDER BY id`).
		WithArgs("Offer").
		WillReturnRows(rows)

	apps, err := st.ListApplications(context.Background(), "Offer")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, int64(3), apps[0].ID)
	assert.Equal(t, domain.StatusOffer, apps[0].Status)
	assert.Equal(t, time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC), apps[0].UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListApplications_BadTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "company", "position", "location", "status", "applied_date",
		"job_url", "salary_range", "notes", "created_at", "updated_at", "notion_page_id",
	}).AddRow(1, "Acme", "SRE", "", "Applied", "yesterday", "", "", "", "", "", "")

	mock.ExpectQuery(`SELECT (.+) FROM applications ORDER BY id`).WillReturnRows(rows)

	_, err = New(db).ListApplications(context.Background(), "")
	assert.Error(t, err)
}

func TestStore_DeleteApplication_SQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM applications WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = New(db).DeleteApplication(context.Background(), 5)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
