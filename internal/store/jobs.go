package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobpilot.local/internal/domain"
)

// Timestamps are stored as RFC 3339 text in UTC so they sort and round-trip
// without relying on driver-specific time handling.
const timeLayout = time.RFC3339Nano

const applicationColumns = `id, company, position, location, status, applied_date,
	job_url, salary_range, notes, created_at, updated_at, notion_page_id`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateApplication inserts app and sets app.ID.
func (s *Store) CreateApplication(ctx context.Context, app *domain.Application) error {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO applications (company, position, location, status, applied_date,
			job_url, salary_range, notes, created_at, updated_at, notion_page_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.Company,
		app.Position,
		app.Location,
		string(app.Status),
		formatTime(app.AppliedDate),
		app.JobURL,
		app.SalaryRange,
		app.Notes,
		formatTime(app.CreatedAt),
		formatTime(app.UpdatedAt),
		app.NotionPageID,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	app.ID = id
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)

	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	return app, nil
}

// ListApplications returns applications in insertion order. A non-empty
// status restricts the result to exact, case-sensitive matches.
func (s *Store) ListApplications(ctx context.Context, status string) ([]domain.Application, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = s.DB.QueryContext(ctx,
			`SELECT `+applicationColumns+` FROM applications ORDER BY id`)
	} else {
		rows, err = s.DB.QueryContext(ctx,
			`SELECT `+applicationColumns+` FROM applications WHERE status = ? ORDER BY id`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// UpdateApplication writes every mutable column of app. applied_date and
// created_at are never rewritten.
func (s *Store) UpdateApplication(ctx context.Context, app *domain.Application) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE applications
		SET company = ?, position = ?, location = ?, status = ?, job_url = ?,
			salary_range = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		app.Company,
		app.Position,
		app.Location,
		string(app.Status),
		app.JobURL,
		app.SalaryRange,
		app.Notes,
		formatTime(app.UpdatedAt),
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("update application %d: %w", app.ID, err)
	}
	return requireAffected(res, app.ID)
}

func (s *Store) DeleteApplication(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete application %d: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for application %d: %w", id, err)
	}
	if n == 0 {
		return domain.NotFoundError(id)
	}
	return nil
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var (
		app                               domain.Application
		status                            string
		appliedDate, createdAt, updatedAt string
	)
	if err := row.Scan(
		&app.ID,
		&app.Company,
		&app.Position,
		&app.Location,
		&status,
		&appliedDate,
		&app.JobURL,
		&app.SalaryRange,
		&app.Notes,
		&createdAt,
		&updatedAt,
		&app.NotionPageID,
	); err != nil {
		return nil, err
	}
	app.Status = domain.Status(status)

	var err error
	if app.AppliedDate, err = parseTime(appliedDate); err != nil {
		return nil, fmt.Errorf("applied_date: %w", err)
	}
	if app.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if app.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return &app, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }
