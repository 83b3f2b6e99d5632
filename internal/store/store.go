package store

import (
	"context"
	"database/sql"
)

// Store owns the application table. Open it once at startup with
// OpenSQLite + New, call Migrate, and Close it on shutdown.
type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store { return &Store{DB: db} }

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	company TEXT NOT NULL,
	position TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Applied',
	applied_date TEXT NOT NULL,
	job_url TEXT NOT NULL DEFAULT '',
	salary_range TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	notion_page_id TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);
`)
	return err
}

func (s *Store) Close() error { return s.DB.Close() }
