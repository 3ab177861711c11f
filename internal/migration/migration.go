package migration

import (
	"context"

	"workgen/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the session archive schema. Statements use types
// understood by both PostgreSQL and SQLite.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order. Running it
// again is a no-op.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createMigrationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create schema_migrations table")
	}

	applied, err := r.applied(ctx, db)
	if err != nil {
		return errors.Wrap(err, "failed to read applied migrations")
	}
	if applied {
		return nil
	}

	steps := []struct {
		name string
		fn   func(context.Context, *sqlx.DB) error
	}{
		{"archived_sessions table", r.createSessionsTable},
		{"archived_projects table", r.createProjectsTable},
		{"archived_report_lines table", r.createReportLinesTable},
		{"indexes", r.createIndexes},
	}
	for _, step := range steps {
		if err := step.fn(ctx, db); err != nil {
			return errors.Wrapf(err, "failed to create %s", step.name)
		}
	}

	_, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO schema_migrations (version) VALUES (?)`), r.version)
	if err != nil {
		return errors.Wrap(err, "failed to record migration")
	}
	return nil
}

func (r *MigrationRunner) createMigrationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (r *MigrationRunner) applied(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	err := db.GetContext(ctx, &count, db.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`), r.version)
	return count > 0, err
}

func (r *MigrationRunner) createSessionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS archived_sessions (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createProjectsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS archived_projects (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES archived_sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			members TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (session_id, name)
		)
	`)
	return err
}

func (r *MigrationRunner) createReportLinesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS archived_report_lines (
			session_id TEXT NOT NULL REFERENCES archived_sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			chart_key TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_archived_projects_session ON archived_projects(session_id, seq)",
		"CREATE INDEX IF NOT EXISTS idx_archived_sessions_created_at ON archived_sessions(created_at)",
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
