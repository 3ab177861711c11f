package sqldb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/domain/project"

	"github.com/jmoiron/sqlx"
)

// ArchiveRepository implements ports.SessionArchive on PostgreSQL or SQLite
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository creates a session archive backed by db
func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

type projectRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Members   string    `db:"members"`
	CreatedAt time.Time `db:"created_at"`
}

// SaveSession records a newly created session
func (r *ArchiveRepository) SaveSession(ctx context.Context, id core.SessionID, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO archived_sessions (id, created_at) VALUES (?, ?)
	`), id.String(), createdAt.UTC())
	return err
}

// SaveProject records a created project after the session's existing ones
func (r *ArchiveRepository) SaveProject(ctx context.Context, id core.SessionID, p *project.Project) error {
	members, err := json.Marshal(p.Members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int
	err = tx.GetContext(ctx, &seq, tx.Rebind(`
		SELECT COALESCE(MAX(seq), 0) FROM archived_projects WHERE session_id = ?
	`), id.String())
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO archived_projects (id, session_id, seq, name, members, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), p.ID.String(), id.String(), seq+1, p.Name, string(members), p.CreatedAt.UTC())
	if err != nil {
		return err
	}
	return tx.Commit()
}

// SaveReportLine records a generated insight line
func (r *ArchiveRepository) SaveReportLine(ctx context.Context, id core.SessionID, line insight.ReportLine) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO archived_report_lines (session_id, seq, chart_key, text) VALUES (?, ?, ?, ?)
	`), id.String(), line.Seq, line.ChartKey, line.Text)
	return err
}

// ListProjects returns archived projects in creation order
func (r *ArchiveRepository) ListProjects(ctx context.Context, id core.SessionID) ([]*project.Project, error) {
	var rows []projectRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT id, name, members, created_at
		FROM archived_projects
		WHERE session_id = ?
		ORDER BY seq
	`), id.String())
	if err != nil {
		return nil, err
	}

	projects := make([]*project.Project, 0, len(rows))
	for _, row := range rows {
		var members []string
		if err := json.Unmarshal([]byte(row.Members), &members); err != nil {
			return nil, fmt.Errorf("failed to decode members of project %s: %w", row.ID, err)
		}
		projects = append(projects, &project.Project{
			ID:        core.ProjectID(row.ID),
			Name:      row.Name,
			Members:   members,
			CreatedAt: row.CreatedAt,
		})
	}
	return projects, nil
}

// ListReportLines returns archived report lines in sequence order
func (r *ArchiveRepository) ListReportLines(ctx context.Context, id core.SessionID) ([]insight.ReportLine, error) {
	lines := []insight.ReportLine{}
	err := r.db.SelectContext(ctx, &lines, r.db.Rebind(`
		SELECT seq, chart_key, text
		FROM archived_report_lines
		WHERE session_id = ?
		ORDER BY seq
	`), id.String())
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// DeleteSession removes everything archived for a session
func (r *ArchiveRepository) DeleteSession(ctx context.Context, id core.SessionID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM archived_report_lines WHERE session_id = ?`,
		`DELETE FROM archived_projects WHERE session_id = ?`,
		`DELETE FROM archived_sessions WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(stmt), id.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}
