package ports

import (
	"context"
	"time"

	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/domain/project"
)

// SessionArchive persists what a session produced so it survives restarts
// and can be audited. Writes happen before the in-memory commit; a failed
// write aborts the operation.
type SessionArchive interface {
	// SaveSession records a newly created session
	SaveSession(ctx context.Context, id core.SessionID, createdAt time.Time) error

	// SaveProject records a created project
	SaveProject(ctx context.Context, id core.SessionID, p *project.Project) error

	// SaveReportLine records a generated insight line
	SaveReportLine(ctx context.Context, id core.SessionID, line insight.ReportLine) error

	// ListProjects returns archived projects in creation order
	ListProjects(ctx context.Context, id core.SessionID) ([]*project.Project, error)

	// ListReportLines returns archived report lines in sequence order
	ListReportLines(ctx context.Context, id core.SessionID) ([]insight.ReportLine, error)

	// DeleteSession removes everything archived for a session
	DeleteSession(ctx context.Context, id core.SessionID) error
}
