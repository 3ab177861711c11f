package app

import (
	"context"

	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/domain/project"
	"workgen/ports"
)

// ArchiveService reads what sessions persisted, including sessions that
// have since expired
type ArchiveService struct {
	archive ports.SessionArchive
}

// NewArchiveService creates an archive reader
func NewArchiveService(archive ports.SessionArchive) *ArchiveService {
	return &ArchiveService{archive: archive}
}

// Projects returns archived projects in creation order
func (s *ArchiveService) Projects(ctx context.Context, id core.SessionID) ([]*project.Project, error) {
	return s.archive.ListProjects(ctx, id)
}

// Report returns archived report lines in sequence order
func (s *ArchiveService) Report(ctx context.Context, id core.SessionID) ([]insight.ReportLine, error) {
	return s.archive.ListReportLines(ctx, id)
}
