package app

import (
	"context"
	"fmt"

	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/internal/session"
)

// ReportService exposes the session's insight report
type ReportService struct {
	sessions *session.Manager
}

// NewReportService creates a report service
func NewReportService(sessions *session.Manager) *ReportService {
	return &ReportService{sessions: sessions}
}

// Lines returns the report lines in generation order
func (s *ReportService) Lines(ctx context.Context, id core.SessionID) ([]insight.ReportLine, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var lines []insight.ReportLine
	sess.View(func(st *session.State) {
		lines = st.Report.Lines()
	})
	return lines, nil
}

// Export renders the report as a downloadable file. An empty report exports
// an empty body.
func (s *ReportService) Export(ctx context.Context, id core.SessionID, format insight.Format) (*insight.ExportFile, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var (
		file insight.ExportFile
		ok   bool
	)
	sess.View(func(st *session.State) {
		file, ok = st.Report.Export(format)
	})
	if !ok {
		return nil, core.NewInvalidInputError("report format", fmt.Sprintf("%q is not one of txt, doc", format))
	}
	return &file, nil
}
