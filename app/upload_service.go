package app

import (
	"context"
	"io"

	"workgen/domain/core"
	"workgen/domain/table"
	"workgen/internal"
	"workgen/internal/profiling"
	"workgen/internal/session"
	"workgen/ports"
)

// DefaultPreviewRows matches the number of rows shown under the upload box
const DefaultPreviewRows = 5

// UploadService loads spreadsheets into sessions
type UploadService struct {
	sessions    *session.Manager
	reader      ports.TableReader
	previewRows int
	logger      *internal.Logger
}

// NewUploadService creates an upload service
func NewUploadService(sessions *session.Manager, reader ports.TableReader, previewRows int) *UploadService {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	return &UploadService{
		sessions:    sessions,
		reader:      reader,
		previewRows: previewRows,
		logger:      internal.DefaultLogger.Named("Upload"),
	}
}

// Upload parses the file and replaces the session's table. Charts already
// generated, projects and the report are kept.
func (s *UploadService) Upload(ctx context.Context, id core.SessionID, filename string, src io.Reader) (*profiling.Preview, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	t, err := s.reader.Read(ctx, filename, src)
	if err != nil {
		return nil, err
	}

	if err := sess.Update(func(st *session.State) error {
		st.Table = t
		st.EDARun = false
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("session %s loaded %s: %d rows, %d columns", id, filename, t.NumRows(), t.NumColumns())
	preview := profiling.NewPreview(t, s.previewRows)
	return &preview, nil
}

// Preview describes the session's current table
func (s *UploadService) Preview(ctx context.Context, id core.SessionID) (*profiling.Preview, error) {
	t, err := currentTable(s.sessions, id)
	if err != nil {
		return nil, err
	}
	preview := profiling.NewPreview(t, s.previewRows)
	return &preview, nil
}

// currentTable returns the session's table or ErrNoData. Tables are never
// mutated after upload so the snapshot can be read without the session lock.
func currentTable(sessions *session.Manager, id core.SessionID) (*table.Table, error) {
	sess, err := sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var t *table.Table
	sess.View(func(st *session.State) {
		t = st.Table
	})
	if t == nil {
		return nil, core.ErrNoData
	}
	return t, nil
}
