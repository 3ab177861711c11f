package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"workgen/adapters/excel"
	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/domain/project"
	"workgen/domain/table"
	"workgen/internal/session"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockArchive struct {
	mock.Mock
}

func (m *mockArchive) SaveSession(ctx context.Context, id core.SessionID, createdAt time.Time) error {
	return m.Called(ctx, id, createdAt).Error(0)
}

func (m *mockArchive) SaveProject(ctx context.Context, id core.SessionID, p *project.Project) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *mockArchive) SaveReportLine(ctx context.Context, id core.SessionID, line insight.ReportLine) error {
	return m.Called(ctx, id, line).Error(0)
}

func (m *mockArchive) ListProjects(ctx context.Context, id core.SessionID) ([]*project.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*project.Project), args.Error(1)
}

func (m *mockArchive) ListReportLines(ctx context.Context, id core.SessionID) ([]insight.ReportLine, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]insight.ReportLine), args.Error(1)
}

func (m *mockArchive) DeleteSession(ctx context.Context, id core.SessionID) error {
	return m.Called(ctx, id).Error(0)
}

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Analyze(ctx context.Context, t *table.Table) ([]chart.Figure, error) {
	args := m.Called(ctx, t)
	figs, _ := args.Get(0).([]chart.Figure)
	return figs, args.Error(1)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ctx context.Context, t *table.Table, req chart.Request) (*chart.Figure, error) {
	args := m.Called(ctx, t, req)
	fig, _ := args.Get(0).(*chart.Figure)
	return fig, args.Error(1)
}

// newSession creates a manager with one live session
func newSession(t *testing.T) (*session.Manager, core.SessionID) {
	t.Helper()
	m := session.NewManager(nil)
	s, err := m.Create(context.Background())
	require.NoError(t, err)
	return m, s.ID
}

// loadCSV uploads csv text into the session through the real reader
func loadCSV(t *testing.T, m *session.Manager, id core.SessionID, csv string) {
	t.Helper()
	svc := NewUploadService(m, excel.NewDataReader(excel.DefaultConfig()), 0)
	_, err := svc.Upload(context.Background(), id, "data.csv", strings.NewReader(csv))
	require.NoError(t, err)
}

const employeesCSV = `EmpID,Dept,JobSatisfaction,Score
E1,Eng,4,10
E2,Sales,2,25
E3,HR,3,25
E4,Eng,5,12
E5,Sales,,8
E6,HR,1,9
E7,Eng,3,11
`
