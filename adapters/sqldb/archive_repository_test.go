package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/domain/project"
	apperrors "workgen/internal/errors"
	"workgen/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := migration.NewRunner()
	require.NoError(t, runner.Run(context.Background(), db))
	require.NoError(t, runner.Run(context.Background(), db), "migrations are idempotent")
	return db
}

func TestArchiveRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewArchiveRepository(newTestDB(t))
	id := core.NewSessionID()
	created := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.SaveSession(ctx, id, created))

	first := project.New("Apollo", []string{"E1", "E4"})
	second := project.New("Gemini", []string{"E7"})
	require.NoError(t, repo.SaveProject(ctx, id, first))
	require.NoError(t, repo.SaveProject(ctx, id, second))

	projects, err := repo.ListProjects(ctx, id)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID)
	assert.Equal(t, "Apollo", projects[0].Name)
	assert.Equal(t, []string{"E1", "E4"}, projects[0].Members)
	assert.WithinDuration(t, first.CreatedAt, projects[0].CreatedAt, time.Second)
	assert.Equal(t, "Gemini", projects[1].Name)

	lines := []insight.ReportLine{
		{Seq: 1, ChartKey: `bar|x="Dept"|y="Score"`, Text: "first"},
		{Seq: 2, ChartKey: `pie|column="Dept"`, Text: "second"},
	}
	for _, line := range lines {
		require.NoError(t, repo.SaveReportLine(ctx, id, line))
	}
	got, err := repo.ListReportLines(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestArchiveRepository_Constraints(t *testing.T) {
	ctx := context.Background()
	repo := NewArchiveRepository(newTestDB(t))
	id := core.NewSessionID()
	require.NoError(t, repo.SaveSession(ctx, id, time.Now()))

	require.NoError(t, repo.SaveProject(ctx, id, project.New("Apollo", []string{"E1"})))
	assert.Error(t, repo.SaveProject(ctx, id, project.New("Apollo", []string{"E2"})), "project names are unique per session")

	line := insight.ReportLine{Seq: 1, ChartKey: "k", Text: "t"}
	require.NoError(t, repo.SaveReportLine(ctx, id, line))
	assert.Error(t, repo.SaveReportLine(ctx, id, line), "sequence numbers are unique per session")
}

func TestArchiveRepository_DeleteSession(t *testing.T) {
	ctx := context.Background()
	repo := NewArchiveRepository(newTestDB(t))
	keep, drop := core.NewSessionID(), core.NewSessionID()

	for _, id := range []core.SessionID{keep, drop} {
		require.NoError(t, repo.SaveSession(ctx, id, time.Now()))
		require.NoError(t, repo.SaveProject(ctx, id, project.New("p", []string{"E1"})))
		require.NoError(t, repo.SaveReportLine(ctx, id, insight.ReportLine{Seq: 1, ChartKey: "k", Text: "t"}))
	}

	require.NoError(t, repo.DeleteSession(ctx, drop))

	projects, err := repo.ListProjects(ctx, drop)
	require.NoError(t, err)
	assert.Empty(t, projects)
	lines, err := repo.ListReportLines(ctx, drop)
	require.NoError(t, err)
	assert.Empty(t, lines)

	projects, err = repo.ListProjects(ctx, keep)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}

func TestOpen_ConnectFailureIsDatabaseError(t *testing.T) {
	_, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "missing", "archive.db"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetCode(err))
}
