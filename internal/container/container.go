package container

import (
	"context"
	"fmt"
	"log"

	"workgen/adapters/charts"
	"workgen/adapters/eda"
	"workgen/adapters/excel"
	"workgen/adapters/rng"
	"workgen/adapters/sqldb"
	"workgen/app"
	"workgen/internal/config"
	"workgen/internal/migration"
	"workgen/internal/session"
	"workgen/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure, nil when no database is configured
	DB      *sqlx.DB
	Archive ports.SessionArchive

	// Sessions
	Sessions *session.Manager
	Sweeper  *session.Sweeper

	// Services
	Upload   *app.UploadService
	Projects *app.ProjectService
	Insights *app.InsightService
	Reports  *app.ReportService
	EDA      *app.EDAService
	History  *app.ArchiveService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
	}

	return c, nil
}

// InitWithDatabase connects the session archive and migrates its schema
func (c *Container) InitWithDatabase(ctx context.Context) error {
	db, err := sqldb.Open(c.Config.Database.Driver, c.Config.Database.URL)
	if err != nil {
		return err
	}

	var migrator migration.Migrator = migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("database migration failed: %w", err)
	}

	c.DB = db
	c.Archive = sqldb.NewArchiveRepository(db)
	log.Printf("Session archive connected (%s, schema v%s)", c.Config.Database.Driver, migrator.Version())
	return nil
}

// InitServices wires sessions, adapters and services. Call InitWithDatabase
// first to enable archiving.
func (c *Container) InitServices() error {
	cfg := c.Config

	c.Sessions = session.NewManager(c.Archive)
	sweeper, err := session.NewSweeper(c.Sessions, cfg.Session.SweepSchedule, cfg.Session.IdleTimeout)
	if err != nil {
		return err
	}
	c.Sweeper = sweeper

	readerConfig := excel.DefaultConfig()
	readerConfig.SheetName = cfg.Data.ExcelSheet
	reader := excel.NewDataReader(readerConfig)

	engine := eda.NewEngine(eda.Config{
		MaxRows:       cfg.EDA.MaxRows,
		MaxCols:       cfg.EDA.MaxCols,
		MaxCategories: eda.DefaultConfig().MaxCategories,
		Workers:       cfg.EDA.Workers,
	})

	c.Upload = app.NewUploadService(c.Sessions, reader, cfg.Data.PreviewRows)
	c.Projects = app.NewProjectService(c.Sessions, rng.NewAdapter(cfg.Allocation.Seed), c.Archive)
	c.Insights = app.NewInsightService(c.Sessions, charts.NewPlotlyRenderer(), c.Archive)
	c.Reports = app.NewReportService(c.Sessions)
	c.EDA = app.NewEDAService(c.Sessions, engine)
	if c.Archive != nil {
		c.History = app.NewArchiveService(c.Archive)
	}

	log.Printf("Container initialized successfully")
	return nil
}

// Shutdown stops background work and closes the database
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Sweeper != nil {
		c.Sweeper.Stop()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
