package container

import (
	"context"
	"fmt"
	"log"

	"churnboard/adapters/excel"
	"churnboard/adapters/sqlsource"
	"churnboard/internal/config"
	"churnboard/internal/dashboard"
	"churnboard/internal/metrics"
	"churnboard/internal/migration"
	"churnboard/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB      *sqlx.DB
	Metrics *metrics.Registry

	// Data access
	Source ports.TableSource

	// Presentation
	Dashboard *dashboard.Service
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
	}
	if cfg.Server.MetricsEnabled {
		c.Metrics = metrics.NewRegistry()
	}
	return c, nil
}

// Init opens the configured source and builds the dashboard service over it
func (c *Container) Init(ctx context.Context) error {
	switch c.Config.Data.Source {
	case config.SourceSQL:
		db, err := c.OpenDB(ctx)
		if err != nil {
			return err
		}
		src, err := sqlsource.NewSource(db, c.Config.Database.Table)
		if err != nil {
			return err
		}
		c.Source = src
	default:
		c.Source = excel.NewDataReader(excel.ExcelConfig{
			FilePath: c.Config.Data.File,
			Sheet:    c.Config.Data.ExcelSheet,
		})
	}

	c.Dashboard = dashboard.NewService(c.Source, c.Metrics, dashboard.Options{
		PreviewRows:  c.Config.Dashboard.PreviewRows,
		CacheEntries: c.Config.Dashboard.CacheEntries,
	})

	log.Printf("Container initialized with source %s", c.Source.Describe())
	return nil
}

// OpenDB connects to DATABASE_URL and makes sure the customer table exists
func (c *Container) OpenDB(ctx context.Context) (*sqlx.DB, error) {
	if c.DB != nil {
		return c.DB, nil
	}

	db, err := sqlsource.Open(c.Config.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	runner, err := migration.NewRunner(c.Config.Database.Table)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	c.DB = db
	return db, nil
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
