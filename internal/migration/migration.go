package migration

import (
	"context"
	"fmt"
	"log"

	"churnboard/internal/config"
	"churnboard/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

var _ Migrator = (*MigrationRunner)(nil)

// MigrationRunner creates the customer table used by SQL sources
type MigrationRunner struct {
	version string
	table   string
}

// NewRunner creates a new migration runner for the given customer table
func NewRunner(table string) (*MigrationRunner, error) {
	if !config.ValidIdentifier(table) {
		return nil, errors.ConfigInvalid(fmt.Sprintf("invalid table name %q", table))
	}
	return &MigrationRunner{
		version: "1.0.0",
		table:   table,
	}, nil
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range r.Statements(db.DriverName()) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.DatabaseError(fmt.Sprintf("failed to migrate %s", r.table), err)
		}
	}
	log.Printf("[Migration] %s ready (schema %s, driver %s)", r.table, r.version, db.DriverName())
	return nil
}

// Statements returns the DDL for driver. The registration date is stored as
// text so malformed source values survive a seed.
func (r *MigrationRunner) Statements(driver string) []string {
	stmts := []string{fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			customer_id BIGINT PRIMARY KEY,
			registration_date VARCHAR(32),
			age INTEGER,
			gender VARCHAR(16),
			tenure_months INTEGER,
			usage_frequency INTEGER,
			support_contacts INTEGER,
			days_late INTEGER,
			subscription_tier VARCHAR(32),
			contract_duration VARCHAR(32),
			total_spent DECIMAL(12,2),
			canceled SMALLINT NOT NULL DEFAULT 0
		)
	`, r.table)}

	// MySQL has no CREATE INDEX IF NOT EXISTS.
	if driver == "postgres" {
		stmts = append(stmts, fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS idx_%s_contract ON %s (contract_duration)`, r.table, r.table))
	}
	return stmts
}
