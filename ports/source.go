package ports

import (
	"context"

	"churnboard/domain/customer"
	"churnboard/internal/dataset"
)

// TableSource loads the customer table from wherever it lives.
// A source that cannot find its data returns an error wrapping
// core.ErrSourceNotFound; a table missing required columns is still
// returned so schema validation can report what is absent.
type TableSource interface {
	Load(ctx context.Context) (*customer.Table, dataset.LoadReport, error)
	Describe() string
}

// RowSink persists raw rows, e.g. when seeding a database from a generated dataset.
type RowSink interface {
	WriteRows(ctx context.Context, headers []string, rows []dataset.RawRow, onRow func()) error
}
