package sqlsource

import (
	"context"
	"fmt"
	"strings"

	"churnboard/domain/customer"
	"churnboard/internal/config"
	"churnboard/internal/dataset"
	"churnboard/ports"

	"github.com/jmoiron/sqlx"
)

var numericColumns = map[string]bool{
	customer.ColCustomerID:      true,
	customer.ColAge:             true,
	customer.ColTenureMonths:    true,
	customer.ColUsageFrequency:  true,
	customer.ColSupportContacts: true,
	customer.ColDaysLate:        true,
	customer.ColTotalSpent:      true,
	customer.ColCanceled:        true,
}

var _ ports.RowSink = (*Writer)(nil)

// Writer inserts raw rows into the customer table
type Writer struct {
	db    *sqlx.DB
	table string
}

// NewWriter creates a writer for table
func NewWriter(db *sqlx.DB, table string) (*Writer, error) {
	if !config.ValidIdentifier(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Writer{db: db, table: table}, nil
}

// Truncate removes every row from the table
func (w *Writer) Truncate(ctx context.Context) error {
	_, err := w.db.ExecContext(ctx, "DELETE FROM "+w.table)
	return err
}

// WriteRows inserts rows in a single transaction
func (w *Writer) WriteRows(ctx context.Context, headers []string, rows []dataset.RawRow, onRow func()) error {
	query, err := insertStatement(w.table, headers)
	if err != nil {
		return err
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for i, row := range rows {
		if _, err := tx.NamedExecContext(ctx, query, namedArgs(headers, row)); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
		if onRow != nil {
			onRow()
		}
	}
	return tx.Commit()
}

func insertStatement(table string, headers []string) (string, error) {
	if len(headers) == 0 {
		return "", fmt.Errorf("no columns to insert")
	}
	params := make([]string, len(headers))
	for i, h := range headers {
		if !config.ValidIdentifier(h) {
			return "", fmt.Errorf("invalid column name %q", h)
		}
		params[i] = ":" + h
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(headers, ", "), strings.Join(params, ", ")), nil
}

// namedArgs maps a raw row to insert arguments. Blank numeric cells become NULL.
func namedArgs(headers []string, row dataset.RawRow) map[string]interface{} {
	args := make(map[string]interface{}, len(headers))
	for _, h := range headers {
		v := strings.TrimSpace(row[h])
		if v == "" && numericColumns[h] {
			args[h] = nil
			continue
		}
		args[h] = v
	}
	return args
}
