package sqlsource

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"churnboard/domain/core"
	"churnboard/domain/customer"
	"churnboard/internal/config"
	"churnboard/internal/dataset"
	"churnboard/ports"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var _ ports.TableSource = (*Source)(nil)

// Source reads the customer table with SELECT *, keeping the table's column order.
type Source struct {
	db    *sqlx.DB
	table string
}

// NewSource creates a source over table. The name is spliced into SQL, so it
// must be a plain identifier.
func NewSource(db *sqlx.DB, table string) (*Source, error) {
	if !config.ValidIdentifier(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Source{db: db, table: table}, nil
}

// Describe names the table being read
func (s *Source) Describe() string {
	return s.db.DriverName() + ":" + s.table
}

// Load reads every row of the table and converts it to a customer table
func (s *Source) Load(ctx context.Context) (*customer.Table, dataset.LoadReport, error) {
	start := time.Now()

	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM "+s.table)
	if err != nil {
		if undefinedTable(err) {
			return nil, dataset.LoadReport{}, core.NewSourceNotFoundError(s.Describe())
		}
		return nil, dataset.LoadReport{}, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, dataset.LoadReport{}, fmt.Errorf("read columns: %w", err)
	}

	var raw []dataset.RawRow
	for rows.Next() {
		values := make(map[string]interface{}, len(headers))
		if err := rows.MapScan(values); err != nil {
			return nil, dataset.LoadReport{}, fmt.Errorf("scan row: %w", err)
		}
		row := make(dataset.RawRow, len(values))
		for col, v := range values {
			row[col] = cellText(v)
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dataset.LoadReport{}, fmt.Errorf("iterate rows: %w", err)
	}

	table, report := dataset.FromRows(headers, raw)
	log.Printf("[SQLSource] Loaded %d rows from %s in %v", len(raw), s.Describe(), time.Since(start))
	if n := report.Malformed(); n > 0 {
		log.Printf("[SQLSource] %d malformed cells: %v", n, report.MalformedCells)
	}
	return table, report, nil
}

// cellText renders a scanned driver value the way a CSV cell would hold it.
func cellText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.UTC().Format(customer.DateLayout)
	default:
		return fmt.Sprint(x)
	}
}

func undefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01" // undefined_table
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1146 // ER_NO_SUCH_TABLE
	}
	return false
}
