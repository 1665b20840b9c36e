// Package sqlsource loads and seeds the customer table in PostgreSQL or MySQL.
package sqlsource

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Driver names as registered with database/sql
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Open connects to the database named by dsn. postgres:// and postgresql://
// URLs use lib/pq; mysql://, mariadb:// and native MySQL DSNs use the MySQL driver.
func Open(dsn string) (*sqlx.DB, error) {
	driver, native, err := ResolveDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, native)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// ResolveDSN picks the driver for dsn and converts it to that driver's native form.
func ResolveDSN(dsn string) (driver, native string, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "mysql://"), strings.HasPrefix(dsn, "mariadb://"):
		native, err := toMySQLDSN(dsn)
		return DriverMySQL, native, err
	case strings.Contains(dsn, "@tcp("), strings.Contains(dsn, "@unix("):
		return DriverMySQL, dsn, nil
	case dsn == "":
		return "", "", fmt.Errorf("empty database URL")
	default:
		return "", "", fmt.Errorf("unsupported database URL scheme: %s", redact(dsn))
	}
}

func toMySQLDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user, pass := "", ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("incomplete dsn: user, host and database are required")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, host, db), nil
}

func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	return "..."
}
