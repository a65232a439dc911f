package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQL driver names accepted by OpenSQL
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLConfig holds settings for the relational backends
type SQLConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OpenSQL opens a pool for the configured driver and verifies it with a ping
func OpenSQL(ctx context.Context, cfg SQLConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrConnection, cfg.Driver)
	}

	dsn := cfg.DSN
	if cfg.Driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return db, nil
}

// sqliteTxLock makes BEGIN take the write lock. Deferred transactions that
// read before writing fail with SQLITE_BUSY when two of them upgrade at once.
const sqliteTxLock = "_txlock"

// sqliteDSN forces immediate transactions unless the DSN picks a lock mode itself
func sqliteDSN(dsn string) string {
	_, query, hasQuery := strings.Cut(dsn, "?")
	if hasQuery {
		if params, err := url.ParseQuery(query); err == nil && params.Has(sqliteTxLock) {
			return dsn
		}
	}

	sep := "?"
	if hasQuery {
		sep = "&"
	}
	return dsn + sep + sqliteTxLock + "=immediate"
}

// IsPostgres reports whether the pool talks to PostgreSQL
func IsPostgres(db *sqlx.DB) bool {
	return db.DriverName() == DriverPostgres
}

// ClassifySQLError maps driver errors onto the package sentinels.
// Context errors are returned unchanged.
func ClassifySQLError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrQuery, err)
}
