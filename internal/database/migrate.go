package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies every pending up migration for the pool's dialect.
// The pool stays open: the migrator is never closed because the sqlite3
// driver would close the shared *sql.DB with it.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	src, err := iofs.New(migrations, "migrations/"+db.DriverName())
	if err != nil {
		return fmt.Errorf("%w: loading migrations for %s: %v", ErrQuery, db.DriverName(), err)
	}

	var (
		drv     migratedb.Driver
		release func()
	)
	switch db.DriverName() {
	case DriverPostgres:
		// A dedicated connection keeps the advisory lock on one session
		conn, err := db.Conn(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConnection, err)
		}
		drv, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
		if err != nil {
			_ = conn.Close()
			return fmt.Errorf("%w: %v", ErrConnection, err)
		}
		release = func() { _ = drv.Close() }
	case DriverSQLite:
		drv, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConnection, err)
		}
		release = func() {}
	default:
		return fmt.Errorf("%w: no migrations for driver %q", ErrQuery, db.DriverName())
	}
	defer release()

	m, err := migrate.NewWithInstance("iofs", src, db.DriverName(), drv)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: migrate up: %v", ErrQuery, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%w: reading schema version: %v", ErrQuery, err)
	}
	zap.L().Info("schema migrated",
		zap.String("driver", db.DriverName()),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}
