// Package testdb provides test database utilities.
//
// SQLite databases are private in-memory instances, migrated on creation,
// so every test gets a fresh schema. SurrealDB databases use a unique
// namespace on a real server and are skipped unless TEST_SURREAL_HOST is set.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.NewSQLite(t)
//	    tdb.MustExec(`INSERT INTO person (id, full_name, title, age) VALUES (1001, 'n', 't', 1)`)
//	}
package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/forgo/bookshelf/internal/database"
)

// SQLite is a migrated in-memory SQLite database closed at test cleanup
type SQLite struct {
	DB *sqlx.DB
	t  *testing.T
}

// NewSQLite opens and migrates a private in-memory database.
// The pool is pinned to one connection because each SQLite memory
// connection is its own database.
func NewSQLite(t *testing.T) *SQLite {
	t.Helper()
	return openSQLite(t, "file::memory:?_foreign_keys=on", 1)
}

// NewSQLiteFile opens and migrates a database file in the test's temp dir
// behind a pool of maxOpenConns connections, so writers really contend.
func NewSQLiteFile(t *testing.T, maxOpenConns int) *SQLite {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "bookshelf.db") + "?_foreign_keys=on&_busy_timeout=5000"
	return openSQLite(t, dsn, maxOpenConns)
}

func openSQLite(t *testing.T, dsn string, maxOpenConns int) *SQLite {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.OpenSQL(ctx, database.SQLConfig{
		Driver:       database.DriverSQLite,
		DSN:          dsn,
		MaxOpenConns: maxOpenConns,
	})
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("testdb: migration failed: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return &SQLite{DB: db, t: t}
}

// Ctx returns a context with a reasonable timeout for test operations.
func Ctx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// MustExec executes a statement and fails the test on error.
func (s *SQLite) MustExec(query string, args ...interface{}) {
	s.t.Helper()
	if _, err := s.DB.ExecContext(Ctx(s.t), query, args...); err != nil {
		s.t.Fatalf("testdb: exec failed: %v\nQuery: %s", err, query)
	}
}

// Count returns the number of rows in a table.
func (s *SQLite) Count(table string) int {
	s.t.Helper()
	var n int
	if err := s.DB.GetContext(Ctx(s.t), &n, "SELECT COUNT(*) FROM "+table); err != nil {
		s.t.Fatalf("testdb: count %s failed: %v", table, err)
	}
	return n
}

// Surreal is a SurrealDB namespace removed at test cleanup
type Surreal struct {
	DB        *database.SurrealDB
	Namespace string
}

var (
	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// NewSurreal connects to the server named by TEST_SURREAL_HOST or skips the test.
func NewSurreal(t *testing.T) *Surreal {
	t.Helper()

	host := os.Getenv("TEST_SURREAL_HOST")
	if host == "" {
		t.Skip("TEST_SURREAL_HOST not set; skipping SurrealDB test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	namespace := uniqueNamespace()
	db := database.NewSurrealDB(database.Config{
		Host:      host,
		Port:      getEnv("TEST_SURREAL_PORT", "8000"),
		User:      getEnv("TEST_SURREAL_USER", "root"),
		Password:  getEnv("TEST_SURREAL_PASSWORD", "root"),
		Namespace: namespace,
		Database:  "test",
	})
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", namespace), nil) // Ignore errors on cleanup
		_ = db.Close()
	})
	return &Surreal{DB: db, Namespace: namespace}
}
