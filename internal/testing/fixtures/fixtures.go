// Package fixtures provides canonical request payloads and seed data for tests.
//
// Usage:
//
//	tdb := testdb.NewSQLite(t)
//	fixtures.SeedLibrary(t, tdb.DB)      // person 1001 owning books 2002 and 3003
//	req := fixtures.PersonRequest()
package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/forgo/bookshelf/internal/model"
)

// Ids of the seeded library
const (
	SeedPersonID    int64 = 1001
	SeedFirstBookID int64 = 2002
	SeedLastBookID  int64 = 3003
)

// PersonRequest returns a valid create payload
func PersonRequest() *model.PersonRequest {
	return &model.PersonRequest{FullName: "Test name", Title: "Test title", Age: 19}
}

// BookRequest returns a valid book payload
func BookRequest() *model.BookRequest {
	return &model.BookRequest{Title: "Title test", Author: "Author test", PageCount: 1000}
}

// UpdatePersonRequest returns a valid update payload for the seeded person
func UpdatePersonRequest() *model.UpdatePersonRequest {
	return &model.UpdatePersonRequest{ID: SeedPersonID, FullName: "Test name", Title: "Test title", Age: 19}
}

// UpdateBookRequest returns a valid update payload for the first seeded book
func UpdateBookRequest() *model.UpdateBookRequest {
	return &model.UpdateBookRequest{ID: SeedFirstBookID, Title: "Title test", Author: "Author test", PageCount: 1000}
}

// SeedLibrary inserts person 1001 owning books 2002 and 3003 with explicit ids
func SeedLibrary(t *testing.T, db *sqlx.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []struct {
		query string
		args  []interface{}
	}{
		{db.Rebind(`INSERT INTO person (id, full_name, title, age) VALUES (?, ?, ?, ?)`),
			[]interface{}{SeedPersonID, "Seed name", "Seed title", 40}},
		{db.Rebind(`INSERT INTO book (id, user_id, title, author, page_count) VALUES (?, ?, ?, ?, ?)`),
			[]interface{}{SeedFirstBookID, SeedPersonID, "First title", "First author", 100}},
		{db.Rebind(`INSERT INTO book (id, user_id, title, author, page_count) VALUES (?, ?, ?, ?, ?)`),
			[]interface{}{SeedLastBookID, SeedPersonID, "Last title", "Last author", 200}},
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s.query, s.args...); err != nil {
			t.Fatalf("fixtures: seeding failed: %v\nQuery: %s", err, s.query)
		}
	}
}
