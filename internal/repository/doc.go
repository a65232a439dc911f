// Package repository groups the storage backends of the bookshelf API.
//
// Every subpackage implements service.PersonRepository and
// service.BookRepository and is selected at start by STORAGE_BACKEND:
//
//   - relational: squirrel-built SQL, row-locked updates
//   - statement: hand-written SQL through sqlx
//   - memory: process-local maps
//   - surreal: SurrealDB records
//
// FindByID returns nil, nil for a missing id. Save with an unknown id
// returns database.ErrNotFound. DeleteByID of a missing id is a no-op.
package repository
