// Package relational implements the storage contract with queries built by
// squirrel. Updates run inside a transaction that first re-reads the row
// with a write lock, so concurrent saves of the same id are serialized.
// PostgreSQL takes the row lock with SELECT ... FOR UPDATE. SQLite has no
// row locks; pools opened by database.OpenSQL begin IMMEDIATE transactions,
// which take the database write lock at BEGIN.
package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/model"
	"github.com/forgo/bookshelf/internal/service"
)

var (
	_ service.PersonRepository = (*PersonRepository)(nil)
	_ service.BookRepository   = (*BookRepository)(nil)
)

const (
	personTable = "person"
	bookTable   = "book"
)

var (
	personColumns = []string{"id", "full_name", "title", "age"}
	bookColumns   = []string{"id", "user_id", "title", "author", "page_count"}
)

// Store groups the relational repositories over one pool
type Store struct {
	persons *PersonRepository
	books   *BookRepository
}

// New creates repositories using the pool's placeholder style
func New(db *sqlx.DB) *Store {
	t := &tables{db: db, builder: sq.StatementBuilder}
	if database.IsPostgres(db) {
		t.builder = t.builder.PlaceholderFormat(sq.Dollar)
		t.lockSuffix = "FOR UPDATE"
	}
	return &Store{
		persons: &PersonRepository{t},
		books:   &BookRepository{t},
	}
}

// Persons returns the person repository
func (s *Store) Persons() *PersonRepository { return s.persons }

// Books returns the book repository
func (s *Store) Books() *BookRepository { return s.books }

// tables holds what both repositories share
type tables struct {
	db         *sqlx.DB
	builder    sq.StatementBuilderType
	lockSuffix string
}

// lockedUpdate locks the row, applies the update and commits.
// A missing row rolls back and yields ErrNotFound.
func (t *tables) lockedUpdate(ctx context.Context, table string, id int64, update sq.UpdateBuilder) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return database.ClassifySQLError(err)
	}
	defer func() { _ = tx.Rollback() }()

	lock := t.builder.Select("id").From(table).Where(sq.Eq{"id": id})
	if t.lockSuffix != "" {
		lock = lock.Suffix(t.lockSuffix)
	}
	query, args, err := lock.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	var locked int64
	if err := tx.GetContext(ctx, &locked, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %d: %w", table, id, database.ErrNotFound)
		}
		return database.ClassifySQLError(err)
	}

	query, args, err = update.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return database.ClassifySQLError(err)
	}

	return database.ClassifySQLError(tx.Commit())
}

func (t *tables) insert(ctx context.Context, insert sq.InsertBuilder) (int64, error) {
	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	var id int64
	if err := t.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, database.ClassifySQLError(err)
	}
	return id, nil
}

func (t *tables) get(ctx context.Context, dest interface{}, sel sq.SelectBuilder) (bool, error) {
	query, args, err := sel.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	if err := t.db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, database.ClassifySQLError(err)
	}
	return true, nil
}

func (t *tables) list(ctx context.Context, dest interface{}, sel sq.SelectBuilder) error {
	query, args, err := sel.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return database.ClassifySQLError(t.db.SelectContext(ctx, dest, query, args...))
}

func (t *tables) deleteByID(ctx context.Context, table string, id int64) error {
	query, args, err := t.builder.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	_, err = t.db.ExecContext(ctx, query, args...)
	return database.ClassifySQLError(err)
}

// PersonRepository handles person rows
type PersonRepository struct {
	*tables
}

// Save inserts when the id is zero and updates the locked row otherwise
func (r *PersonRepository) Save(ctx context.Context, person *model.Person) (*model.Person, error) {
	saved := *person
	if saved.ID == 0 {
		id, err := r.insert(ctx, r.builder.Insert(personTable).
			Columns("full_name", "title", "age").
			Values(saved.FullName, saved.Title, saved.Age))
		if err != nil {
			return nil, err
		}
		saved.ID = id
		return &saved, nil
	}

	update := r.builder.Update(personTable).SetMap(map[string]interface{}{
		"full_name": saved.FullName,
		"title":     saved.Title,
		"age":       saved.Age,
	})
	if err := r.lockedUpdate(ctx, personTable, saved.ID, update); err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByID returns nil, nil when the id is unknown
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	var person model.Person
	found, err := r.get(ctx, &person, r.builder.Select(personColumns...).From(personTable).Where(sq.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	return &person, nil
}

// FindAll returns every person in ascending id order
func (r *PersonRepository) FindAll(ctx context.Context) ([]*model.Person, error) {
	persons := []*model.Person{}
	if err := r.list(ctx, &persons, r.builder.Select(personColumns...).From(personTable).OrderBy("id")); err != nil {
		return nil, err
	}
	return persons, nil
}

// DeleteByID removes a person; unknown ids are ignored
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, personTable, id)
}

// BookRepository handles book rows
type BookRepository struct {
	*tables
}

// Save inserts when the id is zero and updates the locked row otherwise
func (r *BookRepository) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	saved := *book
	if saved.ID == 0 {
		id, err := r.insert(ctx, r.builder.Insert(bookTable).
			Columns("user_id", "title", "author", "page_count").
			Values(saved.UserID, saved.Title, saved.Author, saved.PageCount))
		if err != nil {
			return nil, err
		}
		saved.ID = id
		return &saved, nil
	}

	update := r.builder.Update(bookTable).SetMap(map[string]interface{}{
		"user_id":    saved.UserID,
		"title":      saved.Title,
		"author":     saved.Author,
		"page_count": saved.PageCount,
	})
	if err := r.lockedUpdate(ctx, bookTable, saved.ID, update); err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByID returns nil, nil when the id is unknown
func (r *BookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	found, err := r.get(ctx, &book, r.builder.Select(bookColumns...).From(bookTable).Where(sq.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	return &book, nil
}

// FindAll returns every book in ascending id order
func (r *BookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	books := []*model.Book{}
	if err := r.list(ctx, &books, r.builder.Select(bookColumns...).From(bookTable).OrderBy("id")); err != nil {
		return nil, err
	}
	return books, nil
}

// FindAllByOwner returns the books of one owner in ascending id order
func (r *BookRepository) FindAllByOwner(ctx context.Context, ownerID int64) ([]*model.Book, error) {
	books := []*model.Book{}
	sel := r.builder.Select(bookColumns...).From(bookTable).Where(sq.Eq{"user_id": ownerID}).OrderBy("id")
	if err := r.list(ctx, &books, sel); err != nil {
		return nil, err
	}
	return books, nil
}

// DeleteByID removes a book; unknown ids are ignored
func (r *BookRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, bookTable, id)
}
