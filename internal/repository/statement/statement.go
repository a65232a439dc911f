// Package statement implements the storage contract with hand-written SQL
// executed through sqlx. Statements are written with ? placeholders and
// rebound to the driver's bind style once, at construction.
//
// Concurrent saves of the same id are last write wins.
package statement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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
	insertPerson  = `INSERT INTO person (full_name, title, age) VALUES (?, ?, ?) RETURNING id`
	updatePerson  = `UPDATE person SET full_name = ?, title = ?, age = ? WHERE id = ?`
	selectPerson  = `SELECT id, full_name, title, age FROM person WHERE id = ?`
	selectPersons = `SELECT id, full_name, title, age FROM person ORDER BY id`
	deletePerson  = `DELETE FROM person WHERE id = ?`
	insertBook    = `INSERT INTO book (user_id, title, author, page_count) VALUES (?, ?, ?, ?) RETURNING id`
	updateBook    = `UPDATE book SET user_id = ?, title = ?, author = ?, page_count = ? WHERE id = ?`
	selectBook    = `SELECT id, user_id, title, author, page_count FROM book WHERE id = ?`
	selectBooks   = `SELECT id, user_id, title, author, page_count FROM book ORDER BY id`
	selectByOwner = `SELECT id, user_id, title, author, page_count FROM book WHERE user_id = ? ORDER BY id`
	deleteBook    = `DELETE FROM book WHERE id = ?`
)

// Store groups the statement repositories over one pool
type Store struct {
	persons *PersonRepository
	books   *BookRepository
}

// New binds every statement to the pool's placeholder style
func New(db *sqlx.DB) *Store {
	return &Store{
		persons: &PersonRepository{
			db:     db,
			insert: db.Rebind(insertPerson),
			update: db.Rebind(updatePerson),
			get:    db.Rebind(selectPerson),
			all:    db.Rebind(selectPersons),
			delete: db.Rebind(deletePerson),
		},
		books: &BookRepository{
			db:      db,
			insert:  db.Rebind(insertBook),
			update:  db.Rebind(updateBook),
			get:     db.Rebind(selectBook),
			all:     db.Rebind(selectBooks),
			byOwner: db.Rebind(selectByOwner),
			delete:  db.Rebind(deleteBook),
		},
	}
}

// Persons returns the person repository
func (s *Store) Persons() *PersonRepository { return s.persons }

// Books returns the book repository
func (s *Store) Books() *BookRepository { return s.books }

// PersonRepository handles person rows
type PersonRepository struct {
	db                               *sqlx.DB
	insert, update, get, all, delete string
}

// Save inserts when the id is zero and updates the row otherwise
func (r *PersonRepository) Save(ctx context.Context, person *model.Person) (*model.Person, error) {
	saved := *person
	if saved.ID == 0 {
		if err := r.db.QueryRowxContext(ctx, r.insert, saved.FullName, saved.Title, saved.Age).Scan(&saved.ID); err != nil {
			return nil, database.ClassifySQLError(err)
		}
		return &saved, nil
	}

	res, err := r.db.ExecContext(ctx, r.update, saved.FullName, saved.Title, saved.Age, saved.ID)
	if err := requireRow(res, err, "person", saved.ID); err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByID returns nil, nil when the id is unknown
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	var person model.Person
	if err := r.db.GetContext(ctx, &person, r.get, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, database.ClassifySQLError(err)
	}
	return &person, nil
}

// FindAll returns every person in ascending id order
func (r *PersonRepository) FindAll(ctx context.Context) ([]*model.Person, error) {
	persons := []*model.Person{}
	if err := r.db.SelectContext(ctx, &persons, r.all); err != nil {
		return nil, database.ClassifySQLError(err)
	}
	return persons, nil
}

// DeleteByID removes a person; unknown ids are ignored
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.delete, id); err != nil {
		return database.ClassifySQLError(err)
	}
	return nil
}

// BookRepository handles book rows
type BookRepository struct {
	db                                        *sqlx.DB
	insert, update, get, all, byOwner, delete string
}

// Save inserts when the id is zero and updates the row otherwise
func (r *BookRepository) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	saved := *book
	if saved.ID == 0 {
		err := r.db.QueryRowxContext(ctx, r.insert, saved.UserID, saved.Title, saved.Author, saved.PageCount).Scan(&saved.ID)
		if err != nil {
			return nil, database.ClassifySQLError(err)
		}
		return &saved, nil
	}

	res, err := r.db.ExecContext(ctx, r.update, saved.UserID, saved.Title, saved.Author, saved.PageCount, saved.ID)
	if err := requireRow(res, err, "book", saved.ID); err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByID returns nil, nil when the id is unknown
func (r *BookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	if err := r.db.GetContext(ctx, &book, r.get, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, database.ClassifySQLError(err)
	}
	return &book, nil
}

// FindAll returns every book in ascending id order
func (r *BookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	books := []*model.Book{}
	if err := r.db.SelectContext(ctx, &books, r.all); err != nil {
		return nil, database.ClassifySQLError(err)
	}
	return books, nil
}

// FindAllByOwner returns the books of one owner in ascending id order
func (r *BookRepository) FindAllByOwner(ctx context.Context, ownerID int64) ([]*model.Book, error) {
	books := []*model.Book{}
	if err := r.db.SelectContext(ctx, &books, r.byOwner, ownerID); err != nil {
		return nil, database.ClassifySQLError(err)
	}
	return books, nil
}

// DeleteByID removes a book; unknown ids are ignored
func (r *BookRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.delete, id); err != nil {
		return database.ClassifySQLError(err)
	}
	return nil
}

// requireRow turns an update that matched nothing into ErrNotFound
func requireRow(res sql.Result, err error, table string, id int64) error {
	if err != nil {
		return database.ClassifySQLError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return database.ClassifySQLError(err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, database.ErrNotFound)
	}
	return nil
}
