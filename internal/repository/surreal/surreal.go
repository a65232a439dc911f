// Package surreal implements the storage contract on SurrealDB.
//
// Records are keyed by integer ids (person:1001) handed out from a counter
// record per table, so ids look the same as in the SQL backends.
// Concurrent saves of the same id are last write wins.
package surreal

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/model"
	"github.com/forgo/bookshelf/internal/service"
)

var (
	_ service.PersonRepository = (*PersonRepository)(nil)
	_ service.BookRepository   = (*BookRepository)(nil)
)

const nextIDClause = `LET $next = (UPSERT ONLY type::thing('sequence', $table) SET value = (value ?? 0) + 1 RETURN VALUE value);`

// Store groups the SurrealDB repositories over one connection
type Store struct {
	persons *PersonRepository
	books   *BookRepository
}

// New creates the repositories
func New(db database.Database) *Store {
	return &Store{
		persons: &PersonRepository{db: db},
		books:   &BookRepository{db: db},
	}
}

// Persons returns the person repository
func (s *Store) Persons() *PersonRepository { return s.persons }

// Books returns the book repository
func (s *Store) Books() *BookRepository { return s.books }

// PersonRepository handles person records
type PersonRepository struct {
	db database.Database
}

// Save creates a record under the next counter value when the id is zero
// and updates the existing record otherwise
func (r *PersonRepository) Save(ctx context.Context, person *model.Person) (*model.Person, error) {
	vars := map[string]interface{}{
		"table":     "person",
		"full_name": person.FullName,
		"title":     person.Title,
		"age":       person.Age,
	}
	setClause := `full_name = $full_name, title = $title, age = $age`

	var query string
	if person.ID == 0 {
		query = nextIDClause + ` CREATE type::thing('person', $next) SET ` + setClause
	} else {
		vars["id"] = person.ID
		query = `UPDATE type::thing('person', $id) SET ` + setClause
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("person %d: %w", person.ID, err)
		}
		return nil, err
	}
	return parsePerson(result)
}

// FindByID returns nil, nil when the id is unknown
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::thing('person', $id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parsePerson(result)
}

// FindAll returns every person in ascending id order
func (r *PersonRepository) FindAll(ctx context.Context) ([]*model.Person, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM person ORDER BY id`, nil)
	if err != nil {
		return nil, err
	}

	rows := database.Rows(results)
	persons := make([]*model.Person, 0, len(rows))
	for _, row := range rows {
		p, err := parsePerson(row)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

// DeleteByID removes a person; unknown ids are ignored
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.Execute(ctx, `DELETE type::thing('person', $id)`, map[string]interface{}{"id": id})
}

// BookRepository handles book records
type BookRepository struct {
	db database.Database
}

// Save creates a record under the next counter value when the id is zero
// and updates the existing record otherwise
func (r *BookRepository) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	vars := map[string]interface{}{
		"table":      "book",
		"user_id":    book.UserID,
		"title":      book.Title,
		"author":     book.Author,
		"page_count": book.PageCount,
	}
	setClause := `user_id = $user_id, title = $title, author = $author, page_count = $page_count`

	var query string
	if book.ID == 0 {
		query = nextIDClause + ` CREATE type::thing('book', $next) SET ` + setClause
	} else {
		vars["id"] = book.ID
		query = `UPDATE type::thing('book', $id) SET ` + setClause
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("book %d: %w", book.ID, err)
		}
		return nil, err
	}
	return parseBook(result)
}

// FindByID returns nil, nil when the id is unknown
func (r *BookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::thing('book', $id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseBook(result)
}

// FindAll returns every book in ascending id order
func (r *BookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	return r.list(ctx, `SELECT * FROM book ORDER BY id`, nil)
}

// FindAllByOwner returns the books of one owner in ascending id order
func (r *BookRepository) FindAllByOwner(ctx context.Context, ownerID int64) ([]*model.Book, error) {
	return r.list(ctx, `SELECT * FROM book WHERE user_id = $owner ORDER BY id`, map[string]interface{}{"owner": ownerID})
}

// DeleteByID removes a book; unknown ids are ignored
func (r *BookRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.Execute(ctx, `DELETE type::thing('book', $id)`, map[string]interface{}{"id": id})
}

func (r *BookRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Book, error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := database.Rows(results)
	books := make([]*model.Book, 0, len(rows))
	for _, row := range rows {
		b, err := parseBook(row)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

func parsePerson(result interface{}) (*model.Person, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected person result %T", database.ErrQuery, result)
	}
	id, err := recordNumber(data["id"])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return &model.Person{
		ID:       id,
		FullName: getString(data, "full_name"),
		Title:    getString(data, "title"),
		Age:      int(getInt64(data, "age")),
	}, nil
}

func parseBook(result interface{}) (*model.Book, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected book result %T", database.ErrQuery, result)
	}
	id, err := recordNumber(data["id"])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return &model.Book{
		ID:        id,
		UserID:    getInt64(data, "user_id"),
		Title:     getString(data, "title"),
		Author:    getString(data, "author"),
		PageCount: int(getInt64(data, "page_count")),
	}, nil
}
