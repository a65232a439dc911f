// Package memory implements the storage contract on process-local maps.
//
// There is no transactionality: concurrent saves of the same id are last
// write wins. The mutex only keeps the maps memory safe.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/model"
	"github.com/forgo/bookshelf/internal/service"
)

var (
	_ service.PersonRepository = (*PersonRepository)(nil)
	_ service.BookRepository   = (*BookRepository)(nil)
)

// Store owns both entity maps
type Store struct {
	persons *PersonRepository
	books   *BookRepository
}

// New creates an empty store
func New() *Store {
	return &Store{
		persons: &PersonRepository{items: make(map[int64]model.Person)},
		books:   &BookRepository{items: make(map[int64]model.Book)},
	}
}

// Persons returns the person repository
func (s *Store) Persons() *PersonRepository { return s.persons }

// Books returns the book repository
func (s *Store) Books() *BookRepository { return s.books }

// PersonRepository stores persons by id
type PersonRepository struct {
	mu     sync.RWMutex
	items  map[int64]model.Person
	nextID int64
}

// Save inserts when the id is zero and replaces the stored value otherwise
func (r *PersonRepository) Save(ctx context.Context, person *model.Person) (*model.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *person
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else if _, ok := r.items[stored.ID]; !ok {
		return nil, fmt.Errorf("person %d: %w", stored.ID, database.ErrNotFound)
	}
	r.items[stored.ID] = stored
	return &stored, nil
}

// FindByID returns nil, nil when the id is unknown
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// FindAll returns every person in ascending id order
func (r *PersonRepository) FindAll(ctx context.Context) ([]*model.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := lo.Values(r.items)
	slices.SortFunc(persons, func(a, b model.Person) int { return cmp.Compare(a.ID, b.ID) })
	return lo.ToSlicePtr(persons), nil
}

// DeleteByID removes a person; unknown ids are ignored
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// BookRepository stores books by id
type BookRepository struct {
	mu     sync.RWMutex
	items  map[int64]model.Book
	nextID int64
}

// Save inserts when the id is zero and replaces the stored value otherwise
func (r *BookRepository) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *book
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else if _, ok := r.items[stored.ID]; !ok {
		return nil, fmt.Errorf("book %d: %w", stored.ID, database.ErrNotFound)
	}
	r.items[stored.ID] = stored
	return &stored, nil
}

// FindByID returns nil, nil when the id is unknown
func (r *BookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// FindAll returns every book in ascending id order
func (r *BookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	return r.list(ctx, func(model.Book) bool { return true })
}

// FindAllByOwner returns the books of one owner in ascending id order
func (r *BookRepository) FindAllByOwner(ctx context.Context, ownerID int64) ([]*model.Book, error) {
	return r.list(ctx, func(b model.Book) bool { return b.UserID == ownerID })
}

// DeleteByID removes a book; unknown ids are ignored
func (r *BookRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *BookRepository) list(ctx context.Context, keep func(model.Book) bool) ([]*model.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	books := lo.Filter(lo.Values(r.items), func(b model.Book, _ int) bool { return keep(b) })
	slices.SortFunc(books, func(a, b model.Book) int { return cmp.Compare(a.ID, b.ID) })
	return lo.ToSlicePtr(books), nil
}
