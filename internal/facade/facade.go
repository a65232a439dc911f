// Package facade composes the person and book services into the four
// person-with-books use cases served over HTTP.
//
// Steps are not atomic: a failure midway leaves earlier writes in place.
package facade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/metrics"
	"github.com/forgo/bookshelf/internal/model"
)

// ErrNilRequest is returned when a composite call carries no person payload
var ErrNilRequest = errors.New("person request is nil")

// Operation names used in logs and metrics
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpGet    = "get"
	OpDelete = "delete"
)

// PersonService is the person use-case surface the facade needs
type PersonService interface {
	Create(ctx context.Context, dto model.PersonDTO) (model.PersonDTO, error)
	Update(ctx context.Context, dto model.PersonDTO) (model.PersonDTO, error)
	GetByID(ctx context.Context, id int64) (model.PersonDTO, error)
	DeleteByID(ctx context.Context, id int64) error
}

// BookService is the book use-case surface the facade needs
type BookService interface {
	Create(ctx context.Context, dto model.BookDTO) (model.BookDTO, error)
	Update(ctx context.Context, dto model.BookDTO) (model.BookDTO, error)
	DeleteByID(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.BookDTO, error)
}

// Facade orchestrates person and book services
type Facade struct {
	persons PersonService
	books   BookService
	metrics *metrics.Metrics
	backend string
}

// Config holds the facade dependencies. Metrics may be nil.
// Backend labels storage failures in metrics.
type Config struct {
	Persons PersonService
	Books   BookService
	Metrics *metrics.Metrics
	Backend string
}

// New creates a new facade
func New(cfg Config) *Facade {
	return &Facade{
		persons: cfg.Persons,
		books:   cfg.Books,
		metrics: cfg.Metrics,
		backend: cfg.Backend,
	}
}

// CreateWithBooks creates a person, then each non-nil book owned by it in input order
func (f *Facade) CreateWithBooks(ctx context.Context, personReq *model.PersonRequest, bookReqs []*model.BookRequest) (resp *model.PersonBooksResponse, err error) {
	defer f.observe(OpCreate, time.Now(), &err)

	if personReq == nil {
		return nil, ErrNilRequest
	}

	personDTO := personReq.ToDTO()
	zap.L().Info("create request received", zap.Stringer("person", personDTO), zap.Int("books", len(bookReqs)))

	person, err := f.persons.Create(ctx, personDTO)
	if err != nil {
		return nil, err
	}
	zap.L().Info("person persisted", zap.Int64("person_id", person.ID))

	bookDTOs := lo.Map(compact(bookReqs), func(r *model.BookRequest, _ int) model.BookDTO {
		dto := r.ToDTO()
		dto.UserID = person.ID
		return dto
	})
	zap.L().Debug("books mapped", zap.Int64("person_id", person.ID), zap.Int("books", len(bookDTOs)))

	ids := make([]int64, 0, len(bookDTOs))
	for _, dto := range bookDTOs {
		book, err := f.books.Create(ctx, dto)
		if err != nil {
			return nil, fmt.Errorf("person %d: %w", person.ID, err)
		}
		ids = append(ids, book.ID)
	}
	zap.L().Info("books persisted", zap.Int64("person_id", person.ID), zap.Int64s("book_ids", ids))

	return &model.PersonBooksResponse{UserID: person.ID, BooksIDList: ids}, nil
}

// UpdateWithBooks updates a person, then each non-nil book by its id, reassigned to that person
func (f *Facade) UpdateWithBooks(ctx context.Context, personReq *model.UpdatePersonRequest, bookReqs []*model.UpdateBookRequest) (resp *model.PersonBooksResponse, err error) {
	defer f.observe(OpUpdate, time.Now(), &err)

	if personReq == nil {
		return nil, ErrNilRequest
	}

	personDTO := personReq.ToDTO()
	zap.L().Info("update request received", zap.Stringer("person", personDTO), zap.Int("books", len(bookReqs)))

	person, err := f.persons.Update(ctx, personDTO)
	if err != nil {
		return nil, err
	}
	zap.L().Info("person updated", zap.Int64("person_id", person.ID))

	bookDTOs := lo.Map(compact(bookReqs), func(r *model.UpdateBookRequest, _ int) model.BookDTO {
		dto := r.ToDTO()
		dto.UserID = person.ID
		return dto
	})

	ids := make([]int64, 0, len(bookDTOs))
	for _, dto := range bookDTOs {
		book, err := f.books.Update(ctx, dto)
		if err != nil {
			return nil, fmt.Errorf("person %d: %w", person.ID, err)
		}
		ids = append(ids, book.ID)
	}
	zap.L().Info("books updated", zap.Int64("person_id", person.ID), zap.Int64s("book_ids", ids))

	return &model.PersonBooksResponse{UserID: person.ID, BooksIDList: ids}, nil
}

// GetWithBooks returns a person id with the ids of its books in creation order
func (f *Facade) GetWithBooks(ctx context.Context, personID int64) (resp *model.PersonBooksResponse, err error) {
	defer f.observe(OpGet, time.Now(), &err)

	zap.L().Debug("get request received", zap.Int64("person_id", personID))

	person, err := f.persons.GetByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	books, err := f.books.ListByOwner(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	ids := lo.Map(books, func(b model.BookDTO, _ int) int64 { return b.ID })
	return &model.PersonBooksResponse{UserID: person.ID, BooksIDList: ids}, nil
}

// DeleteWithBooks deletes every book owned by the person, then the person
func (f *Facade) DeleteWithBooks(ctx context.Context, personID int64) (err error) {
	defer f.observe(OpDelete, time.Now(), &err)

	zap.L().Info("delete request received", zap.Int64("person_id", personID))

	person, err := f.persons.GetByID(ctx, personID)
	if err != nil {
		return err
	}

	books, err := f.books.ListByOwner(ctx, person.ID)
	if err != nil {
		return err
	}

	for _, b := range books {
		if err := f.books.DeleteByID(ctx, b.ID); err != nil {
			return fmt.Errorf("person %d: %w", person.ID, err)
		}
	}

	if err := f.persons.DeleteByID(ctx, person.ID); err != nil {
		return err
	}
	zap.L().Info("person deleted", zap.Int64("person_id", person.ID), zap.Int("books", len(books)))
	return nil
}

func (f *Facade) observe(op string, start time.Time, errp *error) {
	err := *errp
	f.metrics.RecordOperation(op, time.Since(start), err)
	if errors.Is(err, database.ErrConnection) || errors.Is(err, database.ErrQuery) {
		f.metrics.RecordStorageError(f.backend)
	}
	if err != nil {
		zap.L().Warn("composite operation failed", zap.String("operation", op), zap.Error(err))
	}
}

// compact drops nil entries while keeping input order
func compact[T any](reqs []*T) []*T {
	return lo.Filter(reqs, func(r *T, _ int) bool { return r != nil })
}
