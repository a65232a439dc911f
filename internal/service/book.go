package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/model"
)

// BookRepository defines the interface for book storage.
// FindByID returns nil, nil when the id does not exist; FindAllByOwner
// returns books in ascending id order.
type BookRepository interface {
	Save(ctx context.Context, book *model.Book) (*model.Book, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindAll(ctx context.Context) ([]*model.Book, error)
	FindAllByOwner(ctx context.Context, ownerID int64) ([]*model.Book, error)
	DeleteByID(ctx context.Context, id int64) error
}

// BookService handles book business logic
type BookService struct {
	repo BookRepository
}

// BookServiceConfig holds configuration for the book service
type BookServiceConfig struct {
	Repo BookRepository
}

// NewBookService creates a new book service
func NewBookService(cfg BookServiceConfig) *BookService {
	return &BookService{
		repo: cfg.Repo,
	}
}

// Create validates and persists a new book
func (s *BookService) Create(ctx context.Context, dto model.BookDTO) (model.BookDTO, error) {
	if err := validateBook(dto); err != nil {
		return model.BookDTO{}, err
	}

	record := dto.ToRecord()
	record.ID = 0

	saved, err := s.repo.Save(ctx, &record)
	if err != nil {
		return model.BookDTO{}, fmt.Errorf("saving %s: %w", record, err)
	}
	return saved.ToDTO(), nil
}

// Update overwrites the mutable fields of an existing book, including its owner
func (s *BookService) Update(ctx context.Context, dto model.BookDTO) (model.BookDTO, error) {
	if err := validateBook(dto); err != nil {
		return model.BookDTO{}, err
	}

	existing, err := s.find(ctx, dto.ID)
	if err != nil {
		return model.BookDTO{}, err
	}

	existing.UserID = dto.UserID
	existing.Title = dto.Title
	existing.Author = dto.Author
	existing.PageCount = dto.PageCount

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return model.BookDTO{}, fmt.Errorf("%w: id %d", ErrBookNotFound, dto.ID)
		}
		return model.BookDTO{}, fmt.Errorf("saving %s: %w", existing, err)
	}
	return saved.ToDTO(), nil
}

// GetByID retrieves a book by id
func (s *BookService) GetByID(ctx context.Context, id int64) (model.BookDTO, error) {
	if err := validateID(id); err != nil {
		return model.BookDTO{}, err
	}

	book, err := s.find(ctx, id)
	if err != nil {
		return model.BookDTO{}, err
	}
	return book.ToDTO(), nil
}

// DeleteByID removes a single book
func (s *BookService) DeleteByID(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}

	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting book %d: %w", id, err)
	}
	return nil
}

// ListByOwner returns the books owned by a person in creation order.
// An owner without books yields an empty, non-nil slice.
func (s *BookService) ListByOwner(ctx context.Context, ownerID int64) ([]model.BookDTO, error) {
	if err := validateID(ownerID); err != nil {
		return nil, err
	}

	books, err := s.repo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing books of person %d: %w", ownerID, err)
	}

	result := make([]model.BookDTO, 0, len(books))
	for _, b := range books {
		result = append(result, b.ToDTO())
	}
	return result, nil
}

func (s *BookService) find(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading book %d: %w", id, err)
	}
	if book == nil {
		return nil, fmt.Errorf("%w: id %d", ErrBookNotFound, id)
	}
	return book, nil
}
