package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/model"
)

// PersonRepository defines the interface for person storage.
// FindByID returns nil, nil when the id does not exist.
type PersonRepository interface {
	Save(ctx context.Context, person *model.Person) (*model.Person, error)
	FindByID(ctx context.Context, id int64) (*model.Person, error)
	FindAll(ctx context.Context) ([]*model.Person, error)
	DeleteByID(ctx context.Context, id int64) error
}

// PersonService handles person business logic
type PersonService struct {
	repo PersonRepository
}

// PersonServiceConfig holds configuration for the person service
type PersonServiceConfig struct {
	Repo PersonRepository
}

// NewPersonService creates a new person service
func NewPersonService(cfg PersonServiceConfig) *PersonService {
	return &PersonService{
		repo: cfg.Repo,
	}
}

// Create validates and persists a new person
func (s *PersonService) Create(ctx context.Context, dto model.PersonDTO) (model.PersonDTO, error) {
	if err := validatePerson(dto); err != nil {
		return model.PersonDTO{}, err
	}

	record := dto.ToRecord()
	record.ID = 0

	saved, err := s.repo.Save(ctx, &record)
	if err != nil {
		return model.PersonDTO{}, fmt.Errorf("saving %s: %w", record, err)
	}
	return saved.ToDTO(), nil
}

// Update overwrites the mutable fields of an existing person
func (s *PersonService) Update(ctx context.Context, dto model.PersonDTO) (model.PersonDTO, error) {
	if err := validatePerson(dto); err != nil {
		return model.PersonDTO{}, err
	}

	existing, err := s.find(ctx, dto.ID)
	if err != nil {
		return model.PersonDTO{}, err
	}

	existing.FullName = dto.FullName
	existing.Title = dto.Title
	existing.Age = dto.Age

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		// Removed between lookup and write
		if errors.Is(err, database.ErrNotFound) {
			return model.PersonDTO{}, fmt.Errorf("%w: id %d", ErrPersonNotFound, dto.ID)
		}
		return model.PersonDTO{}, fmt.Errorf("saving %s: %w", existing, err)
	}
	return saved.ToDTO(), nil
}

// GetByID retrieves a person by id
func (s *PersonService) GetByID(ctx context.Context, id int64) (model.PersonDTO, error) {
	if err := validateID(id); err != nil {
		return model.PersonDTO{}, err
	}

	person, err := s.find(ctx, id)
	if err != nil {
		return model.PersonDTO{}, err
	}
	return person.ToDTO(), nil
}

// DeleteByID removes a person. Owned books are not touched here.
func (s *PersonService) DeleteByID(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}

	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting person %d: %w", id, err)
	}
	return nil
}

func (s *PersonService) find(ctx context.Context, id int64) (*model.Person, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading person %d: %w", id, err)
	}
	if person == nil {
		return nil, fmt.Errorf("%w: id %d", ErrPersonNotFound, id)
	}
	return person, nil
}
