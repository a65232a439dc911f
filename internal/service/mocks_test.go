package service

import (
	"context"

	"github.com/forgo/bookshelf/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockPersonRepo struct {
	saveFunc       func(ctx context.Context, person *model.Person) (*model.Person, error)
	findByIDFunc   func(ctx context.Context, id int64) (*model.Person, error)
	findAllFunc    func(ctx context.Context) ([]*model.Person, error)
	deleteByIDFunc func(ctx context.Context, id int64) error

	saveCalls   int
	deleteCalls int
}

func (m *mockPersonRepo) Save(ctx context.Context, person *model.Person) (*model.Person, error) {
	m.saveCalls++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, person)
	}
	return person, nil
}

func (m *mockPersonRepo) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPersonRepo) FindAll(ctx context.Context) ([]*model.Person, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockPersonRepo) DeleteByID(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil
}

type mockBookRepo struct {
	saveFunc           func(ctx context.Context, book *model.Book) (*model.Book, error)
	findByIDFunc       func(ctx context.Context, id int64) (*model.Book, error)
	findAllFunc        func(ctx context.Context) ([]*model.Book, error)
	findAllByOwnerFunc func(ctx context.Context, ownerID int64) ([]*model.Book, error)
	deleteByIDFunc     func(ctx context.Context, id int64) error

	saveCalls   int
	deleteCalls int
}

func (m *mockBookRepo) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	m.saveCalls++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, book)
	}
	return book, nil
}

func (m *mockBookRepo) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookRepo) FindAll(ctx context.Context) ([]*model.Book, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockBookRepo) FindAllByOwner(ctx context.Context, ownerID int64) ([]*model.Book, error) {
	if m.findAllByOwnerFunc != nil {
		return m.findAllByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockBookRepo) DeleteByID(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil
}
