package service

import (
	"context"
	"errors"
	"testing"

	"github.com/forgo/bookshelf/internal/model"
)

func validBookDTO() model.BookDTO {
	return model.BookDTO{UserID: 1001, Title: "Title test", Author: "Author test", PageCount: 1000}
}

func TestBookCreate_Valid_ReturnsAssignedID(t *testing.T) {
	t.Parallel()

	repo := &mockBookRepo{
		saveFunc: func(ctx context.Context, b *model.Book) (*model.Book, error) {
			saved := *b
			saved.ID = 2002
			return &saved, nil
		},
	}
	svc := NewBookService(BookServiceConfig{Repo: repo})

	got, err := svc.Create(context.Background(), validBookDTO())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 2002 || got.UserID != 1001 {
		t.Errorf("unexpected book %v", got)
	}
}

func TestBookCreate_InvalidFields_FailsWithoutWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*model.BookDTO)
	}{
		{"zero page count", func(d *model.BookDTO) { d.PageCount = 0 }},
		{"negative page count", func(d *model.BookDTO) { d.PageCount = -1 }},
		{"missing owner", func(d *model.BookDTO) { d.UserID = 0 }},
		{"missing title", func(d *model.BookDTO) { d.Title = "" }},
		{"blank author", func(d *model.BookDTO) { d.Author = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockBookRepo{}
			svc := NewBookService(BookServiceConfig{Repo: repo})

			dto := validBookDTO()
			tt.mutate(&dto)
			_, err := svc.Create(context.Background(), dto)
			if !errors.Is(err, ErrInvalidBook) {
				t.Errorf("expected ErrInvalidBook, got %v", err)
			}
			if repo.saveCalls != 0 {
				t.Errorf("expected no writes, got %d", repo.saveCalls)
			}
		})
	}
}

func TestBookUpdate_Missing_ReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockBookRepo{}
	svc := NewBookService(BookServiceConfig{Repo: repo})

	dto := validBookDTO()
	dto.ID = 2002
	if _, err := svc.Update(context.Background(), dto); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
	if repo.saveCalls != 0 {
		t.Errorf("expected no writes, got %d", repo.saveCalls)
	}
}

func TestBookUpdate_Existing_KeepsID(t *testing.T) {
	t.Parallel()

	repo := &mockBookRepo{
		findByIDFunc: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, UserID: 1001, Title: "old", Author: "old", PageCount: 1}, nil
		},
	}
	svc := NewBookService(BookServiceConfig{Repo: repo})

	dto := validBookDTO()
	dto.ID = 2002
	got, err := svc.Update(context.Background(), dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dto {
		t.Errorf("expected %v, got %v", dto, got)
	}
}

func TestBookGetByID_ZeroID_ReturnsInvalidID(t *testing.T) {
	t.Parallel()

	svc := NewBookService(BookServiceConfig{Repo: &mockBookRepo{}})

	if _, err := svc.GetByID(context.Background(), 0); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestBookDeleteByID_Missing_ReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockBookRepo{}
	svc := NewBookService(BookServiceConfig{Repo: repo})

	if err := svc.DeleteByID(context.Background(), 3003); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
	if repo.deleteCalls != 0 {
		t.Errorf("expected no deletes, got %d", repo.deleteCalls)
	}
}

func TestBookListByOwner_PreservesOrder(t *testing.T) {
	t.Parallel()

	repo := &mockBookRepo{
		findAllByOwnerFunc: func(ctx context.Context, ownerID int64) ([]*model.Book, error) {
			return []*model.Book{
				{ID: 2002, UserID: ownerID},
				{ID: 3003, UserID: ownerID},
			}, nil
		},
	}
	svc := NewBookService(BookServiceConfig{Repo: repo})

	books, err := svc.ListByOwner(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 2 || books[0].ID != 2002 || books[1].ID != 3003 {
		t.Errorf("unexpected books %v", books)
	}
}

func TestBookListByOwner_NoBooks_ReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	svc := NewBookService(BookServiceConfig{Repo: &mockBookRepo{}})

	books, err := svc.ListByOwner(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if books == nil || len(books) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", books)
	}
}
