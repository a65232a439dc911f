package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/facade"
	"github.com/forgo/bookshelf/internal/service"
)

func TestMapServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid person", fmt.Errorf("%w: age must be positive", service.ErrInvalidPerson), http.StatusBadRequest},
		{"invalid book", fmt.Errorf("%w: pageCount must be positive", service.ErrInvalidBook), http.StatusBadRequest},
		{"invalid id", fmt.Errorf("%w: 0", service.ErrInvalidID), http.StatusBadRequest},
		{"person not found", fmt.Errorf("%w: 7", service.ErrPersonNotFound), http.StatusNotFound},
		{"book not found", fmt.Errorf("%w: 9", service.ErrBookNotFound), http.StatusNotFound},
		{"nil request", facade.ErrNilRequest, http.StatusInternalServerError},
		{"connection", fmt.Errorf("%w: dial tcp", database.ErrConnection), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pd := MapServiceError(tt.err)
			if pd.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, pd.Status)
			}
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	t.Parallel()

	if pd := MapServiceError(nil); pd != nil {
		t.Errorf("expected nil, got %v", pd)
	}
}

func TestMapServiceError_NotFound_NamesResource(t *testing.T) {
	t.Parallel()

	pd := MapServiceError(fmt.Errorf("%w: 7", service.ErrBookNotFound))
	if pd.Detail != "book not found" {
		t.Errorf("expected detail 'book not found', got %q", pd.Detail)
	}
}

func TestMapServiceErrorWithContext_HidesInternalCause(t *testing.T) {
	t.Parallel()

	pd := MapServiceErrorWithContext(fmt.Errorf("%w: password authentication failed", database.ErrConnection), "update user")
	if pd.Detail != "update user: an unexpected error occurred" {
		t.Errorf("unexpected detail %q", pd.Detail)
	}
}

func TestMapServiceErrorWithContext_KeepsClientDetail(t *testing.T) {
	t.Parallel()

	pd := MapServiceErrorWithContext(fmt.Errorf("%w: 0", service.ErrInvalidID), "get user")
	if pd.Status != http.StatusBadRequest || pd.Detail == "" {
		t.Errorf("unexpected problem %v", pd)
	}
}
