package handler

import (
	"errors"
	"net/http"

	"github.com/forgo/bookshelf/internal/facade"
	"github.com/forgo/bookshelf/internal/model"
	"github.com/forgo/bookshelf/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrPersonNotFound):
		return model.NewNotFoundError("person")
	case errors.Is(err, service.ErrBookNotFound):
		return model.NewNotFoundError("book")

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrInvalidPerson):
		return model.NewValidationError([]model.FieldError{{Field: "userRequest", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidBook):
		return model.NewValidationError([]model.FieldError{{Field: "bookRequests", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidID):
		return model.NewBadRequestError(err.Error())

	// ===== Programming Errors → 500 =====
	case errors.Is(err, facade.ErrNilRequest):
		return model.NewInternalError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == http.StatusInternalServerError && !errors.Is(err, facade.ErrNilRequest) {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
