package service

import (
	"fmt"
	"strings"

	"github.com/forgo/bookshelf/internal/model"
)

// present reports whether a text field carries a non-blank value
func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// validatePerson enforces the person rule: fullName and title present, age positive
func validatePerson(dto model.PersonDTO) error {
	if !present(dto.FullName) || !present(dto.Title) || dto.Age <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPerson, dto)
	}
	return nil
}

// validateBook enforces the book rule: title and author present, pageCount and owner positive
func validateBook(dto model.BookDTO) error {
	if !present(dto.Title) || !present(dto.Author) || dto.PageCount <= 0 || dto.UserID <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBook, dto)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidID, id)
	}
	return nil
}
