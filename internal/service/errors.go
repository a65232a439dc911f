package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Validation Errors =====
var (
	ErrInvalidPerson = errors.New("invalid person")
	ErrInvalidBook   = errors.New("invalid book")
	ErrInvalidID     = errors.New("id must be positive")
)

// ===== Lookup Errors =====
var (
	ErrPersonNotFound = errors.New("person not found")
	ErrBookNotFound   = errors.New("book not found")
)
