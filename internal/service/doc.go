// Package service implements the business logic layer for the bookshelf API.
//
// The service package holds the per-entity validation policy and the
// not-found policy. Services sit between the facade and the storage
// backend and never talk to HTTP.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods validate a transfer object, call the repository and map the record back
//   - Errors are returned as sentinel errors wrapped with the offending snapshot or id
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// PersonRepository and BookRepository are the single storage contract.
// The relational, statement, memory and surreal packages under
// internal/repository each implement both. FindByID returns nil, nil for a
// missing id; the services turn that into ErrPersonNotFound or ErrBookNotFound.
//
// # Error Handling
//
//	var (
//	    ErrInvalidPerson  = errors.New("invalid person")
//	    ErrPersonNotFound = errors.New("person not found")
//	)
//
// # Example Usage
//
//	persons := NewPersonService(PersonServiceConfig{Repo: personRepo})
//	created, err := persons.Create(ctx, model.PersonDTO{
//	    FullName: "Ada Lovelace",
//	    Title:    "Countess",
//	    Age:      36,
//	})
package service
