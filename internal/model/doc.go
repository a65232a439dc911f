// Package model defines the entities and wire types of the bookshelf API.
//
// Each entity exists in three shapes:
//
//   - Records (Person, Book): the persisted form, tagged for sqlx with db tags
//   - Transfer objects (PersonDTO, BookDTO): passed between facade and services
//   - Requests (PersonRequest, UpdateBookRequest, ...): decoded from JSON bodies
//
// Mapping is explicit (ToDTO, ToRecord) and never validates; validation
// belongs to the services.
//
// # Composite Types
//
// PersonBooksRequest and UpdatePersonBooksRequest carry one person and any
// number of books. PersonBooksResponse is the only success body:
//
//	{"userId": 1001, "booksIdList": [2002, 3003]}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
