// Package handler provides the HTTP surface of the bookshelf API.
//
// UserHandler serves the four person-with-books endpoints on top of the
// facade. NewRouter wires them onto a chi router together with the health
// and metrics endpoints and the global middleware chain.
//
// # Response Format
//
// Successful calls write the bare response object:
//
//	{"userId": 1001, "booksIdList": [2002, 3003]}
//
// Delete answers 200 with an empty body. Failures are RFC 9457 Problem
// Details (application/problem+json) produced by MapServiceError:
//
//   - invalid person, book or id: 400
//   - missing person or book: 404
//   - anything else: 500
//
// # Example Usage
//
//	users := NewUserHandler(facade.New(facade.Config{Persons: persons, Books: books}))
//	router := NewRouter(RouterConfig{Users: users})
//	http.ListenAndServe(":8080", router)
package handler
