package model

// PersonBooksRequest is the body of POST /user/create.
// Entries of BookRequests may be null; they are dropped before mapping.
type PersonBooksRequest struct {
	UserRequest  *PersonRequest `json:"userRequest"`
	BookRequests []*BookRequest `json:"bookRequests"`
}

// Validate checks the shape of the request; field rules are enforced by the services
func (r *PersonBooksRequest) Validate() []FieldError {
	var errors []FieldError
	if r.UserRequest == nil {
		errors = append(errors, FieldError{
			Field:   "userRequest",
			Message: "userRequest is required",
		})
	}
	return errors
}

// UpdatePersonBooksRequest is the body of PUT /user/update
type UpdatePersonBooksRequest struct {
	UserRequest  *UpdatePersonRequest `json:"userRequest"`
	BookRequests []*UpdateBookRequest `json:"bookRequests"`
}

// Validate checks the shape of the request; field rules are enforced by the services
func (r *UpdatePersonBooksRequest) Validate() []FieldError {
	var errors []FieldError
	if r.UserRequest == nil {
		errors = append(errors, FieldError{
			Field:   "userRequest",
			Message: "userRequest is required",
		})
	} else if r.UserRequest.ID <= 0 {
		errors = append(errors, FieldError{
			Field:   "userRequest.id",
			Message: "id must be positive",
		})
	}
	return errors
}

// PersonBooksResponse is returned by the create, update and get endpoints
type PersonBooksResponse struct {
	UserID      int64   `json:"userId"`
	BooksIDList []int64 `json:"booksIdList"`
}
