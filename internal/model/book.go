package model

import "fmt"

// Book is the persisted form of a book owned by a person
type Book struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	Title     string `db:"title"`
	Author    string `db:"author"`
	PageCount int    `db:"page_count"`
}

// String renders the record for log lines and error snapshots
func (b Book) String() string {
	return fmt.Sprintf("Book{id=%d, userId=%d, title=%q, author=%q, pageCount=%d}",
		b.ID, b.UserID, b.Title, b.Author, b.PageCount)
}

// ToDTO maps a stored book to its transfer form
func (b Book) ToDTO() BookDTO {
	return BookDTO{
		ID:        b.ID,
		UserID:    b.UserID,
		Title:     b.Title,
		Author:    b.Author,
		PageCount: b.PageCount,
	}
}

// BookDTO carries a book between the facade and the book service
type BookDTO struct {
	ID        int64
	UserID    int64
	Title     string
	Author    string
	PageCount int
}

// String renders the transfer object for log lines and error snapshots
func (d BookDTO) String() string {
	return fmt.Sprintf("BookDTO{id=%d, userId=%d, title=%q, author=%q, pageCount=%d}",
		d.ID, d.UserID, d.Title, d.Author, d.PageCount)
}

// ToRecord maps the transfer form to the persisted form
func (d BookDTO) ToRecord() Book {
	return Book{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Author:    d.Author,
		PageCount: d.PageCount,
	}
}

// BookRequest is one book payload of a create request.
// The owner is stamped by the facade once the person exists.
type BookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"pageCount"`
}

// ToDTO maps the wire payload to a transfer object without id or owner
func (r *BookRequest) ToDTO() BookDTO {
	return BookDTO{
		Title:     r.Title,
		Author:    r.Author,
		PageCount: r.PageCount,
	}
}

// UpdateBookRequest is one book payload of an update request
type UpdateBookRequest struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"pageCount"`
}

// ToDTO maps the wire payload to a transfer object keyed by the existing id
func (r *UpdateBookRequest) ToDTO() BookDTO {
	return BookDTO{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		PageCount: r.PageCount,
	}
}
