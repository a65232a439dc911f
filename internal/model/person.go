package model

import "fmt"

// Person is the persisted form of a user
type Person struct {
	ID       int64  `db:"id"`
	FullName string `db:"full_name"`
	Title    string `db:"title"`
	Age      int    `db:"age"`
}

// String renders the record for log lines and error snapshots
func (p Person) String() string {
	return fmt.Sprintf("Person{id=%d, fullName=%q, title=%q, age=%d}", p.ID, p.FullName, p.Title, p.Age)
}

// ToDTO maps a stored person to its transfer form
func (p Person) ToDTO() PersonDTO {
	return PersonDTO{
		ID:       p.ID,
		FullName: p.FullName,
		Title:    p.Title,
		Age:      p.Age,
	}
}

// PersonDTO carries a person between the facade and the person service
type PersonDTO struct {
	ID       int64
	FullName string
	Title    string
	Age      int
}

// String renders the transfer object for log lines and error snapshots
func (d PersonDTO) String() string {
	return fmt.Sprintf("PersonDTO{id=%d, fullName=%q, title=%q, age=%d}", d.ID, d.FullName, d.Title, d.Age)
}

// ToRecord maps the transfer form to the persisted form
func (d PersonDTO) ToRecord() Person {
	return Person{
		ID:       d.ID,
		FullName: d.FullName,
		Title:    d.Title,
		Age:      d.Age,
	}
}

// PersonRequest is the person payload of a create request
type PersonRequest struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
}

// ToDTO maps the wire payload to a transfer object without an id
func (r *PersonRequest) ToDTO() PersonDTO {
	return PersonDTO{
		FullName: r.FullName,
		Title:    r.Title,
		Age:      r.Age,
	}
}

// UpdatePersonRequest is the person payload of an update request
type UpdatePersonRequest struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
}

// ToDTO maps the wire payload to a transfer object keyed by the existing id
func (r *UpdatePersonRequest) ToDTO() PersonDTO {
	return PersonDTO{
		ID:       r.ID,
		FullName: r.FullName,
		Title:    r.Title,
		Age:      r.Age,
	}
}
