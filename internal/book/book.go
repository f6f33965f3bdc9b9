package book

import (
	"errors"
)

// ErrNotFound is returned when the upstream has no book with the given id.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity. Fields other than ID are passed through
// to and from the upstream API untouched.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	PageCount   int    `json:"pageCount" validate:"gte=0"`
	Excerpt     string `json:"excerpt,omitempty"`
	PublishDate string `json:"publishDate,omitempty"`
}
