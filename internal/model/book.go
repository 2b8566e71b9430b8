package model

import (
	"bytes"
	"encoding/json"
)

// Book represents a book record owned by the remote API.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts numeric or string identifiers under "id" or "_id".
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		MongoID     json.RawMessage `json:"_id"`
		Title       string          `json:"title"`
		Author      string          `json:"author"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := raw.ID
	if len(id) == 0 || bytes.Equal(id, []byte("null")) {
		id = raw.MongoID
	}

	b.ID = rawID(id)
	b.Title = raw.Title
	b.Author = raw.Author
	b.Description = raw.Description
	return nil
}

// BookRequest is the body sent when creating or updating a book.
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// PageShape records which server encoding a book list arrived in.
type PageShape string

const (
	ShapeArray PageShape = "array"
	ShapeBooks PageShape = "books"
	ShapeData  PageShape = "data"
	ShapeEmpty PageShape = "empty"
)

// BookPage is the canonical list result handed to screens regardless of how
// the server wrapped it.
type BookPage struct {
	Books []Book
	Shape PageShape
}

// Cursor tracks the search term and page of the book list.
type Cursor struct {
	Search string
	Page   int
	Limit  int
}

// NewCursor returns a cursor normalised to page 1 or later.
func NewCursor(search string, page, limit int) Cursor {
	if page < 1 {
		page = 1
	}
	return Cursor{Search: search, Page: page, Limit: limit}
}

// WithSearch returns the cursor for a new search term. A changed term always
// restarts at page 1.
func (c Cursor) WithSearch(term string) Cursor {
	if term == c.Search {
		return c
	}
	return Cursor{Search: term, Page: 1, Limit: c.Limit}
}

// Next returns the cursor for the following page.
func (c Cursor) Next() Cursor {
	c.Page++
	return c
}

// Prev returns the cursor for the preceding page, never going below 1.
func (c Cursor) Prev() Cursor {
	if c.Page > 1 {
		c.Page--
	}
	return c
}

// HasMore reports whether another page probably exists. A full page is taken
// to mean more results follow; it is wrong when the last page is exactly full.
func (c Cursor) HasMore(returned int) bool {
	return c.Limit > 0 && returned == c.Limit
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
