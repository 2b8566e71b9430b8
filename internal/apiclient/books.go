package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bookshelf/bookshelf-web/internal/model"
)

// ListBooks fetches one page of books matching cursor.Search.
func (c *Client) ListBooks(ctx context.Context, token string, cursor model.Cursor) (model.BookPage, error) {
	q := url.Values{}
	q.Set("search", cursor.Search)
	q.Set("page", strconv.Itoa(cursor.Page))
	q.Set("limit", strconv.Itoa(cursor.Limit))

	raw, err := c.do(ctx, "list_books", http.MethodGet, "/api/books?"+q.Encode(), token, nil)
	if err != nil {
		return model.BookPage{}, err
	}
	return DecodeBookPage(raw)
}

// CreateBook creates a book. The created record is returned when the API
// echoes it back; an empty or unrecognised success body yields a zero Book.
func (c *Client) CreateBook(ctx context.Context, token string, req model.BookRequest) (model.Book, error) {
	raw, err := c.do(ctx, "create_book", http.MethodPost, "/api/books", token, req)
	if err != nil {
		return model.Book{}, err
	}
	return echoedBook(raw), nil
}

// UpdateBook replaces the fields of book id.
func (c *Client) UpdateBook(ctx context.Context, token, id string, req model.BookRequest) (model.Book, error) {
	raw, err := c.do(ctx, "update_book", http.MethodPut, "/api/books/"+url.PathEscape(id), token, req)
	if err != nil {
		return model.Book{}, err
	}
	return echoedBook(raw), nil
}

// DeleteBook removes book id.
func (c *Client) DeleteBook(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, "delete_book", http.MethodDelete, "/api/books/"+url.PathEscape(id), token, nil)
	return err
}

// DecodeBookPage normalises the list encodings the API is known to use: a
// bare array, or an object carrying the array under "books" or "data". The
// first candidate that is an array wins; anything else is an empty page.
func DecodeBookPage(raw []byte) (model.BookPage, error) {
	raw = bytes.TrimSpace(raw)
	if isArray(raw) {
		books, err := decodeBooks(raw)
		if err != nil {
			return model.BookPage{}, err
		}
		return model.BookPage{Books: books, Shape: model.ShapeArray}, nil
	}

	empty := model.BookPage{Books: []model.Book{}, Shape: model.ShapeEmpty}
	if len(raw) == 0 || raw[0] != '{' {
		return empty, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return model.BookPage{}, fmt.Errorf("decode book list: %w", err)
	}

	for _, key := range []model.PageShape{model.ShapeBooks, model.ShapeData} {
		field := bytes.TrimSpace(envelope[string(key)])
		if !isArray(field) {
			continue
		}
		books, err := decodeBooks(field)
		if err != nil {
			return model.BookPage{}, err
		}
		return model.BookPage{Books: books, Shape: key}, nil
	}
	return empty, nil
}

func decodeBooks(raw []byte) ([]model.Book, error) {
	books := []model.Book{}
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("decode book list: %w", err)
	}
	return books, nil
}

func echoedBook(raw []byte) model.Book {
	var b model.Book
	if err := json.Unmarshal(raw, &b); err != nil {
		return model.Book{}
	}
	return b
}

func isArray(raw []byte) bool {
	return len(raw) > 0 && raw[0] == '['
}
