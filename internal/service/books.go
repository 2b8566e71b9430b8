package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-web/internal/apiclient"
	"github.com/bookshelf/bookshelf-web/internal/model"
)

var ErrTitleAuthorRequired = errors.New("title and author are required")

const (
	MsgTitleAuthorRequired = "Title and author are required"
	MsgLoadFailed          = "Failed to load books"
	MsgSaveFailed          = "Failed to save book"
	MsgDeleteFailed        = "Failed to delete"
)

// BooksAPI is the part of the remote API that manages books.
type BooksAPI interface {
	ListBooks(ctx context.Context, token string, cursor model.Cursor) (model.BookPage, error)
	CreateBook(ctx context.Context, token string, req model.BookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, token, id string, req model.BookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, token, id string) error
}

// BookList is one rendered page of the book list.
type BookList struct {
	Cursor  model.Cursor
	Books   []model.Book
	Shape   model.PageShape
	HasMore bool
	Error   string
}

// Find returns the book with id on this page.
func (l BookList) Find(id string) (model.Book, bool) {
	for _, b := range l.Books {
		if b.ID == id {
			return b, true
		}
	}
	return model.Book{}, false
}

// BookService handles listing and editing books through the remote API.
type BookService struct {
	api      BooksAPI
	pageSize int
}

// NewBookService creates a new BookService that fetches pageSize books at a
// time.
func NewBookService(api BooksAPI, pageSize int) *BookService {
	return &BookService{api: api, pageSize: pageSize}
}

// Cursor builds a list cursor for search and page at the configured page
// size.
func (s *BookService) Cursor(search string, page int) model.Cursor {
	return model.NewCursor(search, page, s.pageSize)
}

// List fetches the page at cursor. A failed fetch yields an empty page with
// Error set; it is never returned as an error.
func (s *BookService) List(ctx context.Context, token string, cursor model.Cursor) BookList {
	page, err := s.api.ListBooks(ctx, token, cursor)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("search", cursor.Search).Int("page", cursor.Page).Msg("list books failed")
		return BookList{
			Cursor: cursor,
			Books:  []model.Book{},
			Shape:  model.ShapeEmpty,
			Error:  apiclient.Message(err, MsgLoadFailed),
		}
	}

	return BookList{
		Cursor:  cursor,
		Books:   page.Books,
		Shape:   page.Shape,
		HasMore: cursor.HasMore(len(page.Books)),
	}
}

// Validate checks the fields the form requires. Whitespace counts as a value.
func Validate(req model.BookRequest) error {
	if req.Title == "" || req.Author == "" {
		return ErrTitleAuthorRequired
	}
	return nil
}

// Save creates the book when id is empty and updates book id otherwise.
// Invalid input is rejected before any request is sent.
func (s *BookService) Save(ctx context.Context, token, id string, req model.BookRequest) error {
	if err := Validate(req); err != nil {
		return err
	}

	var err error
	if id == "" {
		_, err = s.api.CreateBook(ctx, token, req)
	} else {
		_, err = s.api.UpdateBook(ctx, token, id, req)
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("book_id", id).Msg("save book failed")
	}
	return err
}

// Delete removes book id.
func (s *BookService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.DeleteBook(ctx, token, id); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("book_id", id).Msg("delete book failed")
		return err
	}
	return nil
}

// SaveMessage maps a Save error to the text shown next to the form.
func SaveMessage(err error) string {
	if errors.Is(err, ErrTitleAuthorRequired) {
		return MsgTitleAuthorRequired
	}
	return apiclient.Message(err, MsgSaveFailed)
}

// DeleteMessage maps a Delete error to the text shown on the alert screen.
func DeleteMessage(err error) string {
	return apiclient.Message(err, MsgDeleteFailed)
}
