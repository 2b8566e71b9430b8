// Package view renders the browser screens from embedded html/template
// files.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-web/internal/model"
)

//go:embed templates/*.html
var files embed.FS

var pageNames = []string{"login", "register", "books", "confirm", "alert", "me"}

// Page is the data every screen receives. Data holds the screen-specific
// struct.
type Page struct {
	Title         string
	Active        string
	Authenticated bool
	Data          any
}

// Renderer holds one parsed template set per screen.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"date": func(p model.Profile) string {
			t, ok := p.MemberSince()
			if !ok {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"fallback": func(s, fallback string) string {
			if s == "" {
				return fallback
			}
			return s
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes screen name with the given status. The page is rendered into
// a buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		zerolog.Ctx(req.Context()).Error().Str("template", name).Msg("unknown template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		zerolog.Ctx(req.Context()).Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// ListURL is the address of the book list at cursor, optionally with a book
// open in the form.
func ListURL(cursor model.Cursor, edit string) string {
	q := url.Values{}
	if cursor.Search != "" {
		q.Set("search", cursor.Search)
	}
	if cursor.Page > 1 {
		q.Set("page", strconv.Itoa(cursor.Page))
	}
	if edit != "" {
		q.Set("edit", edit)
	}
	if len(q) == 0 {
		return "/books"
	}
	return "/books?" + q.Encode()
}

// LoginData backs the login screen.
type LoginData struct {
	Email  string
	Error  string
	Notice string
}

// RegisterData backs the register screen.
type RegisterData struct {
	Name  string
	Email string
	Error string
}

// BookForm is the create/edit form embedded in the book list.
type BookForm struct {
	Editing     bool
	ID          string
	Title       string
	Author      string
	Description string
	Error       string
}

// Action is the form's submit target.
func (f BookForm) Action() string {
	if f.Editing {
		return "/books/" + url.PathEscape(f.ID)
	}
	return "/books"
}

// BookRow is one book in the list with its action links.
type BookRow struct {
	model.Book
	EditURL   string
	DeleteURL string
}

// BooksData backs the book list screen.
type BooksData struct {
	Search    string
	Page      int
	Rows      []BookRow
	Error     string
	PrevURL   string
	NextURL   string
	CancelURL string
	Form      BookForm
}

// NewBooksData lays out a fetched page at cursor.
func NewBooksData(cursor model.Cursor, books []model.Book, hasMore bool, listErr string, form BookForm) BooksData {
	d := BooksData{
		Search:    cursor.Search,
		Page:      cursor.Page,
		Rows:      make([]BookRow, 0, len(books)),
		Error:     listErr,
		CancelURL: ListURL(cursor, ""),
		Form:      form,
	}

	back := url.Values{}
	back.Set("search", cursor.Search)
	back.Set("page", strconv.Itoa(cursor.Page))
	for _, b := range books {
		d.Rows = append(d.Rows, BookRow{
			Book:      b,
			EditURL:   ListURL(cursor, b.ID),
			DeleteURL: "/books/" + url.PathEscape(b.ID) + "/delete?" + back.Encode(),
		})
	}

	if cursor.Page > 1 {
		d.PrevURL = ListURL(cursor.Prev(), "")
	}
	if hasMore {
		d.NextURL = ListURL(cursor.Next(), "")
	}
	return d
}

// ConfirmData backs the delete confirmation screen.
type ConfirmData struct {
	Message   string
	Action    string
	Search    string
	Page      int
	CancelURL string
}

// AlertData backs the blocking alert screen.
type AlertData struct {
	Message string
	BackURL string
}

// ProfileData backs the user details screen.
type ProfileData struct {
	Profile model.Profile
	Error   string
}
