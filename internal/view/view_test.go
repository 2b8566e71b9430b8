package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookshelf/bookshelf-web/internal/model"
)

func render(t *testing.T, name string, page Page) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	rec := httptest.NewRecorder()
	r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, name, page)
	if rec.Code != http.StatusOK {
		t.Fatalf("Render(%s) status = %d", name, rec.Code)
	}
	return rec.Body.String()
}

func TestListURL(t *testing.T) {
	tests := []struct {
		cursor model.Cursor
		edit   string
		want   string
	}{
		{model.NewCursor("", 1, 5), "", "/books"},
		{model.NewCursor("Hobbit", 1, 5), "", "/books?search=Hobbit"},
		{model.NewCursor("Lord of", 2, 5), "", "/books?page=2&search=Lord+of"},
		{model.NewCursor("", 3, 5), "b1", "/books?edit=b1&page=3"},
	}
	for _, tt := range tests {
		if got := ListURL(tt.cursor, tt.edit); got != tt.want {
			t.Errorf("ListURL(%+v, %q) = %q, want %q", tt.cursor, tt.edit, got, tt.want)
		}
	}
}

func TestNewBooksDataPager(t *testing.T) {
	books := []model.Book{{ID: "1", Title: "A", Author: "B"}}

	d := NewBooksData(model.NewCursor("Hobbit", 1, 5), books, true, "", BookForm{})
	if d.PrevURL != "" {
		t.Errorf("PrevURL = %q, want empty on page 1", d.PrevURL)
	}
	if d.NextURL != "/books?page=2&search=Hobbit" {
		t.Errorf("NextURL = %q", d.NextURL)
	}

	d = NewBooksData(model.NewCursor("Hobbit", 2, 5), books, false, "", BookForm{})
	if d.PrevURL != "/books?search=Hobbit" {
		t.Errorf("PrevURL = %q", d.PrevURL)
	}
	if d.NextURL != "" {
		t.Errorf("NextURL = %q, want empty for a short page", d.NextURL)
	}
	if got := d.Rows[0].DeleteURL; got != "/books/1/delete?page=2&search=Hobbit" {
		t.Errorf("DeleteURL = %q", got)
	}
}

func TestBookFormAction(t *testing.T) {
	if got := (BookForm{}).Action(); got != "/books" {
		t.Errorf("create Action() = %q", got)
	}
	if got := (BookForm{Editing: true, ID: "a/b"}).Action(); got != "/books/a%2Fb" {
		t.Errorf("edit Action() = %q", got)
	}
}

func TestRenderBooksEscapesDescription(t *testing.T) {
	desc := `<b>bold</b> <script>x()</script>`
	books := []model.Book{{ID: "1", Title: "Dune", Author: "Herbert", Description: desc}}
	body := render(t, "books", Page{
		Title:         "Books",
		Authenticated: true,
		Data:          NewBooksData(model.NewCursor("", 1, 5), books, false, "", BookForm{}),
	})

	if strings.Contains(body, "<b>bold</b>") || strings.Contains(body, "<script>") {
		t.Error("description rendered as markup")
	}
	want := "&lt;b&gt;bold&lt;/b&gt; &lt;script&gt;x()&lt;/script&gt;"
	if !strings.Contains(body, want) {
		t.Errorf("description not shown as literal text, want %q in body", want)
	}
	if !strings.Contains(body, "Save Book") {
		t.Error("expected create-mode button")
	}
	if !strings.Contains(body, `action="/logout"`) {
		t.Error("expected logout form for an authenticated page")
	}
}

func TestRenderDescriptionMatchesForm(t *testing.T) {
	desc := `<i>first</i> & "second"`
	book := model.Book{ID: "1", Title: "Dune", Author: "Herbert", Description: desc}
	form := BookForm{Editing: true, ID: "1", Title: book.Title, Author: book.Author, Description: desc}
	body := render(t, "books", Page{
		Title:         "Books",
		Authenticated: true,
		Data:          NewBooksData(model.NewCursor("", 1, 5), []model.Book{book}, false, "", form),
	})

	escaped := "&lt;i&gt;first&lt;/i&gt; &amp; &#34;second&#34;"
	if n := strings.Count(body, escaped); n != 2 {
		t.Errorf("escaped description appears %d times, want 2 (list and form)", n)
	}
}

func TestRenderBooksEditMode(t *testing.T) {
	form := BookForm{Editing: true, ID: "9", Title: "Emma", Author: "Austen"}
	body := render(t, "books", Page{
		Title:         "Books",
		Authenticated: true,
		Data:          NewBooksData(model.NewCursor("", 1, 5), nil, false, "Failed to load books", form),
	})

	for _, want := range []string{"Edit Book", "Update Book", "Cancel edit", `value="Emma"`, "Failed to load books", "No books found."} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderProfile(t *testing.T) {
	body := render(t, "me", Page{
		Title:         "User Details",
		Authenticated: true,
		Data: ProfileData{Profile: model.Profile{
			ID:        "7",
			Email:     "frodo@shire.me",
			CreatedAt: "2024-03-05T10:00:00Z",
			Source:    model.ProfileSourceToken,
		}},
	})

	for _, want := range []string{"User", "frodo@shire.me", "Not provided", "User ID", "Member Since", "2024-03-05", "Unverified"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered profile missing %q", want)
		}
	}
}

func TestRenderProfileError(t *testing.T) {
	body := render(t, "me", Page{Title: "User Details", Authenticated: true, Data: ProfileData{Error: "Unable to fetch user details"}})
	if !strings.Contains(body, "Unable to fetch user details") {
		t.Error("expected error text")
	}
	if strings.Contains(body, "Member Since") {
		t.Error("error page should not render profile fields")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	rec := httptest.NewRecorder()
	r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", Page{})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
