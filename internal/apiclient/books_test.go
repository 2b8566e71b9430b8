package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bookshelf/bookshelf-web/internal/model"
)

func TestDecodeBookPageShapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		shape model.PageShape
		count int
	}{
		{"bare array", `[{"id":1,"title":"A","author":"B"}]`, model.ShapeArray, 1},
		{"books field", `{"books":[{"id":1,"title":"A","author":"B"},{"id":2,"title":"C","author":"D"}],"total":9}`, model.ShapeBooks, 2},
		{"data field", `{"data":[{"id":1,"title":"A","author":"B"}]}`, model.ShapeData, 1},
		{"books not array falls to data", `{"books":{"count":1},"data":[{"id":1,"title":"A","author":"B"}]}`, model.ShapeData, 1},
		{"books wins over data", `{"books":[],"data":[{"id":1,"title":"A","author":"B"}]}`, model.ShapeBooks, 0},
		{"no array", `{"message":"ok"}`, model.ShapeEmpty, 0},
		{"null", `null`, model.ShapeEmpty, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := DecodeBookPage([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeBookPage() unexpected error: %v", err)
			}
			if page.Shape != tt.shape {
				t.Errorf("Shape = %q, want %q", page.Shape, tt.shape)
			}
			if len(page.Books) != tt.count {
				t.Errorf("len(Books) = %d, want %d", len(page.Books), tt.count)
			}
			if page.Books == nil {
				t.Error("Books is nil, want empty slice")
			}
		})
	}
}

func TestDecodeBookPageInvalid(t *testing.T) {
	if _, err := DecodeBookPage([]byte(`{"books":[`)); err == nil {
		t.Error("DecodeBookPage() expected error for truncated body")
	}
}

func TestListBooksQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "Hobbit" || q.Get("page") != "2" || q.Get("limit") != "5" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok")
		}
		w.Write([]byte(`{"books":[{"id":"b1","title":"The Hobbit","author":"Tolkien"}]}`))
	})

	page, err := c.ListBooks(context.Background(), "tok", model.NewCursor("Hobbit", 2, 5))
	if err != nil {
		t.Fatalf("ListBooks() unexpected error: %v", err)
	}
	if len(page.Books) != 1 || page.Books[0].ID != "b1" {
		t.Errorf("ListBooks() = %+v", page)
	}
}

func TestCreateAndUpdateBook(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		var req model.BookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if req.Title != "Dune" || req.Author != "Herbert" {
			t.Errorf("unexpected body %+v", req)
		}
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":10,"title":"Dune","author":"Herbert"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	req := model.BookRequest{Title: "Dune", Author: "Herbert"}
	created, err := c.CreateBook(context.Background(), "tok", req)
	if err != nil {
		t.Fatalf("CreateBook() unexpected error: %v", err)
	}
	if created.ID != "10" {
		t.Errorf("CreateBook() ID = %q, want %q", created.ID, "10")
	}

	if _, err := c.UpdateBook(context.Background(), "tok", "10", req); err != nil {
		t.Fatalf("UpdateBook() unexpected error: %v", err)
	}

	want := []string{"POST /api/books", "PUT /api/books/10"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestDeleteBookFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/books/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Not your book"}`))
	})

	err := c.DeleteBook(context.Background(), "tok", "7")
	if got := Message(err, "Failed to delete"); got != "Not your book" {
		t.Errorf("Message() = %q, want %q", got, "Not your book")
	}
}
