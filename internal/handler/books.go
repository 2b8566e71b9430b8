package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/bookshelf/bookshelf-web/internal/model"
	"github.com/bookshelf/bookshelf-web/internal/service"
	"github.com/bookshelf/bookshelf-web/internal/view"
)

const msgConfirmDelete = "Delete this book?"

// BookHandler serves the book list, its form and the delete flow.
type BookHandler struct {
	service *service.BookService
	view    *view.Renderer
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService, v *view.Renderer) *BookHandler {
	return &BookHandler{service: svc, view: v}
}

// HandleList handles GET /books. A submitted search box (q) replaces the
// current search and, when the term changed, goes back to page 1.
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	cursor := h.cursor(query.Get)
	if query.Has("q") {
		cursor = cursor.WithSearch(query.Get("q"))
	}

	list := h.service.List(r.Context(), s.Token(), cursor)

	form := view.BookForm{}
	if id := query.Get("edit"); id != "" {
		if b, found := list.Find(id); found {
			form = view.BookForm{
				Editing:     true,
				ID:          b.ID,
				Title:       b.Title,
				Author:      b.Author,
				Description: b.Description,
			}
		}
	}

	h.renderList(w, r, http.StatusOK, list, form)
}

// HandleCreate handles POST /books.
func (h *BookHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// HandleUpdate handles POST /books/{id}.
func (h *BookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *BookHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := currentSession(w, r)
	if !ok || !parseForm(w, r) {
		return
	}

	cursor := h.cursor(r.PostFormValue)
	req := model.BookRequest{
		Title:       r.PostFormValue("title"),
		Author:      r.PostFormValue("author"),
		Description: r.PostFormValue("description"),
	}

	if err := h.service.Save(r.Context(), s.Token(), id, req); err != nil {
		list := h.service.List(r.Context(), s.Token(), cursor)
		h.renderList(w, r, failureStatus(err, service.ErrTitleAuthorRequired), list, view.BookForm{
			Editing:     id != "",
			ID:          id,
			Title:       req.Title,
			Author:      req.Author,
			Description: req.Description,
			Error:       service.SaveMessage(err),
		})
		return
	}

	seeOther(w, r, view.ListURL(cursor, ""))
}

// HandleConfirmDelete handles GET /books/{id}/delete.
func (h *BookHandler) HandleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	cursor := h.cursor(r.URL.Query().Get)
	h.view.Render(w, r, http.StatusOK, "confirm", view.Page{
		Title:         "Delete book",
		Active:        "books",
		Authenticated: true,
		Data: view.ConfirmData{
			Message:   msgConfirmDelete,
			Action:    "/books/" + url.PathEscape(chi.URLParam(r, "id")) + "/delete",
			Search:    cursor.Search,
			Page:      cursor.Page,
			CancelURL: view.ListURL(cursor, ""),
		},
	})
}

// HandleDelete handles POST /books/{id}/delete. Without confirm=yes nothing
// is sent to the API.
func (h *BookHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok || !parseForm(w, r) {
		return
	}

	cursor := h.cursor(r.PostFormValue)
	back := view.ListURL(cursor, "")

	if r.PostFormValue("confirm") != "yes" {
		seeOther(w, r, back)
		return
	}

	if err := h.service.Delete(r.Context(), s.Token(), chi.URLParam(r, "id")); err != nil {
		h.view.Render(w, r, failureStatus(err), "alert", view.Page{
			Title:         "Delete failed",
			Active:        "books",
			Authenticated: true,
			Data:          view.AlertData{Message: service.DeleteMessage(err), BackURL: back},
		})
		return
	}

	seeOther(w, r, back)
}

// cursor reads the list position carried by a query string or form.
func (h *BookHandler) cursor(get func(string) string) model.Cursor {
	return h.service.Cursor(get("search"), parsePage(get("page")))
}

func (h *BookHandler) renderList(w http.ResponseWriter, r *http.Request, status int, list service.BookList, form view.BookForm) {
	h.view.Render(w, r, status, "books", view.Page{
		Title:         "Books",
		Active:        "books",
		Authenticated: true,
		Data:          view.NewBooksData(list.Cursor, list.Books, list.HasMore, list.Error, form),
	})
}
