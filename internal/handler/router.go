package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookshelf/bookshelf-web/internal/credential"
	"github.com/bookshelf/bookshelf-web/internal/middleware"
)

// Deps is everything the router needs.
type Deps struct {
	Store         credential.Store
	Auth          *AuthHandler
	Books         *BookHandler
	Profile       *ProfileHandler
	AuthRateRPS   float64
	AuthRateBurst int
	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that overwrites them.
	TrustProxy bool
}

// NewRouter builds the browser-facing routes. Background work started for
// the router stops when ctx is done.
func NewRouter(ctx context.Context, d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(d.Store))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			seeOther(w, r, "/books")
		})
		r.Post("/logout", d.Auth.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RedirectIfSession("/books"))
			r.Get("/login", d.Auth.HandleLoginPage)
			r.Get("/register", d.Auth.HandleRegisterPage)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(ctx, d.AuthRateRPS, d.AuthRateBurst, d.Auth.HandleRateLimited))
				r.Post("/login", d.Auth.HandleLogin)
				r.Post("/register", d.Auth.HandleRegister)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession("/login"))
			r.Get("/books", d.Books.HandleList)
			r.Post("/books", d.Books.HandleCreate)
			r.Post("/books/{id}", d.Books.HandleUpdate)
			r.Get("/books/{id}/delete", d.Books.HandleConfirmDelete)
			r.Post("/books/{id}/delete", d.Books.HandleDelete)
			r.Get("/me", d.Profile.HandleMe)
		})
	})

	return r
}
