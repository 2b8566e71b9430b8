package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-web/internal/apiclient"
	"github.com/bookshelf/bookshelf-web/internal/session"
)

const maxFormBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseForm reads a POST body, capped at maxFormBytes.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

// currentSession returns the session attached by the Session middleware.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		zerolog.Ctx(r.Context()).Error().Msg("no session in request context")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

// failureStatus picks the status for a re-rendered screen after err. Client
// errors from the API pass through; anything else from upstream is a 502.
func failureStatus(err error, validation ...error) int {
	for _, v := range validation {
		if errors.Is(err, v) {
			return http.StatusUnprocessableEntity
		}
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// parsePage reads a 1-based page number. Anything unparseable is page 1.
func parsePage(v string) int {
	page, err := strconv.Atoi(v)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func seeOther(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
