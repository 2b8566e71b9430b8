package handler

import (
	"net/http"

	"github.com/bookshelf/bookshelf-web/internal/service"
	"github.com/bookshelf/bookshelf-web/internal/view"
)

// ProfileHandler serves the user details screen.
type ProfileHandler struct {
	service *service.ProfileService
	view    *view.Renderer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, v *view.Renderer) *ProfileHandler {
	return &ProfileHandler{service: svc, view: v}
}

// HandleMe handles GET /me.
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	data := view.ProfileData{}
	profile, err := h.service.Current(r.Context(), s.Token())
	if err != nil {
		status = http.StatusBadGateway
		data.Error = service.MsgProfileUnavailable
	} else {
		data.Profile = profile
	}

	h.view.Render(w, r, status, "me", view.Page{
		Title:         "User Details",
		Active:        "me",
		Authenticated: true,
		Data:          data,
	})
}
