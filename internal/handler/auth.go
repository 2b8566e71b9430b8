package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-web/internal/model"
	"github.com/bookshelf/bookshelf-web/internal/service"
	"github.com/bookshelf/bookshelf-web/internal/view"
)

const msgTooManyAttempts = "Too many attempts. Please wait a moment and try again."

// AuthHandler serves the login, register and logout routes.
type AuthHandler struct {
	service *service.AuthService
	view    *view.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, v *view.Renderer) *AuthHandler {
	return &AuthHandler{service: svc, view: v}
}

// HandleLoginPage handles GET /login.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := view.LoginData{}
	if r.URL.Query().Get("registered") == "1" {
		data.Notice = service.MsgRegistered
	}
	h.renderLogin(w, r, http.StatusOK, data)
}

// HandleLogin handles POST /login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok || !parseForm(w, r) {
		return
	}

	req := model.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.renderLogin(w, r, failureStatus(err, service.ErrCredentialsRequired), view.LoginData{
			Email: req.Email,
			Error: service.LoginMessage(err),
		})
		return
	}

	if err := s.Login(w, r, token); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("persist session")
		h.renderLogin(w, r, http.StatusInternalServerError, view.LoginData{
			Email: req.Email,
			Error: service.MsgLoginFailed,
		})
		return
	}

	seeOther(w, r, "/books")
}

// HandleRegisterPage handles GET /register.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, http.StatusOK, view.RegisterData{})
}

// HandleRegister handles POST /register. Success leads to the login screen,
// never to a signed-in session.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := model.RegisterRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		h.renderRegister(w, r, failureStatus(err, service.ErrRegistrationRequired), view.RegisterData{
			Name:  req.Name,
			Email: req.Email,
			Error: service.RegisterMessage(err),
		})
		return
	}

	seeOther(w, r, "/login?registered=1")
}

// HandleLogout handles POST /logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.Logout(w, r); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("clear session")
	}
	seeOther(w, r, "/login")
}

// HandleRateLimited answers requests rejected by the auth rate limiter.
func (h *AuthHandler) HandleRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "1")
	h.view.Render(w, r, http.StatusTooManyRequests, "alert", view.Page{
		Title: "Slow down",
		Data:  view.AlertData{Message: msgTooManyAttempts, BackURL: r.URL.Path},
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data view.LoginData) {
	h.view.Render(w, r, status, "login", view.Page{Title: "Login", Active: "login", Data: data})
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, status int, data view.RegisterData) {
	h.view.Render(w, r, status, "register", view.Page{Title: "Register", Active: "register", Data: data})
}
