// Package session holds the client's belief about who is signed in for the
// duration of one browser request.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-web/internal/credential"
)

var ErrEmptyToken = errors.New("cannot start a session with an empty token")

// Session is either anonymous or authenticated with a bearer token. Login
// and Logout are the only ways to change it.
type Session struct {
	store credential.Store
	token string
}

// Restore loads the persisted token, if any. The token is trusted as-is:
// nothing here checks expiry or asks the remote API.
func Restore(r *http.Request, store credential.Store) *Session {
	s := &Session{store: store}

	token, err := store.Get(r)
	switch {
	case err == nil:
		s.token = token
	case errors.Is(err, credential.ErrNoToken):
	default:
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("credential store unavailable, continuing anonymous")
	}
	return s
}

// Token returns the bearer token, or "" when anonymous.
func (s *Session) Token() string {
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.token != ""
}

// Login records token in memory and in the credential store.
func (s *Session) Login(w http.ResponseWriter, r *http.Request, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.store.Set(w, r, token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Logout forgets the token in memory and in the credential store.
func (s *Session) Logout(w http.ResponseWriter, r *http.Request) error {
	s.token = ""
	return s.store.Clear(w, r)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session attached by the session middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
