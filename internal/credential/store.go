// Package credential persists the bearer token of one browser across
// requests and reloads. Every backend keys the value under a single cookie.
package credential

import (
	"errors"
	"net/http"
	"time"
)

var ErrNoToken = errors.New("no token stored")

// Store holds one opaque bearer token per browser.
type Store interface {
	// Get returns the stored token or ErrNoToken. Unreadable or tampered
	// values are reported as ErrNoToken.
	Get(r *http.Request) (string, error)
	// Set replaces the stored token.
	Set(w http.ResponseWriter, r *http.Request, token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(w http.ResponseWriter, r *http.Request) error
}

// CookieOptions controls the browser cookie every Store writes.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// DefaultCookieOptions returns a long-lived cookie named "token".
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		Name:   "token",
		MaxAge: 365 * 24 * time.Hour,
	}
}

func (o CookieOptions) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     o.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(o.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (o CookieOptions) expired() *http.Cookie {
	c := o.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

func (o CookieOptions) read(r *http.Request) (string, bool) {
	c, err := r.Cookie(o.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
