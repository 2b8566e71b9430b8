package credential

import (
	"fmt"
	"net/http"

	"github.com/bookshelf/bookshelf-web/internal/crypto"
)

// CookieStore keeps the token itself in the browser, sealed so the cookie
// can be neither read nor forged client-side.
type CookieStore struct {
	sealer *crypto.Sealer
	opts   CookieOptions
}

// NewCookieStore creates a CookieStore.
func NewCookieStore(sealer *crypto.Sealer, opts CookieOptions) *CookieStore {
	return &CookieStore{sealer: sealer, opts: opts}
}

func (s *CookieStore) Get(r *http.Request) (string, error) {
	value, ok := s.opts.read(r)
	if !ok {
		return "", ErrNoToken
	}
	token, err := s.sealer.Open(value)
	if err != nil || len(token) == 0 {
		return "", ErrNoToken
	}
	return string(token), nil
}

func (s *CookieStore) Set(w http.ResponseWriter, r *http.Request, token string) error {
	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	http.SetCookie(w, s.opts.cookie(sealed))
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, s.opts.expired())
	return nil
}
