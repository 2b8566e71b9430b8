package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrInvalidSeal = errors.New("sealed value is malformed or was not sealed with this key")

// KeyParams configures the Argon2id derivation of the sealing key.
type KeyParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	Salt        string
}

// DefaultKeyParams returns the Argon2id parameters used for cookie keys.
// The salt is fixed so the same secret yields the same key across restarts.
func DefaultKeyParams() KeyParams {
	return KeyParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		Salt:        "bookshelf-web/cookie-key/v1",
	}
}

// Sealer encrypts and authenticates small values with NaCl secretbox.
type Sealer struct {
	key [32]byte
}

// NewSealer derives a sealing key from secret using DefaultKeyParams.
func NewSealer(secret string) *Sealer {
	return NewSealerWithParams(secret, DefaultKeyParams())
}

// NewSealerWithParams derives a sealing key from secret using params.
func NewSealerWithParams(secret string, params KeyParams) *Sealer {
	s := &Sealer{}
	derived := argon2.IDKey([]byte(secret), []byte(params.Salt), params.Iterations, params.Memory, params.Parallelism, 32)
	copy(s.key[:], derived)
	return s
}

// Seal encrypts plaintext and returns it URL-safe base64 encoded with the
// nonce prepended.
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (s *Sealer) Open(encoded string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrInvalidSeal
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrInvalidSeal
	}
	return plaintext, nil
}
