package crypto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookshelf/bookshelf-web/internal/model"
)

var ErrUndecodableToken = errors.New("token payload could not be decoded")

// DecodeUnverified reads the payload segment of a three-part signed token.
// Neither the header nor the signature is looked at: the result is only fit
// for display and must never back an authorization decision.
func DecodeUnverified(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrUndecodableToken
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, ErrUndecodableToken
	}

	claims := jwt.MapClaims{}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil {
		return nil, ErrUndecodableToken
	}
	return claims, nil
}

// ProfileFromToken builds a best-effort profile from the token payload:
// email, name (or username, else "User") and id (or userId).
func ProfileFromToken(token string) (model.Profile, error) {
	claims, err := DecodeUnverified(token)
	if err != nil {
		return model.Profile{}, err
	}

	name := claimString(claims, "name", "username")
	if name == "" {
		name = "User"
	}

	return model.Profile{
		ID:     claimString(claims, "id", "userId"),
		Name:   name,
		Email:  claimString(claims, "email"),
		Source: model.ProfileSourceToken,
	}, nil
}

// claimString returns the first non-empty claim among keys, rendering
// numeric claims in their JSON form.
func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
