package model

import (
	"encoding/json"
	"time"
)

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body returned by a successful login.
type AuthResponse struct {
	Token string `json:"token"`
}

// ProfileSource tells where a profile's fields came from.
type ProfileSource string

const (
	// ProfileSourceAPI marks a profile returned by the current-user endpoint.
	ProfileSourceAPI ProfileSource = "api"
	// ProfileSourceToken marks a profile read from the bearer token payload
	// without signature verification. Display only.
	ProfileSourceToken ProfileSource = "token"
)

// Profile is the read-only view of the signed-in user.
type Profile struct {
	ID        string
	Name      string
	Email     string
	CreatedAt string
	Source    ProfileSource
}

// Unverified reports whether the profile was decoded from the token.
func (p Profile) Unverified() bool {
	return p.Source == ProfileSourceToken
}

// MemberSince parses CreatedAt, reporting false when absent or unparseable.
func (p Profile) MemberSince() (time.Time, bool) {
	if p.CreatedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, p.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UserResponse mirrors the user object served by the current-user endpoint.
type UserResponse struct {
	ID        json.RawMessage `json:"id"`
	MongoID   json.RawMessage `json:"_id"`
	Name      string          `json:"name"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	CreatedAt string          `json:"createdAt"`
	Created   string          `json:"created_at"`
}

// Profile converts the response into a Profile sourced from the API.
func (u UserResponse) Profile() Profile {
	id := rawID(u.ID)
	if id == "" {
		id = rawID(u.MongoID)
	}
	name := u.Name
	if name == "" {
		name = u.Username
	}
	created := u.CreatedAt
	if created == "" {
		created = u.Created
	}
	return Profile{
		ID:        id,
		Name:      name,
		Email:     u.Email,
		CreatedAt: created,
		Source:    ProfileSourceAPI,
	}
}

// IsZero reports whether no identifying field was present.
func (u UserResponse) IsZero() bool {
	return rawID(u.ID) == "" && rawID(u.MongoID) == "" && u.Name == "" && u.Username == "" && u.Email == ""
}
