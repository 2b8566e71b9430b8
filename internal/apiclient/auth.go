package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bookshelf/bookshelf-web/internal/model"
)

// ErrMissingToken is returned when a login succeeds without a token field.
var ErrMissingToken = errors.New("login response carried no token")

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	raw, err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", req)
	if err != nil {
		return model.AuthResponse{}, err
	}

	var resp model.AuthResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.AuthResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return model.AuthResponse{}, ErrMissingToken
	}
	return resp, nil
}

// Register creates an account. The response body is not used.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	_, err := c.do(ctx, "register", http.MethodPost, "/api/auth/register", "", req)
	return err
}

// Me fetches the current user's profile. The API may answer with the user
// object itself or wrap it under "user".
func (c *Client) Me(ctx context.Context, token string) (model.Profile, error) {
	raw, err := c.do(ctx, "me", http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return model.Profile{}, err
	}

	var wrapped struct {
		User *model.UserResponse `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return model.Profile{}, fmt.Errorf("decode me response: %w", err)
	}
	if wrapped.User != nil && !wrapped.User.IsZero() {
		return wrapped.User.Profile(), nil
	}

	var flat model.UserResponse
	if err := json.Unmarshal(raw, &flat); err != nil {
		return model.Profile{}, fmt.Errorf("decode me response: %w", err)
	}
	return flat.Profile(), nil
}
