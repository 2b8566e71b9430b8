package service

import (
	"context"
	"errors"

	"github.com/bookshelf/bookshelf-web/internal/apiclient"
	"github.com/bookshelf/bookshelf-web/internal/model"
)

var (
	ErrCredentialsRequired  = errors.New("email and password are required")
	ErrRegistrationRequired = errors.New("name, email and password are required")
)

const (
	MsgCredentialsRequired  = "Email and password are required"
	MsgRegistrationRequired = "Name, email and password are required"
	MsgLoginFailed          = "Login failed"
	MsgRegistrationFailed   = "Registration failed"
	MsgRegistered           = "Registered successfully. You can now log in."
)

// AuthAPI is the part of the remote API used for signing in and up.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) error
}

// AuthService handles sign-in and registration against the remote API.
type AuthService struct {
	api AuthAPI
}

// NewAuthService creates a new AuthService.
func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for a bearer token. Storing the token is the
// caller's job.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrCredentialsRequired
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account. It never signs the user in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return ErrRegistrationRequired
	}
	return s.api.Register(ctx, req)
}

// LoginMessage maps a Login error to the text shown on the login screen.
func LoginMessage(err error) string {
	if errors.Is(err, ErrCredentialsRequired) {
		return MsgCredentialsRequired
	}
	return apiclient.Message(err, MsgLoginFailed)
}

// RegisterMessage maps a Register error to the text shown on the register
// screen.
func RegisterMessage(err error) string {
	if errors.Is(err, ErrRegistrationRequired) {
		return MsgRegistrationRequired
	}
	return apiclient.Message(err, MsgRegistrationFailed)
}
