package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-web/internal/crypto"
	"github.com/bookshelf/bookshelf-web/internal/model"
)

var ErrProfileUnavailable = errors.New("user details unavailable")

const MsgProfileUnavailable = "Unable to fetch user details"

// ProfileAPI is the part of the remote API that describes the current user.
type ProfileAPI interface {
	Me(ctx context.Context, token string) (model.Profile, error)
}

// ProfileService resolves the signed-in user's details.
type ProfileService struct {
	api ProfileAPI
}

// NewProfileService creates a new ProfileService.
func NewProfileService(api ProfileAPI) *ProfileService {
	return &ProfileService{api: api}
}

// Current asks the API for the user's profile. When that fails for any
// reason it falls back to the token's unverified payload, and the returned
// profile is marked as such.
func (s *ProfileService) Current(ctx context.Context, token string) (model.Profile, error) {
	logger := zerolog.Ctx(ctx)

	profile, err := s.api.Me(ctx, token)
	if err == nil {
		return profile, nil
	}
	logger.Warn().Err(err).Msg("current user lookup failed, decoding token")

	profile, decodeErr := crypto.ProfileFromToken(token)
	if decodeErr != nil {
		logger.Warn().Err(decodeErr).Msg("token payload undecodable")
		return model.Profile{}, ErrProfileUnavailable
	}
	return profile, nil
}
