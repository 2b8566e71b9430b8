package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookshelf/bookshelf-web/internal/model"
)

type fakeProfileAPI struct {
	profile model.Profile
	err     error
}

func (f fakeProfileAPI) Me(ctx context.Context, token string) (model.Profile, error) {
	return f.profile, f.err
}

func TestCurrent_FromAPI(t *testing.T) {
	want := model.Profile{ID: "1", Name: "Bilbo", Source: model.ProfileSourceAPI}
	svc := NewProfileService(fakeProfileAPI{profile: want})

	got, err := svc.Current(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestCurrent_FallsBackToToken(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":    "frodo@shire.me",
		"username": "frodo",
		"userId":   7,
	}).SignedString([]byte("someone-elses-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewProfileService(fakeProfileAPI{err: errors.New("404")})
	got, err := svc.Current(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Unverified() {
		t.Error("expected profile to be marked unverified")
	}
	if got.Name != "frodo" || got.Email != "frodo@shire.me" || got.ID != "7" {
		t.Errorf("unexpected profile %+v", got)
	}
}

func TestCurrent_Unavailable(t *testing.T) {
	svc := NewProfileService(fakeProfileAPI{err: errors.New("404")})

	_, err := svc.Current(context.Background(), "not-a-token")
	if !errors.Is(err, ErrProfileUnavailable) {
		t.Errorf("expected ErrProfileUnavailable, got %v", err)
	}
}
