package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/studentdesk/internal/app/models"
	"github.com/okandemir/studentdesk/internal/pkg/apperrors"
	"github.com/okandemir/studentdesk/internal/pkg/auth"
)

// stubUserRepo serves a single fixed user.
type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func newStubRepo(t *testing.T, email, password string) *stubUserRepo {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &stubUserRepo{user: &models.User{
		ID:       7,
		Email:    email,
		Password: hash,
		Name:     "Administrator",
	}}
}

func TestAuthService_Authorize_Success(t *testing.T) {
	svc := NewAuthService(newStubRepo(t, "admin@example.com", "admin123"))

	claim, err := svc.Authorize(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "7", claim.ID)
	assert.Equal(t, "admin@example.com", claim.Email)
	assert.Equal(t, "Administrator", claim.Name)
}

func TestAuthService_Authorize_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubRepo(t, "admin@example.com", "admin123"))

	for _, tc := range []struct{ email, password string }{
		{"", "admin123"},
		{"admin@example.com", ""},
		{"", ""},
	} {
		_, err := svc.Authorize(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
}

func TestAuthService_Authorize_UniformFailure(t *testing.T) {
	svc := NewAuthService(newStubRepo(t, "admin@example.com", "admin123"))

	_, wrongPassword := claimAndErr(svc, "admin@example.com", "wrong")
	_, unknownUser := claimAndErr(svc, "nobody@x.com", "admin123")

	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, apperrors.ErrInvalidCredentials)
	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestAuthService_Authorize_StorageFailurePassesThrough(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{err: apperrors.NewUnavailableError("down")})

	_, err := svc.Authorize(context.Background(), "admin@example.com", "admin123")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func claimAndErr(svc AuthService, email, password string) (*models.IdentityClaim, error) {
	return svc.Authorize(context.Background(), email, password)
}
