package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/okandemir/studentdesk/internal/app/models"
	"github.com/okandemir/studentdesk/internal/app/repositories"
	"github.com/okandemir/studentdesk/internal/pkg/apperrors"
	"github.com/okandemir/studentdesk/internal/pkg/auth"
	"github.com/okandemir/studentdesk/internal/pkg/logger"
)

// AuthService verifies credentials and produces identity claims.
type AuthService interface {
	Authorize(ctx context.Context, email, password string) (*models.IdentityClaim, error)
}

type authService struct {
	userRepo repositories.IUserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.IUserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Authorize resolves an email/password pair into an identity claim. Unknown
// email and wrong password fail identically so the response never reveals
// which factor was wrong. The returned claim carries no password material.
func (s *authService) Authorize(ctx context.Context, email, password string) (*models.IdentityClaim, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewInvalidInputError("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		// Unavailable/internal storage failures pass through unchanged;
		// they are not authentication failures.
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		logger.Debug().Msg("Password verification failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	return &models.IdentityClaim{
		ID:    strconv.FormatInt(user.ID, 10),
		Email: user.Email,
		Name:  user.Name,
	}, nil
}
