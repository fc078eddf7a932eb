package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/okandemir/studentdesk/internal/app/models"
	"github.com/okandemir/studentdesk/internal/pkg/apperrors"
)

// SessionConfig defines session token settings.
type SessionConfig struct {
	SecretKey   string
	Expiration  time.Duration
	TokenIssuer string
}

// SessionService issues and validates the signed, time-bounded session
// tokens that carry an identity claim across requests.
type SessionService struct {
	config SessionConfig
}

// NewSessionService creates a new SessionService.
func NewSessionService(config SessionConfig) *SessionService {
	return &SessionService{config: config}
}

// SessionClaims defines the session token content.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Issue wraps an identity claim into a signed session token.
func (s *SessionService) Issue(identity *models.IdentityClaim) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(s.config.Expiration)

	claims := &SessionClaims{
		UserID: identity.ID,
		Email:  identity.Email,
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   identity.ID,
			ID:        uuid.New().String(),
		},
	}

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = signed.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, expiresAt, nil
}

// Validate re-hydrates the identity claim from a session token. An expired
// or malformed token comes back as ErrTokenExpired / ErrTokenInvalid, which
// the transport layer treats as "no session".
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from an Authorization header.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.ErrTokenInvalid
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}
	return "", apperrors.ErrTokenInvalid
}
