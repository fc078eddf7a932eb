package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/studentdesk/internal/app/models/dto"
	"github.com/okandemir/studentdesk/internal/pkg/apperrors"
	"github.com/okandemir/studentdesk/internal/pkg/auth"
)

// Context keys populated by SessionAuth.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextName   = "name"
)

// AuthMiddleware guards routes behind a valid session token.
type AuthMiddleware struct {
	sessions *auth.SessionService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(sessions *auth.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// SessionAuth validates the bearer session token. An expired or malformed
// token is treated as no session at all and aborts with 401.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.sessions.Validate(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				details = "Session has expired"
			}
			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(details)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextName, claims.Name)

		c.Next()
	}
}
