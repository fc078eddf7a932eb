package dto

import "github.com/okandemir/studentdesk/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents session token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse         `json:"token"`
	User  *models.IdentityClaim `json:"user"`
}
