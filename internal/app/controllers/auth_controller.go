package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/studentdesk/internal/app/models/dto"
	"github.com/okandemir/studentdesk/internal/app/services"
	"github.com/okandemir/studentdesk/internal/middleware"
	"github.com/okandemir/studentdesk/internal/pkg/auth"
)

// AuthController handles login.
type AuthController struct {
	authService services.AuthService
	sessions    *auth.SessionService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService, sessions *auth.SessionService) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
	}
}

// Login verifies credentials and issues a session token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	identity, err := c.authService.Authorize(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, expiresAt, err := c.sessions.Issue(identity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AuthResponse{
			Token: dto.TokenResponse{
				AccessToken: token,
				TokenType:   "Bearer",
				ExpiresAt:   expiresAt.Unix(),
			},
			User: identity,
		},
		Timestamp: time.Now(),
	})
}
