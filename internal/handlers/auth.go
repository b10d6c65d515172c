package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/askbob/project-management-api/internal/constants"
	"github.com/askbob/project-management-api/internal/dto"
	apierrors "github.com/askbob/project-management-api/internal/errors"
	"github.com/askbob/project-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a tenant together with its first user and returns a
// bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	_, token, err := h.authService.Register(services.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		TenantName: req.TenantName,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenResponse(token))
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	_, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenResponse(token))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.UnprocessableEntity(c, "Validation failed", []apierrors.FieldError{
			{Field: "password", Message: fmt.Sprintf("must be at least %d characters", constants.MinPasswordLength)},
		})
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTenantNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	default:
		apierrors.InternalError(c)
	}
}
