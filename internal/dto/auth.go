package dto

import (
	"github.com/askbob/project-management-api/internal/models"
	"github.com/google/uuid"
)

// RegisterRequest is the payload to create a tenant and its first user.
type RegisterRequest struct {
	Email      string `json:"email" form:"email" binding:"required,email"`
	Password   string `json:"password" form:"password" binding:"required"`
	TenantName string `json:"tenant_name" form:"tenant_name" binding:"required,min=1,max=120"`
}

// LoginRequest is the password grant payload. Both JSON and form encoding
// are accepted so OAuth2-style password clients keep working.
type LoginRequest struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewTokenResponse wraps a signed token in the response envelope.
func NewTokenResponse(token string) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}
}

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	TenantID uuid.UUID `json:"tenant_id"`
}

// ToUserDTO converts a User model to UserDTO.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		TenantID: user.TenantID,
	}
}
