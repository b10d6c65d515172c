package middleware

import (
	"errors"
	"strings"

	"github.com/askbob/project-management-api/internal/constants"
	apierrors "github.com/askbob/project-management-api/internal/errors"
	"github.com/askbob/project-management-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireAuth validates the bearer token from the Authorization header and
// resolves it to a live user. Missing header, malformed header, invalid or
// expired token, unknown user and deactivated user all fail the same way.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := authService.ResolveUser(parts[1])
		if err != nil {
			// A store failure during the user re-read is not a credential
			// problem
			if errors.Is(err, services.ErrUnauthenticated) {
				apierrors.Unauthorized(c, "Could not validate credentials")
			} else {
				apierrors.InternalError(c)
			}
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyTenantID, user.TenantID)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetTenantID retrieves the authenticated user's tenant ID from context.
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyTenantID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
