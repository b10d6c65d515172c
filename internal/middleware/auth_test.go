package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/askbob/project-management-api/internal/auth"
	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/repository"
	"github.com/askbob/project-management-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authMiddlewareEnv struct {
	db     *gorm.DB
	tokens *auth.TokenManager
	router *gin.Engine
}

func setupAuthMiddleware(t *testing.T, expiry time.Duration) *authMiddlewareEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	tokens := auth.NewTokenManager("test-secret", expiry)
	authService := services.NewAuthService(repository.NewUserRepository(db), tokens)

	r := gin.New()
	r.GET("/protected", RequireAuth(authService), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		tenantID, _ := GetTenantID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":   userID.String(),
			"tenant_id": tenantID.String(),
		})
	})

	return &authMiddlewareEnv{db: db, tokens: tokens, router: r}
}

func (env *authMiddlewareEnv) seedUser(t *testing.T, active bool) *models.User {
	t.Helper()

	tenant := &models.Tenant{Name: "Tenant " + uuid.NewString()}
	require.NoError(t, env.db.Create(tenant).Error)

	user := &models.User{
		Email:          uuid.NewString() + "@example.com",
		HashedPassword: "irrelevant",
		IsActive:       active,
		TenantID:       tenant.ID,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *authMiddlewareEnv) get(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	env := setupAuthMiddleware(t, time.Hour)
	user := env.seedUser(t, true)

	token, err := env.tokens.Issue(user.ID, user.TenantID)
	require.NoError(t, err)

	w := env.get("Bearer " + token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
	assert.Contains(t, w.Body.String(), user.TenantID.String())
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	env := setupAuthMiddleware(t, time.Hour)

	w := env.get("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	env := setupAuthMiddleware(t, time.Hour)
	user := env.seedUser(t, true)

	token, err := env.tokens.Issue(user.ID, user.TenantID)
	require.NoError(t, err)

	w := env.get("Token " + token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BadSignature(t *testing.T) {
	env := setupAuthMiddleware(t, time.Hour)
	user := env.seedUser(t, true)

	otherSigner := auth.NewTokenManager("other-secret", time.Hour)
	token, err := otherSigner.Issue(user.ID, user.TenantID)
	require.NoError(t, err)

	w := env.get("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	env := setupAuthMiddleware(t, -time.Minute)
	user := env.seedUser(t, true)

	token, err := env.tokens.Issue(user.ID, user.TenantID)
	require.NoError(t, err)

	w := env.get("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	env := setupAuthMiddleware(t, time.Hour)

	token, err := env.tokens.Issue(uuid.New(), uuid.New())
	require.NoError(t, err)

	w := env.get("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_StoreFailureReportsInternalError(t *testing.T) {
	env := setupAuthMiddleware(t, time.Hour)
	user := env.seedUser(t, true)

	token, err := env.tokens.Issue(user.ID, user.TenantID)
	require.NoError(t, err)

	// Closing the pool makes the per-request user re-read fail with a
	// non-NotFound error
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := env.get("Bearer " + token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAuth_InactiveUser(t *testing.T) {
	env := setupAuthMiddleware(t, time.Hour)
	user := env.seedUser(t, false)

	token, err := env.tokens.Issue(user.ID, user.TenantID)
	require.NoError(t, err)

	w := env.get("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
