package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/askbob/project-management-api/internal/auth"
	"github.com/askbob/project-management-api/internal/config"
	apierrors "github.com/askbob/project-management-api/internal/errors"
	"github.com/askbob/project-management-api/internal/middleware"
	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/repository"
	"github.com/askbob/project-management-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires the full request path (router, middleware, services,
// repositories) over an in-memory SQLite database.
type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	userRepo    repository.UserRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	page := config.PageConfig{DefaultSize: 20, MaxSize: 100}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService, page)
	taskHandler := NewTaskHandler(taskService, page)

	r := gin.New()

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	requireAuth := middleware.RequireAuth(authService)

	projects := r.Group("/projects")
	projects.Use(requireAuth)
	{
		projects.GET("/", projectHandler.ListProjects)
		projects.POST("/", projectHandler.CreateProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
	}

	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("/", taskHandler.ListTasks)
		tasks.POST("/", taskHandler.CreateTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	return &testEnv{
		db:          db,
		router:      r,
		authService: authService,
		userRepo:    userRepo,
	}
}

// do performs a request against the test router and returns the recorder.
func (env *testEnv) do(t *testing.T, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// register creates a tenant plus user through the API and returns the token.
func (env *testEnv) register(t *testing.T, email, tenantName string) string {
	t.Helper()

	w := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":       email,
		"password":    "supersecret",
		"tenant_name": tenantName,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// createProject creates a project through the API and returns its ID.
func (env *testEnv) createProject(t *testing.T, token, name string) string {
	t.Helper()

	w := env.do(t, http.MethodPost, "/projects/", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// decodeErrorEnvelope parses the error envelope of a failed response.
func decodeErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()

	var envelope apierrors.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Error
}
