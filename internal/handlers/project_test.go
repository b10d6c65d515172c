package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/askbob/project-management-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectListResponse struct {
	Total int64 `json:"total"`
	Items []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
	} `json:"items"`
}

func TestListProjects_TenantIsolation(t *testing.T) {
	env := setupTestEnv(t)
	tokenA := env.register(t, "a@example.com", "Tenant A")
	tokenB := env.register(t, "b@example.com", "Tenant B")

	env.createProject(t, tokenA, "A Project")
	env.createProject(t, tokenB, "B Project")

	w := env.do(t, http.MethodGet, "/projects/", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp projectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "A Project", resp.Items[0].Name)
}

func TestListProjects_Unauthenticated(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/projects/", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	apiErr := decodeErrorEnvelope(t, w)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Code)
	assert.Equal(t, "/projects/", apiErr.Path)
}

func TestListProjects_PaginationDisjointPagesStableOrder(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "a@example.com", "Tenant A")

	const n = 5
	for i := 0; i < n; i++ {
		env.createProject(t, token, fmt.Sprintf("Project %d", i))
	}

	seen := make(map[string]bool)
	var pages []projectListResponse
	for offset := 0; offset < n; offset += 2 {
		w := env.do(t, http.MethodGet, fmt.Sprintf("/projects/?limit=2&offset=%d", offset), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp projectListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(n), resp.Total)

		for _, item := range resp.Items {
			assert.False(t, seen[item.ID], "page overlap on %s", item.ID)
			seen[item.ID] = true
		}
		pages = append(pages, resp)
	}

	assert.Len(t, seen, n)
	require.NotEmpty(t, pages)
	assert.Len(t, pages[0].Items, 2)
}

func TestListProjects_OutOfRangePaginationRejected(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "a@example.com", "Tenant A")

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"limit above max", "?limit=500", "limit"},
		{"zero limit", "?limit=0", "limit"},
		{"negative offset", "?offset=-3", "offset"},
		{"unparseable limit", "?limit=abc", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/projects/"+tt.query, token, nil)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			apiErr := decodeErrorEnvelope(t, w)
			require.NotEmpty(t, apiErr.Details)
			raw, err := json.Marshal(apiErr.Details)
			require.NoError(t, err)
			assert.Contains(t, string(raw), tt.field)
		})
	}
}

func TestCreateProject_MissingName(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "a@example.com", "Tenant A")

	w := env.do(t, http.MethodPost, "/projects/", token, map[string]string{"description": "no name"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	apiErr := decodeErrorEnvelope(t, w)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Code)
	assert.NotEmpty(t, apiErr.Details)
}

func TestUpdateProject_PartialUpdate(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "a@example.com", "Tenant A")

	w := env.do(t, http.MethodPost, "/projects/", token, map[string]string{
		"name":        "Original",
		"description": "keep me",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Only the name is supplied; description must survive
	w = env.do(t, http.MethodPut, "/projects/"+created.ID, token, map[string]string{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)
}

func TestUpdateProject_CrossTenantReportsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	tokenA := env.register(t, "a@example.com", "Tenant A")
	tokenB := env.register(t, "b@example.com", "Tenant B")

	projectID := env.createProject(t, tokenA, "A Project")

	w := env.do(t, http.MethodPut, "/projects/"+projectID, tokenB, map[string]string{"name": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The row is untouched
	var project models.Project
	require.NoError(t, env.db.First(&project, "id = ?", projectID).Error)
	assert.Equal(t, "A Project", project.Name)
}

func TestDeleteProject_CascadesTasks(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "a@example.com", "Tenant A")
	projectID := env.createProject(t, token, "Doomed")

	for i := 0; i < 3; i++ {
		w := env.do(t, http.MethodPost, "/tasks/", token, map[string]interface{}{
			"title":      fmt.Sprintf("Task %d", i),
			"project_id": projectID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := env.do(t, http.MethodDelete, "/projects/"+projectID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var taskCount int64
	env.db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&taskCount)
	assert.Zero(t, taskCount)

	var projectCount int64
	env.db.Model(&models.Project{}).Where("id = ?", projectID).Count(&projectCount)
	assert.Zero(t, projectCount)
}

func TestDeleteProject_CrossTenantReportsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	tokenA := env.register(t, "a@example.com", "Tenant A")
	tokenB := env.register(t, "b@example.com", "Tenant B")

	projectID := env.createProject(t, tokenA, "A Project")

	w := env.do(t, http.MethodDelete, "/projects/"+projectID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/projects/"+uuid.NewString(), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProject_MalformedIDParam(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "a@example.com", "Tenant A")

	w := env.do(t, http.MethodPut, "/projects/not-a-uuid", token, map[string]string{"name": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
