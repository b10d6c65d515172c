package handlers

import (
	"errors"
	"net/http"

	"github.com/askbob/project-management-api/internal/config"
	"github.com/askbob/project-management-api/internal/dto"
	apierrors "github.com/askbob/project-management-api/internal/errors"
	"github.com/askbob/project-management-api/internal/middleware"
	"github.com/askbob/project-management-api/internal/services"
	"github.com/askbob/project-management-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler coordinates project CRUD handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	page           config.PageConfig
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, page config.PageConfig) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		page:           page,
	}
}

// ListProjects returns the caller tenant's projects, newest first, with
// limit/offset pagination.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params, details := utils.GetPaginationParams(c, h.page)
	if len(details) > 0 {
		apierrors.UnprocessableEntity(c, "Validation failed", details)
		return
	}

	projects, total, err := h.projectService.ListProjects(tenantID, params)
	if err != nil {
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, total))
}

// CreateProject creates a project for the caller's tenant.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	project, err := h.projectService.CreateProject(tenantID, req.Name, req.Description)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update to a project owned by the caller's
// tenant.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(tenantID, projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project owned by the caller's tenant together with
// all of its tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(tenantID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIDParam parses the :id path parameter as a UUID, responding 422 on a
// malformed value.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.UnprocessableEntity(c, "Validation failed", []apierrors.FieldError{
			{Field: "id", Message: "must be a valid UUID"},
		})
		return uuid.Nil, false
	}
	return id, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrNameRequired):
		apierrors.UnprocessableEntity(c, "Validation failed", []apierrors.FieldError{
			{Field: "name", Message: "this field is required"},
		})
	default:
		apierrors.InternalError(c)
	}
}
