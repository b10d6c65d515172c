package dto

import (
	"time"

	"github.com/askbob/project-management-api/internal/models"
	"github.com/google/uuid"
)

// CreateProjectRequest is the payload to create a project.
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
}

// UpdateProjectRequest is a partial update; absent fields leave the stored
// value unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// ProjectDTO represents a project in API responses.
type ProjectDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	TenantID    uuid.UUID `json:"tenant_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectListResponse is a paginated project page; Total counts all matching
// rows ignoring pagination.
type ProjectListResponse struct {
	Total int64        `json:"total"`
	Items []ProjectDTO `json:"items"`
}

// ToProjectDTO converts a Project model to ProjectDTO.
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		TenantID:    project.TenantID,
		CreatedAt:   project.CreatedAt,
	}
}

// ToProjectListResponse converts a page of projects to the list envelope.
func ToProjectListResponse(projects []models.Project, total int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = ToProjectDTO(p)
	}
	return ProjectListResponse{
		Total: total,
		Items: items,
	}
}
