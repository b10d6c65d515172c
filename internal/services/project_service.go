package services

import (
	"errors"
	"fmt"

	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/repository"
	"github.com/askbob/project-management-api/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNameRequired    = errors.New("name is required")
)

// ProjectService orchestrates project use cases over the repository. A
// project that does not exist and a project belonging to another tenant are
// reported identically as not found.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// ListProjects returns the tenant's projects, newest first.
func (s *ProjectService) ListProjects(tenantID uuid.UUID, page utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(repository.ProjectFilter{
		TenantID: tenantID,
		Page:     page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// CreateProject creates a project under the tenant.
func (s *ProjectService) CreateProject(tenantID uuid.UUID, name string, description *string) (*models.Project, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		TenantID:    tenantID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// UpdateProjectInput carries the fields of a partial update; nil fields leave
// the stored value unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// UpdateProject applies a partial update to a project owned by the tenant.
func (s *ProjectService) UpdateProject(tenantID, id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project owned by the tenant along with its tasks.
func (s *ProjectService) DeleteProject(tenantID, id uuid.UUID) error {
	if _, err := s.projectRepo.FindByID(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(tenantID, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
