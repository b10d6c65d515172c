package repository

import (
	"time"

	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/utils"
	"github.com/google/uuid"
)

// Every repository method is scoped by a tenant identifier; no method may
// return or mutate rows belonging to another tenant regardless of input.
// Store failures propagate unmodified so the API layer can translate them.

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// Create creates a new project.
	Create(project *models.Project) error

	// List retrieves the tenant's projects, newest first, plus the total
	// count of the tenant's projects ignoring pagination.
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// FindByID finds a project by ID within the tenant.
	FindByID(tenantID, id uuid.UUID) (*models.Project, error)

	// Update persists changes to a project.
	Update(project *models.Project) error

	// Delete removes a project and all of its tasks.
	Delete(tenantID, id uuid.UUID) error
}

// ProjectFilter holds listing options for projects.
type ProjectFilter struct {
	TenantID uuid.UUID
	Page     utils.PaginationParams
}

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	// Create creates a new task. The caller must have already verified the
	// task's project belongs to the task's tenant; the repository does not
	// re-check.
	Create(task *models.Task) error

	// List retrieves tasks matching the filter plus the total match count
	// ignoring pagination.
	List(filter TaskFilter) ([]models.Task, int64, error)

	// FindByID finds a task by ID within the tenant.
	FindByID(tenantID, id uuid.UUID) (*models.Task, error)

	// Update persists changes to a task.
	Update(task *models.Task) error

	// Delete removes a single task.
	Delete(tenantID, id uuid.UUID) error
}

// TaskFilter holds filtering, sorting and pagination options for tasks.
type TaskFilter struct {
	TenantID  uuid.UUID
	ProjectID *uuid.UUID
	Status    *models.TaskStatus
	Priority  *models.TaskPriority
	DueBefore *time.Time
	DueAfter  *time.Time
	Sort      utils.SortSpec
	Page      utils.PaginationParams
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user.
	Create(user *models.User) error

	// CreateWithTenant creates a tenant and its first user within a single
	// transaction. The user's TenantID is assigned from the created tenant.
	CreateWithTenant(user *models.User, tenant *models.Tenant) error

	// FindByID finds a user by ID.
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email.
	FindByEmail(email string) (*models.User, error)
}
