package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/repository"
	"github.com/askbob/project-management-api/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

// TaskService orchestrates task use cases. Creating a task is the one place
// cross-entity tenant consistency is actively enforced: the referenced
// project must belong to the caller's tenant or the task is not written.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	TenantID  uuid.UUID
	ProjectID *uuid.UUID
	Status    *models.TaskStatus
	Priority  *models.TaskPriority
	DueBefore *time.Time
	DueAfter  *time.Time
	Sort      utils.SortSpec
	Page      utils.PaginationParams
}

// ListTasks returns the tenant's tasks matching the filters.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		TenantID:  input.TenantID,
		ProjectID: input.ProjectID,
		Status:    input.Status,
		Priority:  input.Priority,
		DueBefore: input.DueBefore,
		DueAfter:  input.DueAfter,
		Sort:      input.Sort,
		Page:      input.Page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	TenantID  uuid.UUID
	ProjectID uuid.UUID
	Title     string
	Status    models.TaskStatus
	Priority  models.TaskPriority
	Assignee  *string
	DueDate   *time.Time
}

// CreateTask creates a task under a project owned by the tenant. A project
// belonging to another tenant is indistinguishable from a missing one.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if _, err := s.projectRepo.FindByID(input.TenantID, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	task := &models.Task{
		Title:     input.Title,
		Status:    input.Status,
		Priority:  input.Priority,
		Assignee:  input.Assignee,
		DueDate:   input.DueDate,
		ProjectID: input.ProjectID,
		TenantID:  input.TenantID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput carries the fields of a partial update; nil fields leave
// the stored value unchanged.
type UpdateTaskInput struct {
	Title    *string
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Assignee *string
	DueDate  *time.Time
}

// UpdateTask applies a partial update to a task owned by the tenant.
func (s *TaskService) UpdateTask(tenantID, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task, err := s.taskRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Assignee != nil {
		task.Assignee = input.Assignee
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task owned by the tenant. Deleting a task deletes
// nothing else.
func (s *TaskService) DeleteTask(tenantID, id uuid.UUID) error {
	if _, err := s.taskRepo.FindByID(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(tenantID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
