package dto

import (
	"time"

	"github.com/askbob/project-management-api/internal/models"
	"github.com/google/uuid"
)

// CreateTaskRequest is the payload to create a task under a project.
type CreateTaskRequest struct {
	Title     string     `json:"title" binding:"required,min=1,max=255"`
	Status    string     `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority  string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Assignee  *string    `json:"assignee"`
	DueDate   *time.Time `json:"due_date"`
	ProjectID uuid.UUID  `json:"project_id" binding:"required"`
}

// UpdateTaskRequest is a partial update; absent fields leave the stored
// value unchanged.
type UpdateTaskRequest struct {
	Title    *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Status   *string    `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Assignee *string    `json:"assignee"`
	DueDate  *time.Time `json:"due_date"`
}

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Status    models.TaskStatus   `json:"status"`
	Priority  models.TaskPriority `json:"priority"`
	Assignee  *string             `json:"assignee"`
	DueDate   *time.Time          `json:"due_date"`
	ProjectID uuid.UUID           `json:"project_id"`
	TenantID  uuid.UUID           `json:"tenant_id"`
	CreatedAt time.Time           `json:"created_at"`
}

// TaskListResponse is a paginated task page; Total counts all matching rows
// ignoring pagination.
type TaskListResponse struct {
	Total int64     `json:"total"`
	Items []TaskDTO `json:"items"`
}

// ToTaskDTO converts a Task model to TaskDTO.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		Priority:  task.Priority,
		Assignee:  task.Assignee,
		DueDate:   task.DueDate,
		ProjectID: task.ProjectID,
		TenantID:  task.TenantID,
		CreatedAt: task.CreatedAt,
	}
}

// ToTaskListResponse converts a page of tasks to the list envelope.
func ToTaskListResponse(tasks []models.Task, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = ToTaskDTO(t)
	}
	return TaskListResponse{
		Total: total,
		Items: items,
	}
}
