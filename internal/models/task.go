package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the allowed task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the allowed task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task lives under a project. TenantID is denormalized from the project so
// every task query can be scoped by tenant without a join; write paths must
// verify the project belongs to the same tenant before inserting.
type Task struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string       `gorm:"type:varchar(255);not null" json:"title"`
	Status    TaskStatus   `gorm:"type:varchar(50);not null;default:'todo';index" json:"status"`
	Priority  TaskPriority `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	Assignee  *string      `gorm:"type:varchar(255)" json:"assignee"`
	DueDate   *time.Time   `gorm:"index" json:"due_date"`
	ProjectID uuid.UUID    `gorm:"type:uuid;not null;index:idx_tasks_project_tenant" json:"project_id"`
	TenantID  uuid.UUID    `gorm:"type:uuid;not null;index;index:idx_tasks_project_tenant" json:"tenant_id"`
	CreatedAt time.Time    `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
