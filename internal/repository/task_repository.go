package repository

import (
	"github.com/askbob/project-management-api/internal/database"
	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// List retrieves tasks matching the filter, with the total match count
// ignoring pagination.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("tenant_id = ?", filter.TenantID)

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date >= ?", *filter.DueAfter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.
		Order(orderClause(filter.Sort)).
		Scopes(database.Paginate(filter.Page)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// orderClause translates a sort spec into SQL. Tasks without a due date sort
// last regardless of direction, and priority orders by rank rather than
// lexicographically.
func orderClause(sort utils.SortSpec) string {
	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}

	switch sort.Field {
	case utils.SortByDueDate:
		return "CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date " + direction
	case utils.SortByPriority:
		return "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 END " + direction
	default:
		return "created_at " + direction
	}
}

// FindByID finds a task by ID within the tenant.
func (r *GormTaskRepository) FindByID(tenantID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update persists changes to a task.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a single task.
func (r *GormTaskRepository) Delete(tenantID, id uuid.UUID) error {
	return r.db.Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Task{}).Error
}
