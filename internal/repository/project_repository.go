package repository

import (
	"github.com/askbob/project-management-api/internal/database"
	"github.com/askbob/project-management-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository.
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project.
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// List retrieves the tenant's projects ordered by creation time, newest first.
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{}).Where("tenant_id = ?", filter.TenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(filter.Page)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// FindByID finds a project by ID within the tenant.
func (r *GormProjectRepository) FindByID(tenantID, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update persists changes to a project.
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and all of its tasks in a transaction.
func (r *GormProjectRepository) Delete(tenantID, id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ? AND tenant_id = ?", id, tenantID).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND tenant_id = ?", id, tenantID).
			Delete(&models.Project{}).Error
	})
}
