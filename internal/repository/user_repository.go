package repository

import (
	"errors"
	"fmt"

	"github.com/askbob/project-management-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateTenant is returned when creating the tenant fails inside the registration transaction.
	ErrCreateTenant = errors.New("user repository: create tenant failed")
	// ErrCreateUser is returned when creating the user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrDuplicateTenantName is returned when the tenant name hits the unique index.
	ErrDuplicateTenantName = errors.New("user repository: tenant name already exists")
)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithTenant creates the tenant and its first user atomically.
func (r *GormUserRepository) CreateWithTenant(user *models.User, tenant *models.Tenant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %v", ErrDuplicateTenantName, err)
			}
			return fmt.Errorf("%w: %v", ErrCreateTenant, err)
		}

		user.TenantID = tenant.ID

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		return nil
	})
}

// FindByID finds a user by ID.
func (r *GormUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
