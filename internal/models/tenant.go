package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is the isolation scope that owns users, projects and tasks.
type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	Domain    *string   `gorm:"type:varchar(255);uniqueIndex" json:"domain,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Users    []User    `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	Projects []Project `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
