// file: internals/features/users/roles/model/role_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleModel bundles permission slugs per tenant. System roles are seeded and
// immutable through the API; custom roles are tenant-defined.
type RoleModel struct {
	RoleID       uuid.UUID `gorm:"column:role_id;type:uuid;primaryKey" json:"role_id"`
	RoleSchoolID uuid.UUID `gorm:"column:role_school_id;type:uuid;not null;index" json:"role_school_id"`

	RoleName        string         `gorm:"column:role_name;type:varchar(60);not null" json:"role_name"`
	RolePermissions datatypes.JSON `gorm:"column:role_permissions;type:jsonb" json:"role_permissions"`

	RoleIsSystem bool `gorm:"column:role_is_system;not null;default:false" json:"role_is_system"`

	RoleCreatedAt time.Time      `gorm:"column:role_created_at;not null;autoCreateTime" json:"role_created_at"`
	RoleUpdatedAt time.Time      `gorm:"column:role_updated_at;not null;autoUpdateTime" json:"role_updated_at"`
	RoleDeletedAt gorm.DeletedAt `gorm:"column:role_deleted_at;index" json:"role_deleted_at,omitempty"`
}

func (RoleModel) TableName() string { return "roles" }

func (m *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoleID == uuid.Nil {
		m.RoleID = uuid.New()
	}
	return nil
}
