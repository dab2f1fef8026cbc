// file: internals/features/school/school/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SchoolModel is the tenant root. Created at provisioning (seed), never
// mutated by routine operations. Settings holds locale/currency/timezone.
type SchoolModel struct {
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;primaryKey" json:"school_id"`

	SchoolName    string  `gorm:"column:school_name;type:varchar(120);not null" json:"school_name"`
	SchoolSlug    string  `gorm:"column:school_slug;type:varchar(160);not null;uniqueIndex" json:"school_slug"`
	SchoolPhone   *string `gorm:"column:school_phone;type:varchar(30)" json:"school_phone,omitempty"`
	SchoolEmail   *string `gorm:"column:school_email;type:varchar(120)" json:"school_email,omitempty"`
	SchoolAddress *string `gorm:"column:school_address;type:text" json:"school_address,omitempty"`

	SchoolSettings datatypes.JSON `gorm:"column:school_settings;type:jsonb" json:"school_settings,omitempty"`

	SchoolCreatedAt time.Time      `gorm:"column:school_created_at;not null;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"column:school_updated_at;not null;autoUpdateTime" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }

func (m *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}
