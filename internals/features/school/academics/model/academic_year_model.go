// file: internals/features/school/academics/model/academic_year_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// At most one active academic year per tenant; POST /:id/activate flips the
// rest off inside one transaction.
type AcademicYearModel struct {
	AcademicYearID       uuid.UUID `gorm:"column:academic_year_id;type:uuid;primaryKey" json:"academic_year_id"`
	AcademicYearSchoolID uuid.UUID `gorm:"column:academic_year_school_id;type:uuid;not null;index" json:"academic_year_school_id"`

	AcademicYearName      string    `gorm:"column:academic_year_name;type:varchar(40);not null" json:"academic_year_name"`
	AcademicYearStartDate time.Time `gorm:"column:academic_year_start_date;not null" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"column:academic_year_end_date;not null" json:"academic_year_end_date"`

	AcademicYearIsActive  bool           `gorm:"column:academic_year_is_active;not null;default:false" json:"academic_year_is_active"`
	AcademicYearCreatedAt time.Time      `gorm:"column:academic_year_created_at;not null;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"column:academic_year_updated_at;not null;autoUpdateTime" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"academic_year_deleted_at,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	return nil
}
