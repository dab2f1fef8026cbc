// file: internals/features/school/academics/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID       uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey" json:"class_id"`
	ClassSchoolID uuid.UUID `gorm:"column:class_school_id;type:uuid;not null;index" json:"class_school_id"`

	ClassName         string `gorm:"column:class_name;type:varchar(80);not null" json:"class_name"`
	ClassSlug         string `gorm:"column:class_slug;type:varchar(120);not null" json:"class_slug"`
	ClassDisplayOrder int    `gorm:"column:class_display_order;not null;default:0" json:"class_display_order"`

	ClassIsActive  bool           `gorm:"column:class_is_active;not null;default:true" json:"class_is_active"`
	ClassCreatedAt time.Time      `gorm:"column:class_created_at;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;not null;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

type SectionModel struct {
	SectionID       uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey" json:"section_id"`
	SectionSchoolID uuid.UUID `gorm:"column:section_school_id;type:uuid;not null;index" json:"section_school_id"`

	SectionName         string `gorm:"column:section_name;type:varchar(40);not null" json:"section_name"`
	SectionDisplayOrder int    `gorm:"column:section_display_order;not null;default:0" json:"section_display_order"`

	SectionCreatedAt time.Time      `gorm:"column:section_created_at;not null;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt time.Time      `gorm:"column:section_updated_at;not null;autoUpdateTime" json:"section_updated_at"`
	SectionDeletedAt gorm.DeletedAt `gorm:"column:section_deleted_at;index" json:"section_deleted_at,omitempty"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}

// ClassSectionModel joins a class to a section; students enroll against this
// row, so deleting it is blocked while students reference it.
type ClassSectionModel struct {
	ClassSectionID       uuid.UUID `gorm:"column:class_section_id;type:uuid;primaryKey" json:"class_section_id"`
	ClassSectionSchoolID uuid.UUID `gorm:"column:class_section_school_id;type:uuid;not null;index" json:"class_section_school_id"`

	ClassSectionClassID   uuid.UUID `gorm:"column:class_section_class_id;type:uuid;not null;index" json:"class_section_class_id"`
	ClassSectionSectionID uuid.UUID `gorm:"column:class_section_section_id;type:uuid;not null;index" json:"class_section_section_id"`

	ClassSectionCapacity *int `gorm:"column:class_section_capacity" json:"class_section_capacity,omitempty"`

	ClassSectionCreatedAt time.Time      `gorm:"column:class_section_created_at;not null;autoCreateTime" json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time      `gorm:"column:class_section_updated_at;not null;autoUpdateTime" json:"class_section_updated_at"`
	ClassSectionDeletedAt gorm.DeletedAt `gorm:"column:class_section_deleted_at;index" json:"class_section_deleted_at,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }

func (m *ClassSectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSectionID == uuid.Nil {
		m.ClassSectionID = uuid.New()
	}
	return nil
}
