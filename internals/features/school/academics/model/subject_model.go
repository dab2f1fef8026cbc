// file: internals/features/school/academics/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// subject_code is uppercased on normalize; unique per tenant (CI).
type SubjectModel struct {
	SubjectID       uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectSchoolID uuid.UUID `gorm:"column:subject_school_id;type:uuid;not null;index" json:"subject_school_id"`

	SubjectCode string  `gorm:"column:subject_code;type:varchar(40);not null" json:"subject_code"`
	SubjectName string  `gorm:"column:subject_name;type:varchar(120);not null" json:"subject_name"`
	SubjectDesc *string `gorm:"column:subject_desc;type:text" json:"subject_desc,omitempty"`

	SubjectIsActive  bool           `gorm:"column:subject_is_active;not null;default:true" json:"subject_is_active"`
	SubjectCreatedAt time.Time      `gorm:"column:subject_created_at;not null;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"column:subject_updated_at;not null;autoUpdateTime" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}

// ClassSubjectModel assigns a subject to a class; it blocks subject deletes.
type ClassSubjectModel struct {
	ClassSubjectID       uuid.UUID `gorm:"column:class_subject_id;type:uuid;primaryKey" json:"class_subject_id"`
	ClassSubjectSchoolID uuid.UUID `gorm:"column:class_subject_school_id;type:uuid;not null;index" json:"class_subject_school_id"`

	ClassSubjectClassID   uuid.UUID `gorm:"column:class_subject_class_id;type:uuid;not null;index" json:"class_subject_class_id"`
	ClassSubjectSubjectID uuid.UUID `gorm:"column:class_subject_subject_id;type:uuid;not null;index" json:"class_subject_subject_id"`

	ClassSubjectCreatedAt time.Time      `gorm:"column:class_subject_created_at;not null;autoCreateTime" json:"class_subject_created_at"`
	ClassSubjectUpdatedAt time.Time      `gorm:"column:class_subject_updated_at;not null;autoUpdateTime" json:"class_subject_updated_at"`
	ClassSubjectDeletedAt gorm.DeletedAt `gorm:"column:class_subject_deleted_at;index" json:"class_subject_deleted_at,omitempty"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }

func (m *ClassSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSubjectID == uuid.Nil {
		m.ClassSubjectID = uuid.New()
	}
	return nil
}
