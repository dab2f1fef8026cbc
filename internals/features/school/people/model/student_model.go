// file: internals/features/school/people/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParentModel struct {
	ParentID       uuid.UUID `gorm:"column:parent_id;type:uuid;primaryKey" json:"parent_id"`
	ParentSchoolID uuid.UUID `gorm:"column:parent_school_id;type:uuid;not null;index" json:"parent_school_id"`

	ParentName    string  `gorm:"column:parent_name;type:varchar(120);not null" json:"parent_name"`
	ParentPhone   string  `gorm:"column:parent_phone;type:varchar(30);not null" json:"parent_phone"`
	ParentEmail   *string `gorm:"column:parent_email;type:varchar(120)" json:"parent_email,omitempty"`
	ParentAddress *string `gorm:"column:parent_address;type:text" json:"parent_address,omitempty"`

	ParentCreatedAt time.Time      `gorm:"column:parent_created_at;not null;autoCreateTime" json:"parent_created_at"`
	ParentUpdatedAt time.Time      `gorm:"column:parent_updated_at;not null;autoUpdateTime" json:"parent_updated_at"`
	ParentDeletedAt gorm.DeletedAt `gorm:"column:parent_deleted_at;index" json:"parent_deleted_at,omitempty"`
}

func (ParentModel) TableName() string { return "parents" }

func (m *ParentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParentID == uuid.Nil {
		m.ParentID = uuid.New()
	}
	return nil
}

// StudentModel: admission number unique per tenant. Deleting a student
// cascades its enrollment rows (explicit CASCADE policy) but is blocked
// while fee payments exist.
type StudentModel struct {
	StudentID       uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentSchoolID uuid.UUID `gorm:"column:student_school_id;type:uuid;not null;index" json:"student_school_id"`

	StudentAdmissionNo string     `gorm:"column:student_admission_no;type:varchar(40);not null" json:"student_admission_no"`
	StudentName        string     `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentGender      *string    `gorm:"column:student_gender;type:varchar(10)" json:"student_gender,omitempty"`
	StudentDOB         *time.Time `gorm:"column:student_dob" json:"student_dob,omitempty"`

	StudentParentID       *uuid.UUID `gorm:"column:student_parent_id;type:uuid;index" json:"student_parent_id,omitempty"`
	StudentClassSectionID *uuid.UUID `gorm:"column:student_class_section_id;type:uuid;index" json:"student_class_section_id,omitempty"`
	StudentRoomID         *uuid.UUID `gorm:"column:student_room_id;type:uuid;index" json:"student_room_id,omitempty"`
	StudentPickupPointID  *uuid.UUID `gorm:"column:student_pickup_point_id;type:uuid;index" json:"student_pickup_point_id,omitempty"`
	StudentUserID         *uuid.UUID `gorm:"column:student_user_id;type:uuid;index" json:"student_user_id,omitempty"`

	StudentIsActive  bool           `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

// StudentEnrollmentModel pins a student to a class-section within an
// academic year. Rows are written alongside the student and removed with it.
type StudentEnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentSchoolID uuid.UUID `gorm:"column:enrollment_school_id;type:uuid;not null;index" json:"enrollment_school_id"`

	EnrollmentStudentID      uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index" json:"enrollment_student_id"`
	EnrollmentAcademicYearID uuid.UUID `gorm:"column:enrollment_academic_year_id;type:uuid;not null;index" json:"enrollment_academic_year_id"`
	EnrollmentClassSectionID uuid.UUID `gorm:"column:enrollment_class_section_id;type:uuid;not null;index" json:"enrollment_class_section_id"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;not null;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"enrollment_deleted_at,omitempty"`
}

func (StudentEnrollmentModel) TableName() string { return "student_enrollments" }

func (m *StudentEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}
