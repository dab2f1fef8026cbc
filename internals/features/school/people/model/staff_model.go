// file: internals/features/school/people/model/staff_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentModel struct {
	DepartmentID       uuid.UUID `gorm:"column:department_id;type:uuid;primaryKey" json:"department_id"`
	DepartmentSchoolID uuid.UUID `gorm:"column:department_school_id;type:uuid;not null;index" json:"department_school_id"`

	DepartmentName string  `gorm:"column:department_name;type:varchar(80);not null" json:"department_name"`
	DepartmentDesc *string `gorm:"column:department_desc;type:text" json:"department_desc,omitempty"`

	DepartmentCreatedAt time.Time      `gorm:"column:department_created_at;not null;autoCreateTime" json:"department_created_at"`
	DepartmentUpdatedAt time.Time      `gorm:"column:department_updated_at;not null;autoUpdateTime" json:"department_updated_at"`
	DepartmentDeletedAt gorm.DeletedAt `gorm:"column:department_deleted_at;index" json:"department_deleted_at,omitempty"`
}

func (DepartmentModel) TableName() string { return "departments" }

func (m *DepartmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.DepartmentID == uuid.Nil {
		m.DepartmentID = uuid.New()
	}
	return nil
}

type DesignationModel struct {
	DesignationID       uuid.UUID `gorm:"column:designation_id;type:uuid;primaryKey" json:"designation_id"`
	DesignationSchoolID uuid.UUID `gorm:"column:designation_school_id;type:uuid;not null;index" json:"designation_school_id"`

	DesignationName string  `gorm:"column:designation_name;type:varchar(80);not null" json:"designation_name"`
	DesignationDesc *string `gorm:"column:designation_desc;type:text" json:"designation_desc,omitempty"`

	DesignationCreatedAt time.Time      `gorm:"column:designation_created_at;not null;autoCreateTime" json:"designation_created_at"`
	DesignationUpdatedAt time.Time      `gorm:"column:designation_updated_at;not null;autoUpdateTime" json:"designation_updated_at"`
	DesignationDeletedAt gorm.DeletedAt `gorm:"column:designation_deleted_at;index" json:"designation_deleted_at,omitempty"`
}

func (DesignationModel) TableName() string { return "designations" }

func (m *DesignationModel) BeforeCreate(tx *gorm.DB) error {
	if m.DesignationID == uuid.Nil {
		m.DesignationID = uuid.New()
	}
	return nil
}

// StaffModel optionally links a login user (staff_user_id); the pair is
// created and deleted inside one transaction.
type StaffModel struct {
	StaffID       uuid.UUID `gorm:"column:staff_id;type:uuid;primaryKey" json:"staff_id"`
	StaffSchoolID uuid.UUID `gorm:"column:staff_school_id;type:uuid;not null;index" json:"staff_school_id"`

	StaffEmployeeID string  `gorm:"column:staff_employee_id;type:varchar(40);not null" json:"staff_employee_id"`
	StaffName       string  `gorm:"column:staff_name;type:varchar(120);not null" json:"staff_name"`
	StaffPhone      *string `gorm:"column:staff_phone;type:varchar(30)" json:"staff_phone,omitempty"`
	StaffEmail      *string `gorm:"column:staff_email;type:varchar(120)" json:"staff_email,omitempty"`

	StaffDepartmentID  *uuid.UUID `gorm:"column:staff_department_id;type:uuid;index" json:"staff_department_id,omitempty"`
	StaffDesignationID *uuid.UUID `gorm:"column:staff_designation_id;type:uuid;index" json:"staff_designation_id,omitempty"`
	StaffUserID        *uuid.UUID `gorm:"column:staff_user_id;type:uuid;index" json:"staff_user_id,omitempty"`

	StaffJoiningDate *time.Time `gorm:"column:staff_joining_date" json:"staff_joining_date,omitempty"`

	StaffIsActive  bool           `gorm:"column:staff_is_active;not null;default:true" json:"staff_is_active"`
	StaffCreatedAt time.Time      `gorm:"column:staff_created_at;not null;autoCreateTime" json:"staff_created_at"`
	StaffUpdatedAt time.Time      `gorm:"column:staff_updated_at;not null;autoUpdateTime" json:"staff_updated_at"`
	StaffDeletedAt gorm.DeletedAt `gorm:"column:staff_deleted_at;index" json:"staff_deleted_at,omitempty"`
}

func (StaffModel) TableName() string { return "staff" }

func (m *StaffModel) BeforeCreate(tx *gorm.DB) error {
	if m.StaffID == uuid.Nil {
		m.StaffID = uuid.New()
	}
	return nil
}
