// file: internals/features/school/people/dto/people_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/school/people/model"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

/* ===============================
   DEPARTMENTS
=================================*/

type CreateDepartmentRequest struct {
	Name string  `json:"department_name" validate:"required,min=1,max=80"`
	Desc *string `json:"department_desc" validate:"omitempty,max=2000"`
}

type UpdateDepartmentRequest struct {
	Name *string `json:"department_name" validate:"omitempty,min=1,max=80"`
	Desc *string `json:"department_desc" validate:"omitempty,max=2000"`
}

func (r *CreateDepartmentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Desc = trimPtr(r.Desc)
}

func (r *UpdateDepartmentRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Desc = trimPtr(r.Desc)
}

func (r *CreateDepartmentRequest) ToModel(schoolID uuid.UUID) m.DepartmentModel {
	return m.DepartmentModel{
		DepartmentSchoolID: schoolID,
		DepartmentName:     r.Name,
		DepartmentDesc:     r.Desc,
	}
}

/* ===============================
   DESIGNATIONS
=================================*/

type CreateDesignationRequest struct {
	Name string  `json:"designation_name" validate:"required,min=1,max=80"`
	Desc *string `json:"designation_desc" validate:"omitempty,max=2000"`
}

type UpdateDesignationRequest struct {
	Name *string `json:"designation_name" validate:"omitempty,min=1,max=80"`
	Desc *string `json:"designation_desc" validate:"omitempty,max=2000"`
}

func (r *CreateDesignationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Desc = trimPtr(r.Desc)
}

func (r *UpdateDesignationRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Desc = trimPtr(r.Desc)
}

func (r *CreateDesignationRequest) ToModel(schoolID uuid.UUID) m.DesignationModel {
	return m.DesignationModel{
		DesignationSchoolID: schoolID,
		DesignationName:     r.Name,
		DesignationDesc:     r.Desc,
	}
}

/* ===============================
   STAFF
=================================*/

type CreateStaffRequest struct {
	EmployeeID    string     `json:"staff_employee_id" validate:"required,min=1,max=40"`
	Name          string     `json:"staff_name" validate:"required,min=1,max=120"`
	Phone         *string    `json:"staff_phone" validate:"omitempty,max=30"`
	Email         *string    `json:"staff_email" validate:"omitempty,email,max=120"`
	DepartmentID  *uuid.UUID `json:"staff_department_id"`
	DesignationID *uuid.UUID `json:"staff_designation_id"`
	JoiningDate   *time.Time `json:"staff_joining_date"`

	// Optional linked login account, created in the same transaction.
	CreateLogin   bool    `json:"create_login"`
	LoginUserName *string `json:"login_user_name" validate:"omitempty,min=3,max=50"`
	LoginEmail    *string `json:"login_email" validate:"omitempty,email,max=120"`
	LoginPassword *string `json:"login_password" validate:"omitempty,min=8,max=72"`
	LoginRole     *string `json:"login_role" validate:"omitempty,oneof=admin teacher staff"`
}

type UpdateStaffRequest struct {
	Name          *string    `json:"staff_name" validate:"omitempty,min=1,max=120"`
	Phone         *string    `json:"staff_phone" validate:"omitempty,max=30"`
	Email         *string    `json:"staff_email" validate:"omitempty,email,max=120"`
	DepartmentID  *uuid.UUID `json:"staff_department_id"`
	DesignationID *uuid.UUID `json:"staff_designation_id"`
	JoiningDate   *time.Time `json:"staff_joining_date"`
	IsActive      *bool      `json:"staff_is_active"`
}

func (r *CreateStaffRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = trimPtr(r.Phone)
	r.Email = trimPtr(r.Email)
	if r.LoginUserName != nil {
		u := strings.ToLower(strings.TrimSpace(*r.LoginUserName))
		r.LoginUserName = &u
	}
	r.LoginEmail = trimPtr(r.LoginEmail)
}

func (r *UpdateStaffRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Phone = trimPtr(r.Phone)
	r.Email = trimPtr(r.Email)
}

func (r *CreateStaffRequest) ToModel(schoolID uuid.UUID) m.StaffModel {
	return m.StaffModel{
		StaffSchoolID:      schoolID,
		StaffEmployeeID:    r.EmployeeID,
		StaffName:          r.Name,
		StaffPhone:         r.Phone,
		StaffEmail:         r.Email,
		StaffDepartmentID:  r.DepartmentID,
		StaffDesignationID: r.DesignationID,
		StaffJoiningDate:   r.JoiningDate,
		StaffIsActive:      true,
	}
}

/* ===============================
   PARENTS
=================================*/

type CreateParentRequest struct {
	Name    string  `json:"parent_name" validate:"required,min=1,max=120"`
	Phone   string  `json:"parent_phone" validate:"required,min=5,max=30"`
	Email   *string `json:"parent_email" validate:"omitempty,email,max=120"`
	Address *string `json:"parent_address" validate:"omitempty,max=2000"`
}

type UpdateParentRequest struct {
	Name    *string `json:"parent_name" validate:"omitempty,min=1,max=120"`
	Phone   *string `json:"parent_phone" validate:"omitempty,min=5,max=30"`
	Email   *string `json:"parent_email" validate:"omitempty,email,max=120"`
	Address *string `json:"parent_address" validate:"omitempty,max=2000"`
}

func (r *CreateParentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = trimPtr(r.Email)
	r.Address = trimPtr(r.Address)
}

func (r *UpdateParentRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		r.Phone = &p
	}
	r.Email = trimPtr(r.Email)
	r.Address = trimPtr(r.Address)
}

func (r *CreateParentRequest) ToModel(schoolID uuid.UUID) m.ParentModel {
	return m.ParentModel{
		ParentSchoolID: schoolID,
		ParentName:     r.Name,
		ParentPhone:    r.Phone,
		ParentEmail:    r.Email,
		ParentAddress:  r.Address,
	}
}

/* ===============================
   STUDENTS
=================================*/

type CreateStudentRequest struct {
	AdmissionNo    string     `json:"student_admission_no" validate:"required,min=1,max=40"`
	Name           string     `json:"student_name" validate:"required,min=1,max=120"`
	Gender         *string    `json:"student_gender" validate:"omitempty,oneof=male female"`
	DOB            *time.Time `json:"student_dob"`
	ParentID       *uuid.UUID `json:"student_parent_id"`
	ClassSectionID *uuid.UUID `json:"student_class_section_id"`
	RoomID         *uuid.UUID `json:"student_room_id"`
	PickupPointID  *uuid.UUID `json:"student_pickup_point_id"`

	CreateLogin   bool    `json:"create_login"`
	LoginUserName *string `json:"login_user_name" validate:"omitempty,min=3,max=50"`
	LoginEmail    *string `json:"login_email" validate:"omitempty,email,max=120"`
	LoginPassword *string `json:"login_password" validate:"omitempty,min=8,max=72"`
}

type UpdateStudentRequest struct {
	Name           *string    `json:"student_name" validate:"omitempty,min=1,max=120"`
	Gender         *string    `json:"student_gender" validate:"omitempty,oneof=male female"`
	DOB            *time.Time `json:"student_dob"`
	ParentID       *uuid.UUID `json:"student_parent_id"`
	ClassSectionID *uuid.UUID `json:"student_class_section_id"`
	RoomID         *uuid.UUID `json:"student_room_id"`
	PickupPointID  *uuid.UUID `json:"student_pickup_point_id"`
	IsActive       *bool      `json:"student_is_active"`
}

func (r *CreateStudentRequest) Normalize() {
	r.AdmissionNo = strings.TrimSpace(r.AdmissionNo)
	r.Name = strings.TrimSpace(r.Name)
	if r.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*r.Gender))
		r.Gender = &g
	}
	if r.LoginUserName != nil {
		u := strings.ToLower(strings.TrimSpace(*r.LoginUserName))
		r.LoginUserName = &u
	}
	r.LoginEmail = trimPtr(r.LoginEmail)
}

func (r *UpdateStudentRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*r.Gender))
		r.Gender = &g
	}
}

func (r *CreateStudentRequest) ToModel(schoolID uuid.UUID) m.StudentModel {
	return m.StudentModel{
		StudentSchoolID:       schoolID,
		StudentAdmissionNo:    r.AdmissionNo,
		StudentName:           r.Name,
		StudentGender:         r.Gender,
		StudentDOB:            r.DOB,
		StudentParentID:       r.ParentID,
		StudentClassSectionID: r.ClassSectionID,
		StudentRoomID:         r.RoomID,
		StudentPickupPointID:  r.PickupPointID,
		StudentIsActive:       true,
	}
}
