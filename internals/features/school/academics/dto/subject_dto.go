// file: internals/features/school/academics/dto/subject_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/school/academics/model"
)

/* ===============================
   SUBJECTS
=================================*/

type CreateSubjectRequest struct {
	Code     string  `json:"subject_code" validate:"required,min=1,max=40"`
	Name     string  `json:"subject_name" validate:"required,min=1,max=120"`
	Desc     *string `json:"subject_desc"`
	IsActive *bool   `json:"subject_is_active"`
}

type UpdateSubjectRequest struct {
	Code     *string `json:"subject_code" validate:"omitempty,min=1,max=40"`
	Name     *string `json:"subject_name" validate:"omitempty,min=1,max=120"`
	Desc     *string `json:"subject_desc"`
	IsActive *bool   `json:"subject_is_active"`
}

// Normalize trims everything and uppercases the code (declared
// normalization: codes round-trip uppercased).
func (r *CreateSubjectRequest) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	trimPtr(&r.Desc)
}

func (r *UpdateSubjectRequest) Normalize() {
	if r.Code != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &v
	}
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	trimPtr(&r.Desc)
}

func trimPtr(pp **string) {
	if pp == nil || *pp == nil {
		return
	}
	v := strings.TrimSpace(**pp)
	if v == "" {
		*pp = nil
		return
	}
	*pp = &v
}

func (r *CreateSubjectRequest) ToModel(schoolID uuid.UUID) m.SubjectModel {
	out := m.SubjectModel{
		SubjectSchoolID: schoolID,
		SubjectCode:     r.Code,
		SubjectName:     r.Name,
		SubjectDesc:     r.Desc,
		SubjectIsActive: true,
	}
	if r.IsActive != nil {
		out.SubjectIsActive = *r.IsActive
	}
	return out
}

type CreateClassSubjectRequest struct {
	ClassID   uuid.UUID `json:"class_subject_class_id" validate:"required"`
	SubjectID uuid.UUID `json:"class_subject_subject_id" validate:"required"`
}

/* ===============================
   ACADEMIC YEARS
=================================*/

type CreateAcademicYearRequest struct {
	Name      string    `json:"academic_year_name" validate:"required,min=4,max=40"`
	StartDate time.Time `json:"academic_year_start_date" validate:"required"`
	EndDate   time.Time `json:"academic_year_end_date" validate:"required"`
}

type UpdateAcademicYearRequest struct {
	Name      *string    `json:"academic_year_name" validate:"omitempty,min=4,max=40"`
	StartDate *time.Time `json:"academic_year_start_date"`
	EndDate   *time.Time `json:"academic_year_end_date"`
}

func (r *CreateAcademicYearRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *UpdateAcademicYearRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
}

func (r *CreateAcademicYearRequest) ToModel(schoolID uuid.UUID) m.AcademicYearModel {
	return m.AcademicYearModel{
		AcademicYearSchoolID:  schoolID,
		AcademicYearName:      r.Name,
		AcademicYearStartDate: r.StartDate,
		AcademicYearEndDate:   r.EndDate,
	}
}
