// file: internals/features/school/academics/dto/class_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/school/academics/model"
	helper "schoolku_backend/internals/helpers"
)

/* ===============================
   CLASSES
=================================*/

type CreateClassRequest struct {
	Name         string `json:"class_name" validate:"required,min=1,max=80"`
	DisplayOrder *int   `json:"class_display_order" validate:"omitempty,gte=0"`
	IsActive     *bool  `json:"class_is_active"`
}

type UpdateClassRequest struct {
	Name         *string `json:"class_name" validate:"omitempty,min=1,max=80"`
	DisplayOrder *int    `json:"class_display_order" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"class_is_active"`
}

func (r *CreateClassRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *UpdateClassRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

func (r *CreateClassRequest) ToModel(schoolID uuid.UUID) m.ClassModel {
	out := m.ClassModel{
		ClassSchoolID: schoolID,
		ClassName:     r.Name,
		ClassSlug:     helper.Slugify(r.Name, 120),
		ClassIsActive: true,
	}
	if r.DisplayOrder != nil {
		out.ClassDisplayOrder = *r.DisplayOrder
	}
	if r.IsActive != nil {
		out.ClassIsActive = *r.IsActive
	}
	return out
}

type ClassResponse struct {
	m.ClassModel
	SectionCount int64 `json:"section_count"`
	StudentCount int64 `json:"student_count"`
}

/* ===============================
   SECTIONS
=================================*/

type CreateSectionRequest struct {
	Name         string `json:"section_name" validate:"required,min=1,max=40"`
	DisplayOrder *int   `json:"section_display_order" validate:"omitempty,gte=0"`
}

type UpdateSectionRequest struct {
	Name         *string `json:"section_name" validate:"omitempty,min=1,max=40"`
	DisplayOrder *int    `json:"section_display_order" validate:"omitempty,gte=0"`
}

func (r *CreateSectionRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *UpdateSectionRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

func (r *CreateSectionRequest) ToModel(schoolID uuid.UUID) m.SectionModel {
	out := m.SectionModel{
		SectionSchoolID: schoolID,
		SectionName:     r.Name,
	}
	if r.DisplayOrder != nil {
		out.SectionDisplayOrder = *r.DisplayOrder
	}
	return out
}

/* ===============================
   CLASS SECTIONS (join)
=================================*/

type CreateClassSectionRequest struct {
	ClassID   uuid.UUID `json:"class_section_class_id" validate:"required"`
	SectionID uuid.UUID `json:"class_section_section_id" validate:"required"`
	Capacity  *int      `json:"class_section_capacity" validate:"omitempty,gt=0"`
}

type UpdateClassSectionRequest struct {
	Capacity *int `json:"class_section_capacity" validate:"omitempty,gt=0"`
}

func (r *CreateClassSectionRequest) ToModel(schoolID uuid.UUID) m.ClassSectionModel {
	return m.ClassSectionModel{
		ClassSectionSchoolID:  schoolID,
		ClassSectionClassID:   r.ClassID,
		ClassSectionSectionID: r.SectionID,
		ClassSectionCapacity:  r.Capacity,
	}
}
