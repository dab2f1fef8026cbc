// file: internals/features/school/academics/controller/academic_year_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicDTO "schoolku_backend/internals/features/school/academics/dto"
	academicModel "schoolku_backend/internals/features/school/academics/model"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AcademicYearController struct {
	DB *gorm.DB
}

// GET /api/a/academic-years
func (ctl *AcademicYearController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&academicModel.AcademicYearModel{}).
		Where("academic_year_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(academic_year_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count academic years")
	}
	var rows []academicModel.AcademicYearModel
	if err := q.Order("academic_year_start_date DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list academic years")
	}
	return helper.JsonList(c, "Academic years fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/academic-years
func (ctl *AcademicYearController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req academicDTO.CreateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	if !req.EndDate.After(req.StartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "field academic_year_end_date must be after the start date")
	}

	var created academicModel.AcademicYearModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &academicModel.AcademicYearModel{}, "academic year name",
			"academic_year_school_id = ? AND lower(academic_year_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "academic year name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create academic year")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Academic year created", created)
}

// PUT /api/a/academic-years/:id
func (ctl *AcademicYearController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req academicDTO.UpdateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row academicModel.AcademicYearModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("academic_year_id = ? AND academic_year_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch academic year")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.AcademicYearName) {
			if err := helper.EnsureUnique(tx, &academicModel.AcademicYearModel{}, "academic year name",
				"academic_year_school_id = ? AND lower(academic_year_name) = lower(?) AND academic_year_id <> ?",
				schoolID, *req.Name, row.AcademicYearID); err != nil {
				return err
			}
			row.AcademicYearName = *req.Name
		}
		if req.StartDate != nil {
			row.AcademicYearStartDate = *req.StartDate
		}
		if req.EndDate != nil {
			row.AcademicYearEndDate = *req.EndDate
		}
		if !row.AcademicYearEndDate.After(row.AcademicYearStartDate) {
			return fiber.NewError(fiber.StatusBadRequest, "field academic_year_end_date must be after the start date")
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update academic year")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Academic year updated", row)
}

// POST /api/a/academic-years/:id/activate: deactivates the tenant's other
// years in the same transaction; at most one is active at a time.
func (ctl *AcademicYearController) Activate(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row academicModel.AcademicYearModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("academic_year_id = ? AND academic_year_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch academic year")
		}
		if err := tx.Model(&academicModel.AcademicYearModel{}).
			Where("academic_year_school_id = ? AND academic_year_id <> ?", schoolID, row.AcademicYearID).
			Update("academic_year_is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate other years")
		}
		if err := tx.Model(&row).Update("academic_year_is_active", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to activate academic year")
		}
		row.AcademicYearIsActive = true
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Academic year activated", row)
}

// DELETE /api/a/academic-years/:id: blocked while enrollments reference it.
func (ctl *AcademicYearController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row academicModel.AcademicYearModel
		if err := tx.Where("academic_year_id = ? AND academic_year_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch academic year")
		}
		if err := helper.EnsureNoDependents(tx, &peopleModel.StudentEnrollmentModel{}, "student enrollments",
			"enrollment_academic_year_id = ?", row.AcademicYearID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete academic year")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Academic year deleted", fiber.Map{"academic_year_id": id})
}
