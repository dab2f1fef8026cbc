// file: internals/features/school/people/controller/department_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	peopleDTO "schoolku_backend/internals/features/school/people/dto"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type DepartmentController struct {
	DB *gorm.DB
}

// GET /api/a/departments
func (ctl *DepartmentController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&peopleModel.DepartmentModel{}).Where("department_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(department_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count departments")
	}
	var rows []peopleModel.DepartmentModel
	if err := q.Order("department_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list departments")
	}
	return helper.JsonList(c, "Departments fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/departments
func (ctl *DepartmentController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req peopleDTO.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created peopleModel.DepartmentModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &peopleModel.DepartmentModel{}, "department name",
			"department_school_id = ? AND lower(department_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "department name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create department")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Department created", created)
}

// PUT /api/a/departments/:id
func (ctl *DepartmentController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req peopleDTO.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row peopleModel.DepartmentModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ? AND department_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Department not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch department")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.DepartmentName) {
			if err := helper.EnsureUnique(tx, &peopleModel.DepartmentModel{}, "department name",
				"department_school_id = ? AND lower(department_name) = lower(?) AND department_id <> ?",
				schoolID, *req.Name, row.DepartmentID); err != nil {
				return err
			}
			row.DepartmentName = *req.Name
		}
		if req.Desc != nil {
			row.DepartmentDesc = req.Desc
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update department")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Department updated", row)
}

// DELETE /api/a/departments/:id: blocked while staff reference it.
func (ctl *DepartmentController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row peopleModel.DepartmentModel
		if err := tx.Where("department_id = ? AND department_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Department not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch department")
		}
		if err := helper.EnsureNoDependents(tx, &peopleModel.StaffModel{}, "staff members",
			"staff_department_id = ?", row.DepartmentID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete department")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Department deleted", fiber.Map{"department_id": id})
}

/* =========================================================
   DESIGNATIONS
   ========================================================= */

type DesignationController struct {
	DB *gorm.DB
}

// GET /api/a/designations
func (ctl *DesignationController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&peopleModel.DesignationModel{}).Where("designation_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(designation_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count designations")
	}
	var rows []peopleModel.DesignationModel
	if err := q.Order("designation_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list designations")
	}
	return helper.JsonList(c, "Designations fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/designations
func (ctl *DesignationController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req peopleDTO.CreateDesignationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created peopleModel.DesignationModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &peopleModel.DesignationModel{}, "designation name",
			"designation_school_id = ? AND lower(designation_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "designation name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create designation")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Designation created", created)
}

// PUT /api/a/designations/:id
func (ctl *DesignationController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req peopleDTO.UpdateDesignationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row peopleModel.DesignationModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("designation_id = ? AND designation_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Designation not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch designation")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.DesignationName) {
			if err := helper.EnsureUnique(tx, &peopleModel.DesignationModel{}, "designation name",
				"designation_school_id = ? AND lower(designation_name) = lower(?) AND designation_id <> ?",
				schoolID, *req.Name, row.DesignationID); err != nil {
				return err
			}
			row.DesignationName = *req.Name
		}
		if req.Desc != nil {
			row.DesignationDesc = req.Desc
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update designation")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Designation updated", row)
}

// DELETE /api/a/designations/:id: blocked while staff reference it.
func (ctl *DesignationController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row peopleModel.DesignationModel
		if err := tx.Where("designation_id = ? AND designation_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Designation not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch designation")
		}
		if err := helper.EnsureNoDependents(tx, &peopleModel.StaffModel{}, "staff members",
			"staff_designation_id = ?", row.DesignationID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete designation")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Designation deleted", fiber.Map{"designation_id": id})
}
