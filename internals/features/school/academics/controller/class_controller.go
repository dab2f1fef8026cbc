// file: internals/features/school/academics/controller/class_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicDTO "schoolku_backend/internals/features/school/academics/dto"
	academicModel "schoolku_backend/internals/features/school/academics/model"
	financeModel "schoolku_backend/internals/features/school/finance/model"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

// GET /api/a/classes?search=&status=&page=&per_page=
// Section/student badges come from correlated aggregates in the same
// statement, not per-row follow-up queries.
func (ctl *ClassController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	base := ctl.DB.Model(&academicModel.ClassModel{}).Where("class_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		base = base.Where("lower(class_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		base = base.Where("class_is_active = ?", strings.EqualFold(status, "active"))
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count classes")
	}

	var rows []academicDTO.ClassResponse
	if err := base.
		Select(`classes.*,
			(SELECT count(*) FROM class_sections cs
				WHERE cs.class_section_class_id = classes.class_id
				AND cs.class_section_deleted_at IS NULL) AS section_count,
			(SELECT count(*) FROM students st
				JOIN class_sections cs2 ON st.student_class_section_id = cs2.class_section_id
				WHERE cs2.class_section_class_id = classes.class_id
				AND st.student_deleted_at IS NULL
				AND cs2.class_section_deleted_at IS NULL) AS student_count`).
		Order("class_display_order ASC, class_name ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list classes")
	}

	return helper.JsonList(c, "Classes fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/classes/:id
func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row academicModel.ClassModel
	if err := ctl.DB.Where("class_id = ? AND class_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}
	return helper.JsonOK(c, "Class detail", row)
}

// POST /api/a/classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req academicDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created academicModel.ClassModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &academicModel.ClassModel{}, "class name",
			"class_school_id = ? AND lower(class_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "class name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Class created", created)
}

// PUT /api/a/classes/:id
func (ctl *ClassController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req academicDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row academicModel.ClassModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ? AND class_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.ClassName) {
			if err := helper.EnsureUnique(tx, &academicModel.ClassModel{}, "class name",
				"class_school_id = ? AND lower(class_name) = lower(?) AND class_id <> ?",
				schoolID, *req.Name, row.ClassID); err != nil {
				return err
			}
			row.ClassName = *req.Name
			row.ClassSlug = helper.Slugify(*req.Name, 120)
		}
		if req.DisplayOrder != nil {
			row.ClassDisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			row.ClassIsActive = *req.IsActive
		}
		if err := tx.Save(&row).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "class name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update class")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Class updated", row)
}

// DELETE /api/a/classes/:id: blocked while class-sections or fee masters
// still reference the class.
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row academicModel.ClassModel
		if err := tx.Where("class_id = ? AND class_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
		}
		if err := helper.EnsureNoDependents(tx, &academicModel.ClassSectionModel{}, "class sections",
			"class_section_class_id = ?", row.ClassID); err != nil {
			return err
		}
		if err := helper.EnsureNoDependents(tx, &financeModel.FeeMasterModel{}, "fee masters",
			"fee_master_class_id = ?", row.ClassID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			if helper.IsForeignKeyViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "class is still referenced by other records")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"class_id": id})
}

/* =========================================================
   SECTIONS
   ========================================================= */

type SectionController struct {
	DB *gorm.DB
}

// GET /api/a/sections
func (ctl *SectionController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&academicModel.SectionModel{}).Where("section_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(section_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count sections")
	}
	var rows []academicModel.SectionModel
	if err := q.Order("section_display_order ASC, section_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list sections")
	}
	return helper.JsonList(c, "Sections fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/sections
func (ctl *SectionController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req academicDTO.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created academicModel.SectionModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &academicModel.SectionModel{}, "section name",
			"section_school_id = ? AND lower(section_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "section name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create section")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Section created", created)
}

// PUT /api/a/sections/:id
func (ctl *SectionController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req academicDTO.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row academicModel.SectionModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ? AND section_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch section")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.SectionName) {
			if err := helper.EnsureUnique(tx, &academicModel.SectionModel{}, "section name",
				"section_school_id = ? AND lower(section_name) = lower(?) AND section_id <> ?",
				schoolID, *req.Name, row.SectionID); err != nil {
				return err
			}
			row.SectionName = *req.Name
		}
		if req.DisplayOrder != nil {
			row.SectionDisplayOrder = *req.DisplayOrder
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update section")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Section updated", row)
}

// DELETE /api/a/sections/:id: blocked while class-sections reference it.
func (ctl *SectionController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row academicModel.SectionModel
		if err := tx.Where("section_id = ? AND section_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch section")
		}
		if err := helper.EnsureNoDependents(tx, &academicModel.ClassSectionModel{}, "class sections",
			"class_section_section_id = ?", row.SectionID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete section")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Section deleted", fiber.Map{"section_id": id})
}

/* =========================================================
   CLASS SECTIONS (join)
   ========================================================= */

type ClassSectionController struct {
	DB *gorm.DB
}

// GET /api/a/class-sections?class_id=&section_id=
func (ctl *ClassSectionController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&academicModel.ClassSectionModel{}).
		Where("class_section_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("class_id")); v != "" {
		cid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id filter")
		}
		q = q.Where("class_section_class_id = ?", cid)
	}
	if v := strings.TrimSpace(c.Query("section_id")); v != "" {
		sid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section_id filter")
		}
		q = q.Where("class_section_section_id = ?", sid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count class sections")
	}
	var rows []academicModel.ClassSectionModel
	if err := q.Order("class_section_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list class sections")
	}
	return helper.JsonList(c, "Class sections fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/class-sections: both referenced rows must belong to the tenant.
func (ctl *ClassSectionController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req academicDTO.CreateClassSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created academicModel.ClassSectionModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var cls academicModel.ClassModel
		if err := tx.Where("class_id = ? AND class_school_id = ?", req.ClassID, schoolID).
			First(&cls).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Class not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check class")
		}
		var sec academicModel.SectionModel
		if err := tx.Where("section_id = ? AND section_school_id = ?", req.SectionID, schoolID).
			First(&sec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Section not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check section")
		}
		if err := helper.EnsureUnique(tx, &academicModel.ClassSectionModel{}, "class-section pair",
			"class_section_school_id = ? AND class_section_class_id = ? AND class_section_section_id = ?",
			schoolID, req.ClassID, req.SectionID); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "class-section pair already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class section")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Class section created", created)
}

// PUT /api/a/class-sections/:id
func (ctl *ClassSectionController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req academicDTO.UpdateClassSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row academicModel.ClassSectionModel
	if err := ctl.DB.Where("class_section_id = ? AND class_section_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class section")
	}
	if req.Capacity != nil {
		row.ClassSectionCapacity = req.Capacity
	}
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class section")
	}
	return helper.JsonUpdated(c, "Class section updated", row)
}

// DELETE /api/a/class-sections/:id: blocked while students are assigned.
func (ctl *ClassSectionController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row academicModel.ClassSectionModel
		if err := tx.Where("class_section_id = ? AND class_section_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class section not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class section")
		}
		if err := helper.EnsureNoDependents(tx, &peopleModel.StudentModel{}, "students",
			"student_class_section_id = ?", row.ClassSectionID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class section")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Class section deleted", fiber.Map{"class_section_id": id})
}
