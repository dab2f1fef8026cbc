// file: internals/features/school/academics/controller/subject_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicDTO "schoolku_backend/internals/features/school/academics/dto"
	academicModel "schoolku_backend/internals/features/school/academics/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SubjectController struct {
	DB *gorm.DB
}

// GET /api/a/subjects?search=&status=
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&academicModel.SubjectModel{}).Where("subject_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(subject_name) LIKE ? OR lower(subject_code) LIKE ?", like, like)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("subject_is_active = ?", strings.EqualFold(status, "active"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count subjects")
	}
	var rows []academicModel.SubjectModel
	if err := q.Order("subject_code ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return helper.JsonList(c, "Subjects fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/subjects/:id
func (ctl *SubjectController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row academicModel.SubjectModel
	if err := ctl.DB.Where("subject_id = ? AND subject_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subject")
	}
	return helper.JsonOK(c, "Subject detail", row)
}

// POST /api/a/subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req academicDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created academicModel.SubjectModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &academicModel.SubjectModel{}, "subject code",
			"subject_school_id = ? AND lower(subject_code) = lower(?)", schoolID, req.Code); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "subject code already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create subject")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Subject created", created)
}

// PUT /api/a/subjects/:id
func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req academicDTO.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row academicModel.SubjectModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ? AND subject_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Subject not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch subject")
		}
		if req.Code != nil && !strings.EqualFold(*req.Code, row.SubjectCode) {
			if err := helper.EnsureUnique(tx, &academicModel.SubjectModel{}, "subject code",
				"subject_school_id = ? AND lower(subject_code) = lower(?) AND subject_id <> ?",
				schoolID, *req.Code, row.SubjectID); err != nil {
				return err
			}
			row.SubjectCode = *req.Code
		}
		if req.Name != nil {
			row.SubjectName = *req.Name
		}
		if req.Desc != nil {
			row.SubjectDesc = req.Desc
		}
		if req.IsActive != nil {
			row.SubjectIsActive = *req.IsActive
		}
		if err := tx.Save(&row).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "subject code already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update subject")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Subject updated", row)
}

// DELETE /api/a/subjects/:id: blocked while class-subject assignments exist.
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row academicModel.SubjectModel
		if err := tx.Where("subject_id = ? AND subject_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Subject not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch subject")
		}
		if err := helper.EnsureNoDependents(tx, &academicModel.ClassSubjectModel{}, "class subject assignments",
			"class_subject_subject_id = ?", row.SubjectID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete subject")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Subject deleted", fiber.Map{"subject_id": id})
}
