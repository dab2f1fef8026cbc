// file: internals/features/school/academics/controller/class_subject_controller.go
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

type ClassSubjectController struct {
	DB *gorm.DB
}

// GET /api/a/class-subjects?class_id=&subject_id=
func (ctl *ClassSubjectController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&academicModel.ClassSubjectModel{}).
		Where("class_subject_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("class_id")); v != "" {
		cid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id filter")
		}
		q = q.Where("class_subject_class_id = ?", cid)
	}
	if v := strings.TrimSpace(c.Query("subject_id")); v != "" {
		sid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject_id filter")
		}
		q = q.Where("class_subject_subject_id = ?", sid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count class subjects")
	}
	var rows []academicModel.ClassSubjectModel
	if err := q.Order("class_subject_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list class subjects")
	}
	return helper.JsonList(c, "Class subjects fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/class-subjects: both rows must belong to the tenant.
func (ctl *ClassSubjectController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req academicDTO.CreateClassSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created academicModel.ClassSubjectModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var cls academicModel.ClassModel
		if err := tx.Where("class_id = ? AND class_school_id = ?", req.ClassID, schoolID).
			First(&cls).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Class not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check class")
		}
		var sub academicModel.SubjectModel
		if err := tx.Where("subject_id = ? AND subject_school_id = ?", req.SubjectID, schoolID).
			First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Subject not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check subject")
		}
		if err := helper.EnsureUnique(tx, &academicModel.ClassSubjectModel{}, "class-subject pair",
			"class_subject_school_id = ? AND class_subject_class_id = ? AND class_subject_subject_id = ?",
			schoolID, req.ClassID, req.SubjectID); err != nil {
			return err
		}
		created = academicModel.ClassSubjectModel{
			ClassSubjectSchoolID:  schoolID,
			ClassSubjectClassID:   req.ClassID,
			ClassSubjectSubjectID: req.SubjectID,
		}
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "class-subject pair already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign subject")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Subject assigned to class", created)
}

// DELETE /api/a/class-subjects/:id
func (ctl *ClassSubjectController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	res := ctl.DB.Where("class_subject_id = ? AND class_subject_school_id = ?", id, schoolID).
		Delete(&academicModel.ClassSubjectModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove class subject")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Class subject not found")
	}
	return helper.JsonDeleted(c, "Class subject removed", fiber.Map{"class_subject_id": id})
}
