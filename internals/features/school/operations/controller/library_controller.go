// file: internals/features/school/operations/controller/library_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	opsDTO "schoolku_backend/internals/features/school/operations/dto"
	opsModel "schoolku_backend/internals/features/school/operations/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type LibraryMemberController struct {
	DB *gorm.DB
}

// GET /api/a/library-members
func (ctl *LibraryMemberController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.LibraryMemberModel{}).Where("library_member_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(library_member_name) LIKE ? OR lower(library_member_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count library members")
	}
	var rows []opsModel.LibraryMemberModel
	if err := q.Order("library_member_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list library members")
	}
	return helper.JsonList(c, "Library members fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/library-members: member code unique per tenant.
func (ctl *LibraryMemberController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateLibraryMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.LibraryMemberModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &opsModel.LibraryMemberModel{}, "member code",
			"library_member_school_id = ? AND lower(library_member_code) = lower(?)",
			schoolID, req.Code); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "member code already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create library member")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Library member created", created)
}

// PUT /api/a/library-members/:id
func (ctl *LibraryMemberController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req opsDTO.UpdateLibraryMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row opsModel.LibraryMemberModel
	if err := ctl.DB.Where("library_member_id = ? AND library_member_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Library member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch library member")
	}
	if req.Name != nil {
		row.LibraryMemberName = *req.Name
	}
	if req.Type != nil {
		row.LibraryMemberType = req.Type
	}
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update library member")
	}
	return helper.JsonUpdated(c, "Library member updated", row)
}

// DELETE /api/a/library-members/:id: blocked while books are out.
func (ctl *LibraryMemberController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row opsModel.LibraryMemberModel
		if err := tx.Where("library_member_id = ? AND library_member_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Library member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch library member")
		}
		if err := helper.EnsureNoDependents(tx, &opsModel.BookIssueModel{}, "open book issues",
			"book_issue_member_id = ? AND book_issue_returned_at IS NULL", row.LibraryMemberID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete library member")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Library member deleted", fiber.Map{"library_member_id": id})
}

/* =========================================================
   BOOK ISSUES
   ========================================================= */

type BookIssueController struct {
	DB *gorm.DB
}

// GET /api/a/book-issues?member_id=&status=open|returned
func (ctl *BookIssueController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.BookIssueModel{}).Where("book_issue_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("member_id")); v != "" {
		mid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid member_id filter")
		}
		q = q.Where("book_issue_member_id = ?", mid)
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("status"))) {
	case "open":
		q = q.Where("book_issue_returned_at IS NULL")
	case "returned":
		q = q.Where("book_issue_returned_at IS NOT NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count book issues")
	}
	var rows []opsModel.BookIssueModel
	if err := q.Order("book_issue_issued_at DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list book issues")
	}
	return helper.JsonList(c, "Book issues fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/book-issues
func (ctl *BookIssueController) Issue(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateBookIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.BookIssueModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureTenantRow(tx, &opsModel.LibraryMemberModel{},
			"library_member_id = ? AND library_member_school_id = ?", "Library member",
			req.MemberID, schoolID); err != nil {
			return err
		}
		created = opsModel.BookIssueModel{
			BookIssueSchoolID:  schoolID,
			BookIssueMemberID:  req.MemberID,
			BookIssueBookTitle: req.BookTitle,
			BookIssueIssuedAt:  time.Now(),
			BookIssueDueDate:   req.DueDate,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record book issue")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Book issued", created)
}

// POST /api/a/book-issues/:id/return: terminal; a second call conflicts.
func (ctl *BookIssueController) Return(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row opsModel.BookIssueModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_issue_id = ? AND book_issue_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Book issue not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch book issue")
		}
		// Keyed on the open state so a second return cannot land.
		now := time.Now()
		res := tx.Model(&opsModel.BookIssueModel{}).
			Where("book_issue_id = ? AND book_issue_returned_at IS NULL", row.BookIssueID).
			UpdateColumn("book_issue_returned_at", now)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update book issue")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "book is already returned")
		}
		row.BookIssueReturnedAt = &now
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Book returned", row)
}
