// file: internals/features/school/operations/controller/inventory_controller.go
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

type ItemController struct {
	DB *gorm.DB
}

// GET /api/a/items
func (ctl *ItemController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.ItemModel{}).Where("item_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(item_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count items")
	}
	var rows []opsModel.ItemModel
	if err := q.Order("item_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list items")
	}
	return helper.JsonList(c, "Items fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/items
func (ctl *ItemController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.ItemModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &opsModel.ItemModel{}, "item name",
			"item_school_id = ? AND lower(item_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create item")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Item created", created)
}

// PUT /api/a/items/:id
func (ctl *ItemController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req opsDTO.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row opsModel.ItemModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ? AND item_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Item not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch item")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.ItemName) {
			if err := helper.EnsureUnique(tx, &opsModel.ItemModel{}, "item name",
				"item_school_id = ? AND lower(item_name) = lower(?) AND item_id <> ?",
				schoolID, *req.Name, row.ItemID); err != nil {
				return err
			}
			row.ItemName = *req.Name
		}
		if req.Desc != nil {
			row.ItemDesc = req.Desc
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update item")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Item updated", row)
}

// DELETE /api/a/items/:id: blocked while issues are outstanding.
func (ctl *ItemController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row opsModel.ItemModel
		if err := tx.Where("item_id = ? AND item_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Item not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch item")
		}
		if err := helper.EnsureNoDependents(tx, &opsModel.ItemIssueModel{}, "open item issues",
			"item_issue_item_id = ? AND item_issue_returned_at IS NULL", row.ItemID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete item")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Item deleted", fiber.Map{"item_id": id})
}

/* =========================================================
   ITEM ISSUES
   ========================================================= */

type ItemIssueController struct {
	DB *gorm.DB
}

// GET /api/a/item-issues?item_id=&status=open|returned
func (ctl *ItemIssueController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.ItemIssueModel{}).Where("item_issue_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("item_id")); v != "" {
		iid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid item_id filter")
		}
		q = q.Where("item_issue_item_id = ?", iid)
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("status"))) {
	case "open":
		q = q.Where("item_issue_returned_at IS NULL")
	case "returned":
		q = q.Where("item_issue_returned_at IS NOT NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count item issues")
	}
	var rows []opsModel.ItemIssueModel
	if err := q.Order("item_issue_issued_at DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list item issues")
	}
	return helper.JsonList(c, "Item issues fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/item-issues: decrements availability, fails when none left.
func (ctl *ItemIssueController) Issue(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateItemIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.ItemIssueModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var item opsModel.ItemModel
		if err := tx.Where("item_id = ? AND item_school_id = ?", req.ItemID, schoolID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Item not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check item")
		}
		if item.ItemAvailable <= 0 {
			return fiber.NewError(fiber.StatusConflict, "no units of this item are available")
		}

		res := tx.Model(&opsModel.ItemModel{}).
			Where("item_id = ? AND item_available > 0", item.ItemID).
			UpdateColumn("item_available", gorm.Expr("item_available - 1"))
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update item availability")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "no units of this item are available")
		}

		created = opsModel.ItemIssueModel{
			ItemIssueSchoolID: schoolID,
			ItemIssueItemID:   item.ItemID,
			ItemIssueIssuedTo: req.IssuedTo,
			ItemIssueIssuedAt: time.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record item issue")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Item issued", created)
}

// POST /api/a/item-issues/:id/return: terminal; a second call conflicts.
func (ctl *ItemIssueController) Return(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row opsModel.ItemIssueModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_issue_id = ? AND item_issue_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Item issue not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch item issue")
		}
		// Keyed on the open state so a second return cannot land.
		now := time.Now()
		res := tx.Model(&opsModel.ItemIssueModel{}).
			Where("item_issue_id = ? AND item_issue_returned_at IS NULL", row.ItemIssueID).
			UpdateColumn("item_issue_returned_at", now)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update item issue")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "item issue is already returned")
		}
		row.ItemIssueReturnedAt = &now

		if err := tx.Model(&opsModel.ItemModel{}).
			Where("item_id = ?", row.ItemIssueItemID).
			UpdateColumn("item_available", gorm.Expr("item_available + 1")).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update item availability")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Item returned", row)
}
