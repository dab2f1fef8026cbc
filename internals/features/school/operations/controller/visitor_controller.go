// file: internals/features/school/operations/controller/visitor_controller.go
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

type VisitorController struct {
	DB *gorm.DB
}

// GET /api/a/visitors?status=in|out
func (ctl *VisitorController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.VisitorModel{}).Where("visitor_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(visitor_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("status"))) {
	case "in":
		q = q.Where("visitor_check_out_at IS NULL")
	case "out":
		q = q.Where("visitor_check_out_at IS NOT NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count visitors")
	}
	var rows []opsModel.VisitorModel
	if err := q.Order("visitor_check_in_at DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list visitors")
	}
	return helper.JsonList(c, "Visitors fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/visitors: check-in.
func (ctl *VisitorController) CheckIn(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateVisitorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	created := opsModel.VisitorModel{
		VisitorSchoolID:  schoolID,
		VisitorName:      req.Name,
		VisitorPhone:     req.Phone,
		VisitorPurpose:   req.Purpose,
		VisitorToMeet:    req.ToMeet,
		VisitorCheckInAt: time.Now(),
	}
	if err := ctl.DB.Create(&created).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check in visitor")
	}
	return helper.JsonCreated(c, "Visitor checked in", created)
}

// POST /api/a/visitors/:id/checkout: a second call conflicts.
func (ctl *VisitorController) CheckOut(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row opsModel.VisitorModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("visitor_id = ? AND visitor_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Visitor not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch visitor")
		}
		// Keyed on the open state so a second checkout cannot land.
		now := time.Now()
		res := tx.Model(&opsModel.VisitorModel{}).
			Where("visitor_id = ? AND visitor_check_out_at IS NULL", row.VisitorID).
			UpdateColumn("visitor_check_out_at", now)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update visitor")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "visitor is already checked out")
		}
		row.VisitorCheckOutAt = &now
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Visitor checked out", row)
}
