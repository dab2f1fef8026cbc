// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userDTO "schoolku_backend/internals/features/users/user/dto"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

// GET /api/a/users?search=&role=&status=&page=&per_page=
func (ctl *UserController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&userModel.UserModel{}).Where("user_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(user_name) LIKE ? OR lower(coalesce(user_email,'')) LIKE ?", like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("user_role = ?", strings.ToLower(role))
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("user_is_active = ?", strings.EqualFold(status, "active"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}
	var rows []userModel.UserModel
	if err := q.Order("user_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}
	return helper.JsonList(c, "Users fetched", userDTO.FromUserModels(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/users/:id
func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row userModel.UserModel
	if err := ctl.DB.Where("user_id = ? AND user_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return helper.JsonOK(c, "User detail", userDTO.FromUserModel(row))
}

// POST /api/a/users/:id/activate
func (ctl *UserController) Activate(c *fiber.Ctx) error { return ctl.setActive(c, true) }

// POST /api/a/users/:id/deactivate: soft-disable; the login row is never
// hard-deleted while a staff/student profile references it.
func (ctl *UserController) Deactivate(c *fiber.Ctx) error { return ctl.setActive(c, false) }

func (ctl *UserController) setActive(c *fiber.Ctx, active bool) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row userModel.UserModel
	if err := ctl.DB.Where("user_id = ? AND user_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	if err := ctl.DB.Model(&row).Update("user_is_active", active).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	row.UserIsActive = active
	msg := "User deactivated"
	if active {
		msg = "User activated"
	}
	return helper.JsonUpdated(c, msg, userDTO.FromUserModel(row))
}
