// file: internals/features/users/roles/controller/role_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	roleDTO "schoolku_backend/internals/features/users/roles/dto"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type RoleController struct {
	DB *gorm.DB
}

// GET /api/a/roles?search=&page=&per_page=
func (ctl *RoleController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&roleModel.RoleModel{}).Where("role_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(role_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count roles")
	}
	var rows []roleModel.RoleModel
	if err := q.Order("role_is_system DESC, role_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list roles")
	}
	return helper.JsonList(c, "Roles fetched", roleDTO.FromRoleModels(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/roles/:id
func (ctl *RoleController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row roleModel.RoleModel
	if err := ctl.DB.Where("role_id = ? AND role_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Role not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch role")
	}
	return helper.JsonOK(c, "Role detail", roleDTO.FromRoleModel(row))
}

// POST /api/a/roles
func (ctl *RoleController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req roleDTO.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created roleModel.RoleModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &roleModel.RoleModel{}, "role name",
			"role_school_id = ? AND lower(role_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "role name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create role")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Role created", roleDTO.FromRoleModel(created))
}

// PUT /api/a/roles/:id
func (ctl *RoleController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req roleDTO.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row roleModel.RoleModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ? AND role_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Role not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch role")
		}
		if row.RoleIsSystem {
			return fiber.NewError(fiber.StatusConflict, "system roles cannot be modified")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.RoleName) {
			if err := helper.EnsureUnique(tx, &roleModel.RoleModel{}, "role name",
				"role_school_id = ? AND lower(role_name) = lower(?) AND role_id <> ?",
				schoolID, *req.Name, row.RoleID); err != nil {
				return err
			}
			row.RoleName = *req.Name
		}
		if req.Permissions != nil {
			row.RolePermissions = roleDTO.PermissionsJSON(*req.Permissions)
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update role")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Role updated", roleDTO.FromRoleModel(row))
}

// DELETE /api/a/roles/:id
func (ctl *RoleController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row roleModel.RoleModel
		if err := tx.Where("role_id = ? AND role_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Role not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch role")
		}
		if row.RoleIsSystem {
			return fiber.NewError(fiber.StatusConflict, "system roles cannot be deleted")
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete role")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Role deleted", fiber.Map{"role_id": id})
}
