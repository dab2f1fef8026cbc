// file: internals/features/school/finance/controller/fee_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicModel "schoolku_backend/internals/features/school/academics/model"
	financeDTO "schoolku_backend/internals/features/school/finance/dto"
	financeModel "schoolku_backend/internals/features/school/finance/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeeTypeController struct {
	DB *gorm.DB
}

// GET /api/a/fee-types
func (ctl *FeeTypeController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&financeModel.FeeTypeModel{}).Where("fee_type_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(fee_type_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count fee types")
	}
	var rows []financeModel.FeeTypeModel
	if err := q.Order("fee_type_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list fee types")
	}
	return helper.JsonList(c, "Fee types fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/fee-types
func (ctl *FeeTypeController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req financeDTO.CreateFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created financeModel.FeeTypeModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &financeModel.FeeTypeModel{}, "fee type name",
			"fee_type_school_id = ? AND lower(fee_type_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "fee type name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee type")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Fee type created", created)
}

// PUT /api/a/fee-types/:id
func (ctl *FeeTypeController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req financeDTO.UpdateFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row financeModel.FeeTypeModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_type_id = ? AND fee_type_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Fee type not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee type")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.FeeTypeName) {
			if err := helper.EnsureUnique(tx, &financeModel.FeeTypeModel{}, "fee type name",
				"fee_type_school_id = ? AND lower(fee_type_name) = lower(?) AND fee_type_id <> ?",
				schoolID, *req.Name, row.FeeTypeID); err != nil {
				return err
			}
			row.FeeTypeName = *req.Name
		}
		if req.Desc != nil {
			row.FeeTypeDesc = req.Desc
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee type")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Fee type updated", row)
}

// DELETE /api/a/fee-types/:id: blocked while fee masters reference it.
func (ctl *FeeTypeController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row financeModel.FeeTypeModel
		if err := tx.Where("fee_type_id = ? AND fee_type_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Fee type not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee type")
		}
		if err := helper.EnsureNoDependents(tx, &financeModel.FeeMasterModel{}, "fee masters",
			"fee_master_type_id = ?", row.FeeTypeID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee type")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Fee type deleted", fiber.Map{"fee_type_id": id})
}

/* =========================================================
   FEE GROUPS
   ========================================================= */

type FeeGroupController struct {
	DB *gorm.DB
}

// GET /api/a/fee-groups
func (ctl *FeeGroupController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&financeModel.FeeGroupModel{}).Where("fee_group_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(fee_group_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count fee groups")
	}
	var rows []financeModel.FeeGroupModel
	if err := q.Order("fee_group_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list fee groups")
	}
	return helper.JsonList(c, "Fee groups fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/fee-groups
func (ctl *FeeGroupController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req financeDTO.CreateFeeGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created financeModel.FeeGroupModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &financeModel.FeeGroupModel{}, "fee group name",
			"fee_group_school_id = ? AND lower(fee_group_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "fee group name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee group")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Fee group created", created)
}

// PUT /api/a/fee-groups/:id
func (ctl *FeeGroupController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req financeDTO.UpdateFeeGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row financeModel.FeeGroupModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_group_id = ? AND fee_group_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Fee group not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee group")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.FeeGroupName) {
			if err := helper.EnsureUnique(tx, &financeModel.FeeGroupModel{}, "fee group name",
				"fee_group_school_id = ? AND lower(fee_group_name) = lower(?) AND fee_group_id <> ?",
				schoolID, *req.Name, row.FeeGroupID); err != nil {
				return err
			}
			row.FeeGroupName = *req.Name
		}
		if req.Desc != nil {
			row.FeeGroupDesc = req.Desc
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee group")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Fee group updated", row)
}

// DELETE /api/a/fee-groups/:id: blocked while fee masters reference it.
func (ctl *FeeGroupController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row financeModel.FeeGroupModel
		if err := tx.Where("fee_group_id = ? AND fee_group_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Fee group not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee group")
		}
		if err := helper.EnsureNoDependents(tx, &financeModel.FeeMasterModel{}, "fee masters",
			"fee_master_group_id = ?", row.FeeGroupID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee group")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Fee group deleted", fiber.Map{"fee_group_id": id})
}

/* =========================================================
   FEE MASTERS
   ========================================================= */

type FeeMasterController struct {
	DB *gorm.DB
}

// GET /api/a/fee-masters?class_id=&group_id=&type_id=
func (ctl *FeeMasterController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&financeModel.FeeMasterModel{}).Where("fee_master_school_id = ?", schoolID)
	for param, col := range map[string]string{
		"class_id": "fee_master_class_id",
		"group_id": "fee_master_group_id",
		"type_id":  "fee_master_type_id",
	} {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			fid, err := uuid.Parse(v)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid "+param+" filter")
			}
			q = q.Where(col+" = ?", fid)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count fee masters")
	}
	var rows []financeModel.FeeMasterModel
	if err := q.Order("fee_master_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list fee masters")
	}
	return helper.JsonList(c, "Fee masters fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/fee-masters: class, group and type must all belong to the
// tenant; the triple is unique.
func (ctl *FeeMasterController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req financeDTO.CreateFeeMasterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created financeModel.FeeMasterModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&academicModel.ClassModel{}).
			Where("class_id = ? AND class_school_id = ?", req.ClassID, schoolID).
			Count(&n).Error; err != nil || n == 0 {
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check class")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Class not found in this school")
		}
		if err := tx.Model(&financeModel.FeeGroupModel{}).
			Where("fee_group_id = ? AND fee_group_school_id = ?", req.GroupID, schoolID).
			Count(&n).Error; err != nil || n == 0 {
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check fee group")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Fee group not found in this school")
		}
		if err := tx.Model(&financeModel.FeeTypeModel{}).
			Where("fee_type_id = ? AND fee_type_school_id = ?", req.TypeID, schoolID).
			Count(&n).Error; err != nil || n == 0 {
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check fee type")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Fee type not found in this school")
		}
		if err := helper.EnsureUnique(tx, &financeModel.FeeMasterModel{}, "fee master combination",
			"fee_master_school_id = ? AND fee_master_class_id = ? AND fee_master_group_id = ? AND fee_master_type_id = ?",
			schoolID, req.ClassID, req.GroupID, req.TypeID); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "fee master combination already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee master")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Fee master created", created)
}

// PUT /api/a/fee-masters/:id
func (ctl *FeeMasterController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req financeDTO.UpdateFeeMasterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row financeModel.FeeMasterModel
	if err := ctl.DB.Where("fee_master_id = ? AND fee_master_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee master not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch fee master")
	}
	if req.Amount != nil {
		row.FeeMasterAmount = *req.Amount
	}
	if req.DueDate != nil {
		row.FeeMasterDueDate = req.DueDate
	}
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update fee master")
	}
	return helper.JsonUpdated(c, "Fee master updated", row)
}

// DELETE /api/a/fee-masters/:id: blocked while payments reference it.
func (ctl *FeeMasterController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row financeModel.FeeMasterModel
		if err := tx.Where("fee_master_id = ? AND fee_master_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Fee master not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee master")
		}
		if err := helper.EnsureNoDependents(tx, &financeModel.FeePaymentModel{}, "fee payments",
			"fee_payment_fee_master_id = ?", row.FeeMasterID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee master")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Fee master deleted", fiber.Map{"fee_master_id": id})
}
