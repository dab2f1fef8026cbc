// file: internals/features/school/operations/controller/hostel_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	opsDTO "schoolku_backend/internals/features/school/operations/dto"
	opsModel "schoolku_backend/internals/features/school/operations/model"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type HostelController struct {
	DB *gorm.DB
}

// GET /api/a/hostels
func (ctl *HostelController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.HostelModel{}).Where("hostel_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(hostel_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count hostels")
	}
	var rows []opsModel.HostelModel
	if err := q.Order("hostel_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list hostels")
	}
	return helper.JsonList(c, "Hostels fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/hostels
func (ctl *HostelController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateHostelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.HostelModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &opsModel.HostelModel{}, "hostel name",
			"hostel_school_id = ? AND lower(hostel_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create hostel")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Hostel created", created)
}

// PUT /api/a/hostels/:id
func (ctl *HostelController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req opsDTO.UpdateHostelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row opsModel.HostelModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hostel_id = ? AND hostel_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Hostel not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch hostel")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.HostelName) {
			if err := helper.EnsureUnique(tx, &opsModel.HostelModel{}, "hostel name",
				"hostel_school_id = ? AND lower(hostel_name) = lower(?) AND hostel_id <> ?",
				schoolID, *req.Name, row.HostelID); err != nil {
				return err
			}
			row.HostelName = *req.Name
		}
		if req.Address != nil {
			row.HostelAddress = req.Address
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update hostel")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Hostel updated", row)
}

// DELETE /api/a/hostels/:id: blocked while rooms exist.
func (ctl *HostelController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row opsModel.HostelModel
		if err := tx.Where("hostel_id = ? AND hostel_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Hostel not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch hostel")
		}
		if err := helper.EnsureNoDependents(tx, &opsModel.RoomModel{}, "rooms",
			"room_hostel_id = ?", row.HostelID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete hostel")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Hostel deleted", fiber.Map{"hostel_id": id})
}

/* =========================================================
   ROOM TYPES
   ========================================================= */

type RoomTypeController struct {
	DB *gorm.DB
}

// GET /api/a/room-types
func (ctl *RoomTypeController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.RoomTypeModel{}).Where("room_type_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(room_type_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count room types")
	}
	var rows []opsModel.RoomTypeModel
	if err := q.Order("room_type_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list room types")
	}
	return helper.JsonList(c, "Room types fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/room-types
func (ctl *RoomTypeController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateRoomTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.RoomTypeModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &opsModel.RoomTypeModel{}, "room type name",
			"room_type_school_id = ? AND lower(room_type_name) = lower(?)", schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create room type")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Room type created", created)
}

// PUT /api/a/room-types/:id
func (ctl *RoomTypeController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req opsDTO.UpdateRoomTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row opsModel.RoomTypeModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_type_id = ? AND room_type_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Room type not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch room type")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.RoomTypeName) {
			if err := helper.EnsureUnique(tx, &opsModel.RoomTypeModel{}, "room type name",
				"room_type_school_id = ? AND lower(room_type_name) = lower(?) AND room_type_id <> ?",
				schoolID, *req.Name, row.RoomTypeID); err != nil {
				return err
			}
			row.RoomTypeName = *req.Name
		}
		if req.Desc != nil {
			row.RoomTypeDesc = req.Desc
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update room type")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Room type updated", row)
}

// DELETE /api/a/room-types/:id: blocked while rooms use it.
func (ctl *RoomTypeController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row opsModel.RoomTypeModel
		if err := tx.Where("room_type_id = ? AND room_type_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Room type not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch room type")
		}
		if err := helper.EnsureNoDependents(tx, &opsModel.RoomModel{}, "rooms",
			"room_room_type_id = ?", row.RoomTypeID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete room type")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Room type deleted", fiber.Map{"room_type_id": id})
}

/* =========================================================
   ROOMS
   ========================================================= */

type RoomController struct {
	DB *gorm.DB
}

// GET /api/a/rooms?hostel_id=
func (ctl *RoomController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.RoomModel{}).Where("room_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("hostel_id")); v != "" {
		hid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid hostel_id filter")
		}
		q = q.Where("room_hostel_id = ?", hid)
	}
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(room_number) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count rooms")
	}
	var rows []opsModel.RoomModel
	if err := q.Order("room_number ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list rooms")
	}
	return helper.JsonList(c, "Rooms fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/rooms: hostel and optional room type must belong to the
// tenant; room number unique within the hostel.
func (ctl *RoomController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.RoomModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureTenantRow(tx, &opsModel.HostelModel{},
			"hostel_id = ? AND hostel_school_id = ?", "Hostel", req.HostelID, schoolID); err != nil {
			return err
		}
		if req.RoomTypeID != nil {
			if err := ensureTenantRow(tx, &opsModel.RoomTypeModel{},
				"room_type_id = ? AND room_type_school_id = ?", "Room type",
				*req.RoomTypeID, schoolID); err != nil {
				return err
			}
		}
		if err := helper.EnsureUnique(tx, &opsModel.RoomModel{}, "room number",
			"room_hostel_id = ? AND lower(room_number) = lower(?)", req.HostelID, req.Number); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create room")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Room created", created)
}

// PUT /api/a/rooms/:id: capacity can only shrink down to the current
// occupancy.
func (ctl *RoomController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req opsDTO.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row opsModel.RoomModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ? AND room_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Room not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch room")
		}
		if req.Number != nil && !strings.EqualFold(*req.Number, row.RoomNumber) {
			if err := helper.EnsureUnique(tx, &opsModel.RoomModel{}, "room number",
				"room_hostel_id = ? AND lower(room_number) = lower(?) AND room_id <> ?",
				row.RoomHostelID, *req.Number, row.RoomID); err != nil {
				return err
			}
			row.RoomNumber = *req.Number
		}
		if req.RoomTypeID != nil {
			if err := ensureTenantRow(tx, &opsModel.RoomTypeModel{},
				"room_type_id = ? AND room_type_school_id = ?", "Room type",
				*req.RoomTypeID, schoolID); err != nil {
				return err
			}
			row.RoomRoomTypeID = req.RoomTypeID
		}
		if req.Capacity != nil {
			if *req.Capacity < row.RoomOccupied {
				return fiber.NewError(fiber.StatusConflict, "capacity cannot drop below current occupancy")
			}
			row.RoomCapacity = *req.Capacity
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update room")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Room updated", row)
}

// DELETE /api/a/rooms/:id: blocked while occupied or students assigned.
func (ctl *RoomController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row opsModel.RoomModel
		if err := tx.Where("room_id = ? AND room_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Room not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch room")
		}
		if row.RoomOccupied > 0 {
			return fiber.NewError(fiber.StatusConflict, "room is still occupied")
		}
		if err := helper.EnsureNoDependents(tx, &peopleModel.StudentModel{}, "students",
			"student_room_id = ?", row.RoomID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete room")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Room deleted", fiber.Map{"room_id": id})
}

// ensureTenantRow turns a missing foreign row into a 400 instead of a
// bare constraint error.
func ensureTenantRow(tx *gorm.DB, model any, cond, label string, args ...any) error {
	var n int64
	if err := tx.Model(model).Where(cond, args...).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check "+strings.ToLower(label))
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, label+" not found in this school")
	}
	return nil
}
