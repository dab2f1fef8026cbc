// file: internals/features/school/operations/controller/transport_controller.go
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

type TransportRouteController struct {
	DB *gorm.DB
}

// GET /api/a/transport-routes
func (ctl *TransportRouteController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.TransportRouteModel{}).Where("transport_route_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(transport_route_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count transport routes")
	}
	var rows []opsModel.TransportRouteModel
	if err := q.Order("transport_route_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list transport routes")
	}
	return helper.JsonList(c, "Transport routes fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/transport-routes
func (ctl *TransportRouteController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreateTransportRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.TransportRouteModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &opsModel.TransportRouteModel{}, "route name",
			"transport_route_school_id = ? AND lower(transport_route_name) = lower(?)",
			schoolID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create transport route")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Transport route created", created)
}

// PUT /api/a/transport-routes/:id
func (ctl *TransportRouteController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req opsDTO.UpdateTransportRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row opsModel.TransportRouteModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transport_route_id = ? AND transport_route_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Transport route not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transport route")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.TransportRouteName) {
			if err := helper.EnsureUnique(tx, &opsModel.TransportRouteModel{}, "route name",
				"transport_route_school_id = ? AND lower(transport_route_name) = lower(?) AND transport_route_id <> ?",
				schoolID, *req.Name, row.TransportRouteID); err != nil {
				return err
			}
			row.TransportRouteName = *req.Name
		}
		if req.Desc != nil {
			row.TransportRouteDesc = req.Desc
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update transport route")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Transport route updated", row)
}

// DELETE /api/a/transport-routes/:id: blocked while pickup points exist.
func (ctl *TransportRouteController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row opsModel.TransportRouteModel
		if err := tx.Where("transport_route_id = ? AND transport_route_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Transport route not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transport route")
		}
		if err := helper.EnsureNoDependents(tx, &opsModel.PickupPointModel{}, "pickup points",
			"pickup_point_route_id = ?", row.TransportRouteID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete transport route")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Transport route deleted", fiber.Map{"transport_route_id": id})
}

/* =========================================================
   PICKUP POINTS
   ========================================================= */

type PickupPointController struct {
	DB *gorm.DB
}

// GET /api/a/pickup-points?route_id=
func (ctl *PickupPointController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&opsModel.PickupPointModel{}).Where("pickup_point_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("route_id")); v != "" {
		rid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid route_id filter")
		}
		q = q.Where("pickup_point_route_id = ?", rid)
	}
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(pickup_point_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count pickup points")
	}
	var rows []opsModel.PickupPointModel
	if err := q.Order("pickup_point_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list pickup points")
	}
	return helper.JsonList(c, "Pickup points fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/pickup-points: the route must belong to the tenant.
func (ctl *PickupPointController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req opsDTO.CreatePickupPointRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created opsModel.PickupPointModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureTenantRow(tx, &opsModel.TransportRouteModel{},
			"transport_route_id = ? AND transport_route_school_id = ?", "Transport route",
			req.RouteID, schoolID); err != nil {
			return err
		}
		if err := helper.EnsureUnique(tx, &opsModel.PickupPointModel{}, "pickup point name",
			"pickup_point_route_id = ? AND lower(pickup_point_name) = lower(?)",
			req.RouteID, req.Name); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create pickup point")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Pickup point created", created)
}

// PUT /api/a/pickup-points/:id
func (ctl *PickupPointController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req opsDTO.UpdatePickupPointRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row opsModel.PickupPointModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pickup_point_id = ? AND pickup_point_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pickup point not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch pickup point")
		}
		if req.Name != nil && !strings.EqualFold(*req.Name, row.PickupPointName) {
			if err := helper.EnsureUnique(tx, &opsModel.PickupPointModel{}, "pickup point name",
				"pickup_point_route_id = ? AND lower(pickup_point_name) = lower(?) AND pickup_point_id <> ?",
				row.PickupPointRouteID, *req.Name, row.PickupPointID); err != nil {
				return err
			}
			row.PickupPointName = *req.Name
		}
		if req.Time != nil {
			row.PickupPointTime = req.Time
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update pickup point")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Pickup point updated", row)
}

// DELETE /api/a/pickup-points/:id: blocked while students use it.
func (ctl *PickupPointController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row opsModel.PickupPointModel
		if err := tx.Where("pickup_point_id = ? AND pickup_point_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pickup point not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch pickup point")
		}
		if err := helper.EnsureNoDependents(tx, &peopleModel.StudentModel{}, "students",
			"student_pickup_point_id = ?", row.PickupPointID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete pickup point")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Pickup point deleted", fiber.Map{"pickup_point_id": id})
}
