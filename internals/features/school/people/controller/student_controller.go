// file: internals/features/school/people/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	academicModel "schoolku_backend/internals/features/school/academics/model"
	financeModel "schoolku_backend/internals/features/school/finance/model"
	opsModel "schoolku_backend/internals/features/school/operations/model"
	peopleDTO "schoolku_backend/internals/features/school/people/dto"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StudentController struct {
	DB *gorm.DB
}

// GET /api/a/students?search=&status=&class_section_id=&parent_id=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&peopleModel.StudentModel{}).Where("student_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(student_name) LIKE ? OR lower(student_admission_no) LIKE ?", like, like)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("student_is_active = ?", strings.EqualFold(status, "active"))
	}
	if v := strings.TrimSpace(c.Query("class_section_id")); v != "" {
		csid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_section_id filter")
		}
		q = q.Where("student_class_section_id = ?", csid)
	}
	if v := strings.TrimSpace(c.Query("parent_id")); v != "" {
		pid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid parent_id filter")
		}
		q = q.Where("student_parent_id = ?", pid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}
	var rows []peopleModel.StudentModel
	if err := q.Order("student_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}
	return helper.JsonList(c, "Students fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row peopleModel.StudentModel
	if err := ctl.DB.Where("student_id = ? AND student_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return helper.JsonOK(c, "Student detail", row)
}

// POST /api/a/students
// Linked rows (login user, enrollment, hostel room occupancy) are all
// written in one transaction.
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req peopleDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	if req.CreateLogin && (req.LoginUserName == nil || req.LoginPassword == nil) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"login_user_name and login_password are required when create_login is true")
	}

	var created peopleModel.StudentModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &peopleModel.StudentModel{}, "admission number",
			"student_school_id = ? AND lower(student_admission_no) = lower(?)", schoolID, req.AdmissionNo); err != nil {
			return err
		}
		if req.ParentID != nil {
			if err := ensureTenantRow(tx, &peopleModel.ParentModel{},
				"parent_id = ? AND parent_school_id = ?", "Parent",
				*req.ParentID, schoolID); err != nil {
				return err
			}
		}
		if req.ClassSectionID != nil {
			if err := ensureTenantRow(tx, &academicModel.ClassSectionModel{},
				"class_section_id = ? AND class_section_school_id = ?", "Class section",
				*req.ClassSectionID, schoolID); err != nil {
				return err
			}
		}
		if req.PickupPointID != nil {
			if err := ensureTenantRow(tx, &opsModel.PickupPointModel{},
				"pickup_point_id = ? AND pickup_point_school_id = ?", "Pickup point",
				*req.PickupPointID, schoolID); err != nil {
				return err
			}
		}

		created = req.ToModel(schoolID)
		if req.RoomID != nil {
			if err := occupyRoom(tx, schoolID, *req.RoomID); err != nil {
				return err
			}
		}
		if req.CreateLogin {
			user, err := createLoginUser(tx, schoolID, *req.LoginUserName, req.LoginEmail,
				*req.LoginPassword, constants.RoleStudent)
			if err != nil {
				return err
			}
			created.StudentUserID = &user.UserID
		}
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "admission number already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
		}

		// Pin the placement to the active academic year when one exists.
		if created.StudentClassSectionID != nil {
			var year academicModel.AcademicYearModel
			err := tx.Where("academic_year_school_id = ? AND academic_year_is_active = ?", schoolID, true).
				First(&year).Error
			if err == nil {
				enrollment := peopleModel.StudentEnrollmentModel{
					EnrollmentSchoolID:       schoolID,
					EnrollmentStudentID:      created.StudentID,
					EnrollmentAcademicYearID: year.AcademicYearID,
					EnrollmentClassSectionID: *created.StudentClassSectionID,
				}
				if err := tx.Create(&enrollment).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Failed to record enrollment")
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check academic year")
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Student created", created)
}

// PUT /api/a/students/:id
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req peopleDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row peopleModel.StudentModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ? AND student_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
		}
		if req.ParentID != nil {
			if err := ensureTenantRow(tx, &peopleModel.ParentModel{},
				"parent_id = ? AND parent_school_id = ?", "Parent",
				*req.ParentID, schoolID); err != nil {
				return err
			}
			row.StudentParentID = req.ParentID
		}
		if req.ClassSectionID != nil {
			if err := ensureTenantRow(tx, &academicModel.ClassSectionModel{},
				"class_section_id = ? AND class_section_school_id = ?", "Class section",
				*req.ClassSectionID, schoolID); err != nil {
				return err
			}
			row.StudentClassSectionID = req.ClassSectionID
		}
		if req.PickupPointID != nil {
			if err := ensureTenantRow(tx, &opsModel.PickupPointModel{},
				"pickup_point_id = ? AND pickup_point_school_id = ?", "Pickup point",
				*req.PickupPointID, schoolID); err != nil {
				return err
			}
			row.StudentPickupPointID = req.PickupPointID
		}
		if req.RoomID != nil && (row.StudentRoomID == nil || *row.StudentRoomID != *req.RoomID) {
			if row.StudentRoomID != nil {
				if err := vacateRoom(tx, schoolID, *row.StudentRoomID); err != nil {
					return err
				}
			}
			if err := occupyRoom(tx, schoolID, *req.RoomID); err != nil {
				return err
			}
			row.StudentRoomID = req.RoomID
		}
		if req.Name != nil {
			row.StudentName = *req.Name
		}
		if req.Gender != nil {
			row.StudentGender = req.Gender
		}
		if req.DOB != nil {
			row.StudentDOB = req.DOB
		}
		if req.IsActive != nil {
			row.StudentIsActive = *req.IsActive
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Student updated", row)
}

// DELETE /api/a/students/:id: blocked while fee payments reference the
// student; enrollment rows go with it, the room seat is released.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row peopleModel.StudentModel
		if err := tx.Where("student_id = ? AND student_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
		}
		if err := helper.EnsureNoDependents(tx, &financeModel.FeePaymentModel{}, "fee payments",
			"fee_payment_student_id = ?", row.StudentID); err != nil {
			return err
		}
		if err := tx.Where("enrollment_student_id = ?", row.StudentID).
			Delete(&peopleModel.StudentEnrollmentModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove enrollments")
		}
		if row.StudentRoomID != nil {
			if err := vacateRoom(tx, schoolID, *row.StudentRoomID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"student_id": id})
}

func occupyRoom(tx *gorm.DB, schoolID, roomID uuid.UUID) error {
	// Keyed on remaining capacity so a full room cannot be overfilled.
	res := tx.Model(&opsModel.RoomModel{}).
		Where("room_id = ? AND room_school_id = ? AND room_occupied < room_capacity", roomID, schoolID).
		UpdateColumn("room_occupied", gorm.Expr("room_occupied + 1"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update room occupancy")
	}
	if res.RowsAffected == 0 {
		var room opsModel.RoomModel
		if err := tx.Where("room_id = ? AND room_school_id = ?", roomID, schoolID).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Room not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check room")
		}
		return fiber.NewError(fiber.StatusConflict, "room is already full")
	}
	return nil
}

func vacateRoom(tx *gorm.DB, schoolID, roomID uuid.UUID) error {
	if err := tx.Model(&opsModel.RoomModel{}).
		Where("room_id = ? AND room_school_id = ? AND room_occupied > 0", roomID, schoolID).
		UpdateColumn("room_occupied", gorm.Expr("room_occupied - 1")).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update room occupancy")
	}
	return nil
}

/* =========================================================
   PARENTS
   ========================================================= */

type ParentController struct {
	DB *gorm.DB
}

// GET /api/a/parents
func (ctl *ParentController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&peopleModel.ParentModel{}).Where("parent_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(parent_name) LIKE ? OR lower(parent_phone) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count parents")
	}
	var rows []peopleModel.ParentModel
	if err := q.Order("parent_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list parents")
	}
	return helper.JsonList(c, "Parents fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/parents
func (ctl *ParentController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req peopleDTO.CreateParentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var created peopleModel.ParentModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &peopleModel.ParentModel{}, "guardian phone",
			"parent_school_id = ? AND parent_phone = ?", schoolID, req.Phone); err != nil {
			return err
		}
		created = req.ToModel(schoolID)
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "guardian phone already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create parent")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Parent created", created)
}

// PUT /api/a/parents/:id
func (ctl *ParentController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req peopleDTO.UpdateParentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row peopleModel.ParentModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ? AND parent_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Parent not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch parent")
		}
		if req.Phone != nil && *req.Phone != row.ParentPhone {
			if err := helper.EnsureUnique(tx, &peopleModel.ParentModel{}, "guardian phone",
				"parent_school_id = ? AND parent_phone = ? AND parent_id <> ?",
				schoolID, *req.Phone, row.ParentID); err != nil {
				return err
			}
			row.ParentPhone = *req.Phone
		}
		if req.Name != nil {
			row.ParentName = *req.Name
		}
		if req.Email != nil {
			row.ParentEmail = req.Email
		}
		if req.Address != nil {
			row.ParentAddress = req.Address
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update parent")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Parent updated", row)
}

// DELETE /api/a/parents/:id: blocked while students reference it.
func (ctl *ParentController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row peopleModel.ParentModel
		if err := tx.Where("parent_id = ? AND parent_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Parent not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch parent")
		}
		if err := helper.EnsureNoDependents(tx, &peopleModel.StudentModel{}, "students",
			"student_parent_id = ?", row.ParentID); err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete parent")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Parent deleted", fiber.Map{"parent_id": id})
}
