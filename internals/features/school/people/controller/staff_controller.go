// file: internals/features/school/people/controller/staff_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	peopleDTO "schoolku_backend/internals/features/school/people/dto"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StaffController struct {
	DB *gorm.DB
}

// GET /api/a/staff?search=&status=&department_id=&designation_id=
func (ctl *StaffController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&peopleModel.StaffModel{}).Where("staff_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(staff_name) LIKE ? OR lower(staff_employee_id) LIKE ?", like, like)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("staff_is_active = ?", strings.EqualFold(status, "active"))
	}
	if v := strings.TrimSpace(c.Query("department_id")); v != "" {
		did, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid department_id filter")
		}
		q = q.Where("staff_department_id = ?", did)
	}
	if v := strings.TrimSpace(c.Query("designation_id")); v != "" {
		did, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid designation_id filter")
		}
		q = q.Where("staff_designation_id = ?", did)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count staff")
	}
	var rows []peopleModel.StaffModel
	if err := q.Order("staff_name ASC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff")
	}
	return helper.JsonList(c, "Staff fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/staff/:id
func (ctl *StaffController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var row peopleModel.StaffModel
	if err := ctl.DB.Where("staff_id = ? AND staff_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff member")
	}
	return helper.JsonOK(c, "Staff detail", row)
}

// POST /api/a/staff
// With create_login=true the linked user is created in the same
// transaction, so a duplicate username rolls back the staff row too.
func (ctl *StaffController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req peopleDTO.CreateStaffRequest
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

	var created peopleModel.StaffModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := helper.EnsureUnique(tx, &peopleModel.StaffModel{}, "employee id",
			"staff_school_id = ? AND lower(staff_employee_id) = lower(?)", schoolID, req.EmployeeID); err != nil {
			return err
		}
		if req.DepartmentID != nil {
			if err := ensureTenantRow(tx, &peopleModel.DepartmentModel{},
				"department_id = ? AND department_school_id = ?", "Department",
				*req.DepartmentID, schoolID); err != nil {
				return err
			}
		}
		if req.DesignationID != nil {
			if err := ensureTenantRow(tx, &peopleModel.DesignationModel{},
				"designation_id = ? AND designation_school_id = ?", "Designation",
				*req.DesignationID, schoolID); err != nil {
				return err
			}
		}

		created = req.ToModel(schoolID)
		if req.CreateLogin {
			user, err := createLoginUser(tx, schoolID, *req.LoginUserName, req.LoginEmail,
				*req.LoginPassword, loginRoleOrDefault(req.LoginRole))
			if err != nil {
				return err
			}
			created.StaffUserID = &user.UserID
		}
		if err := tx.Create(&created).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "employee id already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create staff member")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Staff member created", created)
}

// PUT /api/a/staff/:id
func (ctl *StaffController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req peopleDTO.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row peopleModel.StaffModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ? AND staff_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Staff member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch staff member")
		}
		if req.DepartmentID != nil {
			if err := ensureTenantRow(tx, &peopleModel.DepartmentModel{},
				"department_id = ? AND department_school_id = ?", "Department",
				*req.DepartmentID, schoolID); err != nil {
				return err
			}
			row.StaffDepartmentID = req.DepartmentID
		}
		if req.DesignationID != nil {
			if err := ensureTenantRow(tx, &peopleModel.DesignationModel{},
				"designation_id = ? AND designation_school_id = ?", "Designation",
				*req.DesignationID, schoolID); err != nil {
				return err
			}
			row.StaffDesignationID = req.DesignationID
		}
		if req.Name != nil {
			row.StaffName = *req.Name
		}
		if req.Phone != nil {
			row.StaffPhone = req.Phone
		}
		if req.Email != nil {
			row.StaffEmail = req.Email
		}
		if req.JoiningDate != nil {
			row.StaffJoiningDate = req.JoiningDate
		}
		if req.IsActive != nil {
			row.StaffIsActive = *req.IsActive
		}
		if err := tx.Save(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update staff member")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Staff member updated", row)
}

// DELETE /api/a/staff/:id: the linked login account goes in the same tx.
func (ctl *StaffController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row peopleModel.StaffModel
		if err := tx.Where("staff_id = ? AND staff_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Staff member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch staff member")
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete staff member")
		}
		if row.StaffUserID != nil {
			if err := tx.Where("user_id = ? AND user_school_id = ?", *row.StaffUserID, schoolID).
				Delete(&userModel.UserModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove linked login")
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Staff member deleted", fiber.Map{"staff_id": id})
}

/* ===============================
   shared helpers
=================================*/

func loginRoleOrDefault(role *string) string {
	if role != nil && *role != "" {
		return *role
	}
	return constants.RoleStaff
}

// ensureTenantRow turns a missing foreign row into a 400 instead of
// leaking another tenant's ids through opaque constraint errors.
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

func createLoginUser(tx *gorm.DB, schoolID uuid.UUID, username string, email *string, password, role string) (*userModel.UserModel, error) {
	if err := helper.EnsureUnique(tx, &userModel.UserModel{}, "username",
		"user_school_id = ? AND lower(user_name) = lower(?)", schoolID, username); err != nil {
		return nil, err
	}
	u := userModel.UserModel{
		UserSchoolID: schoolID,
		UserName:     username,
		UserEmail:    email,
		UserRole:     role,
		UserIsActive: true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := tx.Create(&u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "username already exists")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create login user")
	}
	return &u, nil
}
