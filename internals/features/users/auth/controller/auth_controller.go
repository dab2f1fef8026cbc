// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	authModel "schoolku_backend/internals/features/users/auth/model"
	authService "schoolku_backend/internals/features/users/auth/service"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type LoginRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=6,max=100"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=100"`
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	// Usernames are unique per school, not globally, so the same name can
	// exist in several tenants. The password picks the matching account.
	var candidates []userModel.UserModel
	if err := ctl.DB.
		Where("lower(user_name) = lower(?)", req.UserName).
		Order("user_created_at ASC").
		Find(&candidates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	var user *userModel.UserModel
	for i := range candidates {
		if candidates[i].CheckPassword(req.Password) {
			user = &candidates[i]
			break
		}
	}
	if user == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been disabled")
	}

	token, exp, err := authService.CreateAccessToken(user, configs.JWTSecret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": token,
		"expires_at":   exp,
		"user": fiber.Map{
			"user_id":        user.UserID,
			"user_name":      user.UserName,
			"user_role":      user.UserRole,
			"user_school_id": user.UserSchoolID,
		},
	})
}

// POST /api/auth/logout: blacklists the presented token until it expires.
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing token")
	}
	token := strings.TrimSpace(parts[1])

	// Blacklist rows age out with the token itself.
	expiredAt, ok := authService.TokenExpiry(token, configs.JWTSecret)
	if !ok {
		expiredAt = time.Now().Add(48 * time.Hour)
	}
	entry := authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}
	if err := ctl.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
	}
	return helper.JsonOK(c, "Logged out", nil)
}

// POST /api/auth/change-password: the session owner changes their own password.
func (ctl *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.CheckPassword(req.OldPassword) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Old password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := ctl.DB.Model(&user).Update("user_password", user.UserPassword).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helper.JsonUpdated(c, "Password updated", nil)
}
