// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	roleController "schoolku_backend/internals/features/users/roles/controller"
	userController "schoolku_backend/internals/features/users/user/controller"
)

// UserAdminRoutes hangs the user and role management endpoints off the
// authenticated admin group.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userCtl := &userController.UserController{DB: db}
	users := admin.Group("/users")
	users.Get("/", userCtl.List)
	users.Get("/:id", userCtl.GetByID)
	users.Post("/:id/activate", userCtl.Activate)
	users.Post("/:id/deactivate", userCtl.Deactivate)

	roleCtl := &roleController.RoleController{DB: db}
	roles := admin.Group("/roles")
	roles.Get("/", roleCtl.List)
	roles.Get("/:id", roleCtl.GetByID)
	roles.Post("/", roleCtl.Create)
	roles.Put("/:id", roleCtl.Update)
	roles.Delete("/:id", roleCtl.Delete)
}
