// file: internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicRoute "schoolku_backend/internals/features/school/academics/route"
	financeRoute "schoolku_backend/internals/features/school/finance/route"
	opsRoute "schoolku_backend/internals/features/school/operations/route"
	peopleRoute "schoolku_backend/internals/features/school/people/route"
	userRoute "schoolku_backend/internals/features/users/user/route"
)

// AdminRoutes registers every tenant-scoped management endpoint on the
// already-authenticated admin group.
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
	academicRoute.AcademicAdminRoutes(admin, db)
	peopleRoute.PeopleAdminRoutes(admin, db)
	financeRoute.FinanceAdminRoutes(admin, db)
	opsRoute.OperationsAdminRoutes(admin, db)
}
