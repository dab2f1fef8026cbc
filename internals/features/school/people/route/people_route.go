// file: internals/features/school/people/route/people_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	peopleController "schoolku_backend/internals/features/school/people/controller"
)

func PeopleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	departmentCtl := &peopleController.DepartmentController{DB: db}
	departments := admin.Group("/departments")
	departments.Get("/", departmentCtl.List)
	departments.Post("/", departmentCtl.Create)
	departments.Put("/:id", departmentCtl.Update)
	departments.Delete("/:id", departmentCtl.Delete)

	designationCtl := &peopleController.DesignationController{DB: db}
	designations := admin.Group("/designations")
	designations.Get("/", designationCtl.List)
	designations.Post("/", designationCtl.Create)
	designations.Put("/:id", designationCtl.Update)
	designations.Delete("/:id", designationCtl.Delete)

	staffCtl := &peopleController.StaffController{DB: db}
	staff := admin.Group("/staff")
	staff.Get("/", staffCtl.List)
	staff.Get("/:id", staffCtl.GetByID)
	staff.Post("/", staffCtl.Create)
	staff.Put("/:id", staffCtl.Update)
	staff.Delete("/:id", staffCtl.Delete)

	studentCtl := &peopleController.StudentController{DB: db}
	students := admin.Group("/students")
	students.Get("/", studentCtl.List)
	students.Get("/:id", studentCtl.GetByID)
	students.Post("/", studentCtl.Create)
	students.Put("/:id", studentCtl.Update)
	students.Delete("/:id", studentCtl.Delete)

	parentCtl := &peopleController.ParentController{DB: db}
	parents := admin.Group("/parents")
	parents.Get("/", parentCtl.List)
	parents.Post("/", parentCtl.Create)
	parents.Put("/:id", parentCtl.Update)
	parents.Delete("/:id", parentCtl.Delete)
}
