// file: internals/features/school/academics/route/academic_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicController "schoolku_backend/internals/features/school/academics/controller"
)

func AcademicAdminRoutes(admin fiber.Router, db *gorm.DB) {
	classCtl := &academicController.ClassController{DB: db}
	classes := admin.Group("/classes")
	classes.Get("/", classCtl.List)
	classes.Get("/:id", classCtl.GetByID)
	classes.Post("/", classCtl.Create)
	classes.Put("/:id", classCtl.Update)
	classes.Delete("/:id", classCtl.Delete)

	sectionCtl := &academicController.SectionController{DB: db}
	sections := admin.Group("/sections")
	sections.Get("/", sectionCtl.List)
	sections.Post("/", sectionCtl.Create)
	sections.Put("/:id", sectionCtl.Update)
	sections.Delete("/:id", sectionCtl.Delete)

	classSectionCtl := &academicController.ClassSectionController{DB: db}
	classSections := admin.Group("/class-sections")
	classSections.Get("/", classSectionCtl.List)
	classSections.Post("/", classSectionCtl.Create)
	classSections.Put("/:id", classSectionCtl.Update)
	classSections.Delete("/:id", classSectionCtl.Delete)

	subjectCtl := &academicController.SubjectController{DB: db}
	subjects := admin.Group("/subjects")
	subjects.Get("/", subjectCtl.List)
	subjects.Get("/:id", subjectCtl.GetByID)
	subjects.Post("/", subjectCtl.Create)
	subjects.Put("/:id", subjectCtl.Update)
	subjects.Delete("/:id", subjectCtl.Delete)

	classSubjectCtl := &academicController.ClassSubjectController{DB: db}
	classSubjects := admin.Group("/class-subjects")
	classSubjects.Get("/", classSubjectCtl.List)
	classSubjects.Post("/", classSubjectCtl.Create)
	classSubjects.Delete("/:id", classSubjectCtl.Delete)

	yearCtl := &academicController.AcademicYearController{DB: db}
	years := admin.Group("/academic-years")
	years.Get("/", yearCtl.List)
	years.Post("/", yearCtl.Create)
	years.Put("/:id", yearCtl.Update)
	years.Post("/:id/activate", yearCtl.Activate)
	years.Delete("/:id", yearCtl.Delete)
}
