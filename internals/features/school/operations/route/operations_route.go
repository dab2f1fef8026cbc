// file: internals/features/school/operations/route/operations_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	opsController "schoolku_backend/internals/features/school/operations/controller"
)

func OperationsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	hostelCtl := &opsController.HostelController{DB: db}
	hostels := admin.Group("/hostels")
	hostels.Get("/", hostelCtl.List)
	hostels.Post("/", hostelCtl.Create)
	hostels.Put("/:id", hostelCtl.Update)
	hostels.Delete("/:id", hostelCtl.Delete)

	roomTypeCtl := &opsController.RoomTypeController{DB: db}
	roomTypes := admin.Group("/room-types")
	roomTypes.Get("/", roomTypeCtl.List)
	roomTypes.Post("/", roomTypeCtl.Create)
	roomTypes.Put("/:id", roomTypeCtl.Update)
	roomTypes.Delete("/:id", roomTypeCtl.Delete)

	roomCtl := &opsController.RoomController{DB: db}
	rooms := admin.Group("/rooms")
	rooms.Get("/", roomCtl.List)
	rooms.Post("/", roomCtl.Create)
	rooms.Put("/:id", roomCtl.Update)
	rooms.Delete("/:id", roomCtl.Delete)

	itemCtl := &opsController.ItemController{DB: db}
	items := admin.Group("/items")
	items.Get("/", itemCtl.List)
	items.Post("/", itemCtl.Create)
	items.Put("/:id", itemCtl.Update)
	items.Delete("/:id", itemCtl.Delete)

	itemIssueCtl := &opsController.ItemIssueController{DB: db}
	itemIssues := admin.Group("/item-issues")
	itemIssues.Get("/", itemIssueCtl.List)
	itemIssues.Post("/", itemIssueCtl.Issue)
	itemIssues.Post("/:id/return", itemIssueCtl.Return)

	routeCtl := &opsController.TransportRouteController{DB: db}
	transportRoutes := admin.Group("/transport-routes")
	transportRoutes.Get("/", routeCtl.List)
	transportRoutes.Post("/", routeCtl.Create)
	transportRoutes.Put("/:id", routeCtl.Update)
	transportRoutes.Delete("/:id", routeCtl.Delete)

	pickupCtl := &opsController.PickupPointController{DB: db}
	pickupPoints := admin.Group("/pickup-points")
	pickupPoints.Get("/", pickupCtl.List)
	pickupPoints.Post("/", pickupCtl.Create)
	pickupPoints.Put("/:id", pickupCtl.Update)
	pickupPoints.Delete("/:id", pickupCtl.Delete)

	memberCtl := &opsController.LibraryMemberController{DB: db}
	members := admin.Group("/library-members")
	members.Get("/", memberCtl.List)
	members.Post("/", memberCtl.Create)
	members.Put("/:id", memberCtl.Update)
	members.Delete("/:id", memberCtl.Delete)

	bookIssueCtl := &opsController.BookIssueController{DB: db}
	bookIssues := admin.Group("/book-issues")
	bookIssues.Get("/", bookIssueCtl.List)
	bookIssues.Post("/", bookIssueCtl.Issue)
	bookIssues.Post("/:id/return", bookIssueCtl.Return)

	visitorCtl := &opsController.VisitorController{DB: db}
	visitors := admin.Group("/visitors")
	visitors.Get("/", visitorCtl.List)
	visitors.Post("/", visitorCtl.CheckIn)
	visitors.Post("/:id/checkout", visitorCtl.CheckOut)
}
