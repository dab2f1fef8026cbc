// file: internals/features/school/operations/controller/operations_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	opsModel "schoolku_backend/internals/features/school/operations/model"
	opsRoute "schoolku_backend/internals/features/school/operations/route"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

func newOpsApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&opsModel.HostelModel{},
		&opsModel.RoomTypeModel{},
		&opsModel.RoomModel{},
		&opsModel.ItemModel{},
		&opsModel.ItemIssueModel{},
		&opsModel.TransportRouteModel{},
		&opsModel.PickupPointModel{},
		&opsModel.LibraryMemberModel{},
		&opsModel.BookIssueModel{},
		&opsModel.VisitorModel{},
		&peopleModel.StudentModel{},
	))

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocSchoolID, c.Get("X-School-ID"))
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		c.Locals(helperAuth.LocRole, "admin")
		return c.Next()
	})
	opsRoute.OperationsAdminRoutes(admin, db)
	return app, db
}

func doReq(t *testing.T, app *fiber.App, method, path string, school uuid.UUID, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-School-ID", school.String())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func parseBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func dataField(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	return parseBody(t, resp)["data"].(map[string]any)
}

/* =========================================================
   INVENTORY
   ========================================================= */

func createItem(t *testing.T, app *fiber.App, school uuid.UUID, name string, qty int) string {
	t.Helper()
	resp := doReq(t, app, "POST", "/api/a/items", school, fiber.Map{
		"item_name":     name,
		"item_quantity": qty,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := dataField(t, resp)
	assert.EqualValues(t, qty, created["item_available"])
	return created["item_id"].(string)
}

func issueItem(t *testing.T, app *fiber.App, school uuid.UUID, itemID, to string) *http.Response {
	t.Helper()
	return doReq(t, app, "POST", "/api/a/item-issues", school, fiber.Map{
		"item_issue_item_id":   itemID,
		"item_issue_issued_to": to,
	})
}

func TestItemIssueDecrementsAvailability(t *testing.T) {
	app, db := newOpsApp(t)
	school := uuid.New()
	itemID := createItem(t, app, school, "Projector", 2)

	resp := issueItem(t, app, school, itemID, "Lab A")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = issueItem(t, app, school, itemID, "Lab B")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var item opsModel.ItemModel
	require.NoError(t, db.First(&item, "item_id = ?", itemID).Error)
	assert.Equal(t, 0, item.ItemAvailable)
	assert.Equal(t, 2, item.ItemQuantity)

	// stock exhausted
	resp = issueItem(t, app, school, itemID, "Lab C")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestItemReturnRestoresAvailabilityOnce(t *testing.T) {
	app, db := newOpsApp(t)
	school := uuid.New()
	itemID := createItem(t, app, school, "Projector", 1)

	resp := issueItem(t, app, school, itemID, "Lab A")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	issueID := dataField(t, resp)["item_issue_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/item-issues/"+issueID+"/return", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	returned := dataField(t, resp)
	assert.NotNil(t, returned["item_issue_returned_at"])

	var item opsModel.ItemModel
	require.NoError(t, db.First(&item, "item_id = ?", itemID).Error)
	assert.Equal(t, 1, item.ItemAvailable)

	// a second return is a conflict, and the counter stays put
	resp = doReq(t, app, "POST", "/api/a/item-issues/"+issueID+"/return", school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "item issue is already returned", parseBody(t, resp)["message"])
	require.NoError(t, db.First(&item, "item_id = ?", itemID).Error)
	assert.Equal(t, 1, item.ItemAvailable)
}

func TestItemReturnGuardIsStateKeyed(t *testing.T) {
	app, db := newOpsApp(t)
	school := uuid.New()
	itemID := createItem(t, app, school, "Projector", 1)

	resp := issueItem(t, app, school, itemID, "Lab A")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	issueID := dataField(t, resp)["item_issue_id"].(string)

	// close the issue behind the handler's back, as a concurrent return would
	require.NoError(t, db.Model(&opsModel.ItemIssueModel{}).
		Where("item_issue_id = ?", issueID).
		UpdateColumn("item_issue_returned_at", time.Now()).Error)

	resp = doReq(t, app, "POST", "/api/a/item-issues/"+issueID+"/return", school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// the availability counter was not incremented for the lost return
	var item opsModel.ItemModel
	require.NoError(t, db.First(&item, "item_id = ?", itemID).Error)
	assert.Equal(t, 0, item.ItemAvailable)
}

func TestItemDeleteGuardedByOpenIssues(t *testing.T) {
	app, _ := newOpsApp(t)
	school := uuid.New()
	itemID := createItem(t, app, school, "Projector", 1)

	resp := issueItem(t, app, school, itemID, "Lab A")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	issueID := dataField(t, resp)["item_issue_id"].(string)

	resp = doReq(t, app, "DELETE", "/api/a/items/"+itemID, school, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doReq(t, app, "POST", "/api/a/item-issues/"+issueID+"/return", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/api/a/items/"+itemID, school, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

/* =========================================================
   HOSTELS AND ROOMS
   ========================================================= */

func createHostelRoom(t *testing.T, app *fiber.App, school uuid.UUID, capacity int) (hostelID, roomID string) {
	t.Helper()
	resp := doReq(t, app, "POST", "/api/a/hostels", school, fiber.Map{"hostel_name": "North Wing"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	hostelID = dataField(t, resp)["hostel_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/rooms", school, fiber.Map{
		"room_hostel_id": hostelID,
		"room_number":    "101",
		"room_capacity":  capacity,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	roomID = dataField(t, resp)["room_id"].(string)
	return
}

func TestRoomNumberUniquePerHostel(t *testing.T) {
	app, _ := newOpsApp(t)
	school := uuid.New()
	hostelID, _ := createHostelRoom(t, app, school, 4)

	resp := doReq(t, app, "POST", "/api/a/rooms", school, fiber.Map{
		"room_hostel_id": hostelID,
		"room_number":    "101",
		"room_capacity":  2,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRoomCapacityCannotDropBelowOccupancy(t *testing.T) {
	app, db := newOpsApp(t)
	school := uuid.New()
	_, roomID := createHostelRoom(t, app, school, 4)

	require.NoError(t, db.Model(&opsModel.RoomModel{}).
		Where("room_id = ?", roomID).
		Update("room_occupied", 3).Error)

	resp := doReq(t, app, "PUT", "/api/a/rooms/"+roomID, school, fiber.Map{"room_capacity": 2})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "capacity cannot drop below current occupancy", parseBody(t, resp)["message"])

	resp = doReq(t, app, "PUT", "/api/a/rooms/"+roomID, school, fiber.Map{"room_capacity": 3})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOccupiedRoomCannotBeDeleted(t *testing.T) {
	app, db := newOpsApp(t)
	school := uuid.New()
	_, roomID := createHostelRoom(t, app, school, 4)

	require.NoError(t, db.Model(&opsModel.RoomModel{}).
		Where("room_id = ?", roomID).
		Update("room_occupied", 1).Error)

	resp := doReq(t, app, "DELETE", "/api/a/rooms/"+roomID, school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "room is still occupied", parseBody(t, resp)["message"])
}

/* =========================================================
   TRANSPORT
   ========================================================= */

func TestPickupPointLifecycle(t *testing.T) {
	app, _ := newOpsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/transport-routes", school, fiber.Map{
		"transport_route_name": "Route 1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	routeID := dataField(t, resp)["transport_route_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/pickup-points", school, fiber.Map{
		"pickup_point_route_id": routeID,
		"pickup_point_name":     "Main Gate",
		"pickup_point_time":     "06:30",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	pointID := dataField(t, resp)["pickup_point_id"].(string)

	// duplicate stop name on the same route
	resp = doReq(t, app, "POST", "/api/a/pickup-points", school, fiber.Map{
		"pickup_point_route_id": routeID,
		"pickup_point_name":     "main gate",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// route delete is blocked while stops exist
	resp = doReq(t, app, "DELETE", "/api/a/transport-routes/"+routeID, school, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/api/a/pickup-points/"+pointID, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/api/a/transport-routes/"+routeID, school, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

/* =========================================================
   LIBRARY
   ========================================================= */

func TestBookIssueReturnFlow(t *testing.T) {
	app, _ := newOpsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/library-members", school, fiber.Map{
		"library_member_code": "LM-001",
		"library_member_name": "Budi",
		"library_member_type": "student",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	memberID := dataField(t, resp)["library_member_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/book-issues", school, fiber.Map{
		"book_issue_member_id":  memberID,
		"book_issue_book_title": "Laskar Pelangi",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	issueID := dataField(t, resp)["book_issue_id"].(string)

	// member can't be removed with a book out
	resp = doReq(t, app, "DELETE", "/api/a/library-members/"+memberID, school, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doReq(t, app, "POST", "/api/a/book-issues/"+issueID+"/return", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doReq(t, app, "POST", "/api/a/book-issues/"+issueID+"/return", school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "book is already returned", parseBody(t, resp)["message"])

	resp = doReq(t, app, "DELETE", "/api/a/library-members/"+memberID, school, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLibraryMemberCodeUnique(t *testing.T) {
	app, _ := newOpsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/library-members", school, fiber.Map{
		"library_member_code": "LM-001",
		"library_member_name": "Budi",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doReq(t, app, "POST", "/api/a/library-members", school, fiber.Map{
		"library_member_code": "lm-001",
		"library_member_name": "Ani",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

/* =========================================================
   VISITORS
   ========================================================= */

func TestVisitorCheckInCheckOut(t *testing.T) {
	app, _ := newOpsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/visitors", school, fiber.Map{
		"visitor_name":    "Pak Tamu",
		"visitor_purpose": "Meeting",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := dataField(t, resp)
	visitorID := created["visitor_id"].(string)
	assert.NotNil(t, created["visitor_check_in_at"])
	assert.Nil(t, created["visitor_check_out_at"])

	// currently on site
	resp = doReq(t, app, "GET", "/api/a/visitors/?status=in", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, parseBody(t, resp)["data"].([]any), 1)

	resp = doReq(t, app, "POST", "/api/a/visitors/"+visitorID+"/checkout", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, dataField(t, resp)["visitor_check_out_at"])

	// checkout is not repeatable
	resp = doReq(t, app, "POST", "/api/a/visitors/"+visitorID+"/checkout", school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "visitor is already checked out", parseBody(t, resp)["message"])

	resp = doReq(t, app, "GET", "/api/a/visitors/?status=in", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, parseBody(t, resp)["data"])

	resp = doReq(t, app, "GET", "/api/a/visitors/?status=out", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, parseBody(t, resp)["data"].([]any), 1)
}
