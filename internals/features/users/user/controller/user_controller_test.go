// file: internals/features/users/user/controller/user_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	roleModel "schoolku_backend/internals/features/users/roles/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	userRoute "schoolku_backend/internals/features/users/user/route"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

func newUserApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &roleModel.RoleModel{}))

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocSchoolID, c.Get("X-School-ID"))
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		c.Locals(helperAuth.LocRole, "admin")
		return c.Next()
	})
	userRoute.UserAdminRoutes(admin, db)
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

func seedUser(t *testing.T, db *gorm.DB, school uuid.UUID, name string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserSchoolID: school,
		UserName:     name,
		UserRole:     "staff",
		UserIsActive: true,
	}
	require.NoError(t, u.SetPassword("secret123"))
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestUserActivateDeactivate(t *testing.T) {
	app, db := newUserApp(t)
	school := uuid.New()
	u := seedUser(t, db, school, "siti")

	resp := doReq(t, app, "POST", "/api/a/users/"+u.UserID.String()+"/deactivate", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got userModel.UserModel
	require.NoError(t, db.First(&got, "user_id = ?", u.UserID).Error)
	assert.False(t, got.UserIsActive)

	resp = doReq(t, app, "POST", "/api/a/users/"+u.UserID.String()+"/activate", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&got, "user_id = ?", u.UserID).Error)
	assert.True(t, got.UserIsActive)
}

func TestUserListScopedToTenant(t *testing.T) {
	app, db := newUserApp(t)
	schoolA := uuid.New()
	schoolB := uuid.New()
	seedUser(t, db, schoolA, "siti")
	seedUser(t, db, schoolB, "budi")

	resp := doReq(t, app, "GET", "/api/a/users/", schoolA, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := parseBody(t, resp)["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "siti", rows[0].(map[string]any)["user_name"])
}

func TestUserResponseOmitsPasswordHash(t *testing.T) {
	app, db := newUserApp(t)
	school := uuid.New()
	u := seedUser(t, db, school, "siti")

	resp := doReq(t, app, "GET", "/api/a/users/"+u.UserID.String(), school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := parseBody(t, resp)["data"].(map[string]any)
	_, leaked := data["user_password"]
	assert.False(t, leaked)
}

func TestRoleCRUDAndSystemGuard(t *testing.T) {
	app, db := newUserApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/roles", school, fiber.Map{
		"role_name":        "librarian",
		"role_permissions": []string{"library.read", "library.write"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := parseBody(t, resp)["data"].(map[string]any)
	roleID := created["role_id"].(string)
	assert.ElementsMatch(t, []any{"library.read", "library.write"}, created["role_permissions"].([]any))

	resp = doReq(t, app, "PUT", "/api/a/roles/"+roleID, school, fiber.Map{
		"role_permissions": []string{"library.read"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// duplicate name conflicts
	resp = doReq(t, app, "POST", "/api/a/roles", school, fiber.Map{"role_name": "Librarian"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// system roles are immutable
	sys := roleModel.RoleModel{RoleSchoolID: school, RoleName: "admin", RoleIsSystem: true}
	require.NoError(t, db.Create(&sys).Error)
	resp = doReq(t, app, "PUT", "/api/a/roles/"+sys.RoleID.String(), school, fiber.Map{"role_name": "boss"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/api/a/roles/"+sys.RoleID.String(), school, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/api/a/roles/"+roleID, school, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
