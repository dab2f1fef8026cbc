// file: internals/features/users/auth/controller/auth_controller_test.go
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

	"schoolku_backend/internals/configs"
	authModel "schoolku_backend/internals/features/users/auth/model"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &authModel.TokenBlacklist{}))

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	authRoute.AuthRoutes(app, db)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, name, password, role string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserSchoolID: uuid.New(),
		UserName:     name,
		UserRole:     role,
		UserIsActive: true,
	}
	require.NoError(t, u.SetPassword(password))
	require.NoError(t, db.Create(&u).Error)
	return u
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLoginSuccess(t *testing.T) {
	app, db := newAuthApp(t)
	u := seedUser(t, db, "admin", "secret123", "admin")

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "ADMIN", // lookup is case-insensitive
		"password":  "secret123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, u.UserID.String(), user["user_id"])
	assert.Equal(t, "admin", user["user_role"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, db := newAuthApp(t)
	seedUser(t, db, "admin", "secret123", "admin")

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "admin",
		"password":  "wrong-pass",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "nobody",
		"password":  "whatever1",
	}, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid username or password", body["message"])
}

func TestLoginDisabledUser(t *testing.T) {
	app, db := newAuthApp(t)
	u := seedUser(t, db, "ghost", "secret123", "staff")
	require.NoError(t, db.Model(&u).Update("user_is_active", false).Error)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "ghost",
		"password":  "secret123",
	}, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLoginSameUsernameAcrossSchools(t *testing.T) {
	app, db := newAuthApp(t)
	first := seedUser(t, db, "john", "first-secret", "staff")
	second := seedUser(t, db, "john", "other-secret", "staff")
	require.NotEqual(t, first.UserSchoolID, second.UserSchoolID)

	// each account resolves by its own password, regardless of row order
	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "john",
		"password":  "other-secret",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user := decodeBody(t, resp)["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, second.UserID.String(), user["user_id"])
	assert.Equal(t, second.UserSchoolID.String(), user["user_school_id"])

	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "john",
		"password":  "first-secret",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user = decodeBody(t, resp)["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, first.UserID.String(), user["user_id"])

	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "john",
		"password":  "matches-neither",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginValidatesPayload(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{"user_name": "ab"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func loginToken(t *testing.T, app *fiber.App, name, password string) string {
	t.Helper()
	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": name,
		"password":  password,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	return data["access_token"].(string)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	app, db := newAuthApp(t)
	seedUser(t, db, "admin", "secret123", "admin")
	token := loginToken(t, app, "admin", "secret123")

	resp := postJSON(t, app, "/api/auth/logout", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the same token is now rejected
	resp = postJSON(t, app, "/api/auth/logout", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutBlacklistExpiryTracksToken(t *testing.T) {
	app, db := newAuthApp(t)
	seedUser(t, db, "admin", "secret123", "admin")
	token := loginToken(t, app, "admin", "secret123")

	resp := postJSON(t, app, "/api/auth/logout", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entry authModel.TokenBlacklist
	require.NoError(t, db.Where("token = ?", token).First(&entry).Error)
	// the row ages out with the token's own 2h lifetime, not a fixed window
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), entry.ExpiredAt, time.Minute)
}

func TestChangePassword(t *testing.T) {
	app, db := newAuthApp(t)
	seedUser(t, db, "admin", "secret123", "admin")
	token := loginToken(t, app, "admin", "secret123")

	resp := postJSON(t, app, "/api/auth/change-password", fiber.Map{
		"old_password": "secret123",
		"new_password": "evenmoresecret",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// old credential no longer works, the new one does
	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "admin",
		"password":  "secret123",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"user_name": "admin",
		"password":  "evenmoresecret",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestChangePasswordWrongOld(t *testing.T) {
	app, db := newAuthApp(t)
	seedUser(t, db, "admin", "secret123", "admin")
	token := loginToken(t, app, "admin", "secret123")

	resp := postJSON(t, app, "/api/auth/change-password", fiber.Map{
		"old_password": "not-the-one",
		"new_password": "evenmoresecret",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
