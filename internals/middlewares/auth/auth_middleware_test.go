// file: internals/middlewares/auth/auth_middleware_test.go
package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/configs"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func newGuardedApp(t *testing.T) (*fiber.App, *gorm.DB, userModel.UserModel) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &authModel.TokenBlacklist{}))

	user := userModel.UserModel{
		UserSchoolID: uuid.New(),
		UserName:     "teacher1",
		UserRole:     "teacher",
		UserIsActive: true,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Get("/open", authMiddleware.AuthMiddleware(db), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"school_id": c.Locals(helperAuth.LocSchoolID),
			"role":      c.Locals(helperAuth.LocRole),
		})
	})
	app.Get("/admin-only",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles("admin"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app, db, user
}

func signToken(t *testing.T, user userModel.UserModel, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"school_id": user.UserSchoolID.String(),
		"role":      user.UserRole,
		"user_name": user.UserName,
		"iat":       time.Now().Unix(),
		"exp":       exp.Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)
	return s
}

func doGet(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMissingToken(t *testing.T) {
	app, _, _ := newGuardedApp(t)
	resp := doGet(t, app, "/open", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	app, _, _ := newGuardedApp(t)
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestValidTokenSetsLocals(t *testing.T) {
	app, _, user := newGuardedApp(t)
	token := signToken(t, user, time.Now().Add(time.Hour))
	resp := doGet(t, app, "/open", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestExpiredToken(t *testing.T) {
	app, _, user := newGuardedApp(t)
	token := signToken(t, user, time.Now().Add(-time.Hour))
	resp := doGet(t, app, "/open", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWrongSigningKey(t *testing.T) {
	app, _, user := newGuardedApp(t)
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"school_id": user.UserSchoolID.String(),
		"role":      user.UserRole,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	resp := doGet(t, app, "/open", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolesBlocksNonAdmin(t *testing.T) {
	app, _, user := newGuardedApp(t)
	token := signToken(t, user, time.Now().Add(time.Hour))
	resp := doGet(t, app, "/admin-only", token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDisabledUserBlocked(t *testing.T) {
	app, db, user := newGuardedApp(t)
	require.NoError(t, db.Model(&user).Update("user_is_active", false).Error)
	token := signToken(t, user, time.Now().Add(time.Hour))
	resp := doGet(t, app, "/open", token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestBlacklistedTokenBlocked(t *testing.T) {
	app, db, user := newGuardedApp(t)
	token := signToken(t, user, time.Now().Add(time.Hour))
	require.NoError(t, db.Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().Add(time.Hour),
	}).Error)
	resp := doGet(t, app, "/open", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
