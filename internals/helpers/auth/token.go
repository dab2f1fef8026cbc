// file: internals/helpers/auth/token.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals keys (auth middleware sets these)
   ============================================ */

const (
	LocUserID   = "user_id"
	LocSchoolID = "school_id"
	LocRole     = "role"
	LocUserName = "user_name"
)

// GetUserIDFromToken returns the authenticated principal's id. Only verified
// locals are consulted; raw claims never reach scoping decisions.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return parseUUIDFromLocals(c, LocUserID)
}

// GetSchoolIDFromToken returns the caller's tenant id. Every query downstream
// is filtered by this value; it is never read from the request body or query.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return parseUUIDFromLocals(c, LocSchoolID)
}

func GetRole(c *fiber.Ctx) string {
	if v := c.Locals(LocRole); v != nil {
		if s, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

func GetUserName(c *fiber.Ctx) string {
	if v := c.Locals(LocUserName); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func HasRole(c *fiber.Ctx, roles ...string) bool {
	cur := GetRole(c)
	if cur == "" {
		return false
	}
	for _, r := range roles {
		if strings.EqualFold(cur, r) {
			return true
		}
	}
	return false
}

func IsAdmin(c *fiber.Ctx) bool { return HasRole(c, "admin") }

func parseUUIDFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" not found in token")
	}
	switch t := v.(type) {
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(t)); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" in token is not a valid UUID")
}
