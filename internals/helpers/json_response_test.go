// file: internals/helpers/json_response_test.go
package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFor(t *testing.T, target string) Paging {
	t.Helper()
	var got Paging
	app := fiber.New()
	app.Get("/p", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 200)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePagingDefaults(t *testing.T) {
	p := resolveFor(t, "/p")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, 20, p.Limit)
}

func TestResolvePagingExplicit(t *testing.T) {
	p := resolveFor(t, "/p?page=3&per_page=50")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, 100, p.Offset)
}

func TestResolvePagingLimitAlias(t *testing.T) {
	p := resolveFor(t, "/p?limit=7")
	assert.Equal(t, 7, p.PerPage)
}

func TestResolvePagingClampsAndNormalizes(t *testing.T) {
	p := resolveFor(t, "/p?page=0&per_page=9999")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 200, p.PerPage)

	p = resolveFor(t, "/p?page=abc&per_page=-5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestBuildPaginationRemainder(t *testing.T) {
	// 45 rows at 20 per page -> 3 pages, last one short
	pg := BuildPaginationFromPage(45, 3, 20)
	assert.Equal(t, 3, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = BuildPaginationFromPage(45, 2, 20)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)
}

func TestBuildPaginationBeyondLastPage(t *testing.T) {
	pg := BuildPaginationFromPage(10, 5, 20)
	assert.Equal(t, 1, pg.TotalPages)
	assert.Equal(t, 5, pg.Page)
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrev)
}

func TestBuildPaginationEmpty(t *testing.T) {
	pg := BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}

func TestStatusToErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", statusToErrorCode(fiber.StatusNotFound))
	assert.Equal(t, "CONFLICT", statusToErrorCode(fiber.StatusConflict))
	assert.Equal(t, "VALIDATION_ERROR", statusToErrorCode(fiber.StatusUnprocessableEntity))
	assert.Equal(t, "INTERNAL_ERROR", statusToErrorCode(502))
	assert.Equal(t, "ERROR", statusToErrorCode(418))
}
