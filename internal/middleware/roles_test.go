package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appWithRole builds a Fiber app whose stub "auth" middleware injects the
// given role into Locals, mimicking what Auth does after token verification.
func appWithRole(role string, required ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals(LocalUserRole, role)
		}
		return c.Next()
	})
	app.Get("/guarded", RequireRole(required...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestRequireRole(t *testing.T) {
	t.Run("matching role passes", func(t *testing.T) {
		app := appWithRole("admin", "admin", "owner")
		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("second allowed role passes", func(t *testing.T) {
		app := appWithRole("owner", "admin", "owner")
		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("non-matching role is forbidden", func(t *testing.T) {
		app := appWithRole("user", "admin", "owner")
		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		app := appWithRole("", "admin")
		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
