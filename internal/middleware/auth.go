// Package middleware contains HTTP middleware functions for the TurfBook API.
// Middleware sits between the HTTP server and route handlers — it runs on every
// request that passes through it, making it the right place for cross-cutting
// concerns like authentication and role checks.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/auth"
	"github.com/devanshm/turfbook/internal/config"
	"github.com/devanshm/turfbook/internal/models"
)

// Context keys set by Auth and read by downstream handlers via c.Locals.
const (
	LocalUserID   = "userID"   // the user's UUID as a string
	LocalUserRole = "userRole" // "admin", "owner", or "user"
)

// Auth returns a Fiber middleware handler that:
//  1. Verifies the HS256 signature and expiry of the JWT from the
//     "Authorization: Bearer <token>" header
//  2. Confirms the user still exists in the database
//  3. Stores the user's ID and role in the request context (c.Locals) so
//     downstream handlers can read them without re-parsing the token
//
// The role stored in Locals comes from the database row, not the token, so a
// role change takes effect on the next request instead of at token renewal.
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		_, userID, err := auth.ParseToken(tokenStr, cfg.JWTSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "user not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}

		c.Locals(LocalUserID, user.ID.String())
		c.Locals(LocalUserRole, string(user.Role))

		return c.Next()
	}
}
