// Package middleware contains HTTP middleware functions for the TurfBook API.
// This file handles role-based access control — checking that the
// authenticated user has permission to perform the requested action.
package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only users whose role
// matches one of the provided roles, responding 403 Forbidden otherwise.
//
// It accepts a variadic list so a route can allow several roles at once:
//
//	api.Post("/turfs", middleware.RequireRole("admin", "owner"), handlers.CreateTurf(db))
//
// RequireRole must be used AFTER the Auth middleware, because Auth is what
// populates the role value in the request context via c.Locals.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals(LocalUserRole).(string)
		if !ok || userRole == "" {
			// No role in context: Auth either wasn't applied or failed silently.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		// Authenticated but not authorized for this action.
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
