// Package handlers contains the HTTP route handler functions for the TurfBook
// API. Each exported function follows the handler-factory pattern: it takes a
// *gorm.DB and returns a fiber.Handler, so the database is injected without
// global variables.
//
// Request bodies are parsed into dedicated request structs and validated with
// go-playground/validator before any business logic runs. Handlers read the
// authenticated user's identity from c.Locals, where the Auth middleware
// placed it.
package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/devanshm/turfbook/internal/middleware"
	"github.com/devanshm/turfbook/internal/models"
)

// validate is the shared validator instance. validator.New is expensive; one
// instance serves all handlers (it is safe for concurrent use).
var validate = validator.New()

// currentUserID reads the authenticated user's UUID from the request context.
// Returns uuid.Nil and false when the value is missing or malformed, which
// means the Auth middleware did not run for this route.
func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	idStr, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// currentUserRole reads the authenticated user's role from the request context.
func currentUserRole(c *fiber.Ctx) models.UserRole {
	role, _ := c.Locals(middleware.LocalUserRole).(string)
	return models.UserRole(role)
}

// errJSON is shorthand for the error response shape used across the API.
func errJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// isDuplicateKey detects a Postgres unique-constraint violation surfaced
// through GORM, so handlers can turn it into a 409 instead of a 500.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
