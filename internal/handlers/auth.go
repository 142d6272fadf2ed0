// This file handles the /api/v1/auth routes — signup, login, and the current
// user endpoint. Passwords are bcrypt-hashed on signup; login compares against
// the stored hash and never reveals whether the email or the password was the
// wrong half of the pair.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/auth"
	"github.com/devanshm/turfbook/internal/config"
	"github.com/devanshm/turfbook/internal/models"
)

// SignupRequest is the JSON body for POST /api/v1/auth/signup.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both signup and login: a signed token plus the
// user record (the model's json tags exclude the password hash).
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup returns a handler for POST /api/v1/auth/signup.
// Creates the user with role "user" and immediately issues a token.
func Signup(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "email and a password of at least 8 characters are required")
		}

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "database error")
		}
		if count > 0 {
			return errJSON(c, fiber.StatusConflict, "user already exists")
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to hash password")
		}

		user := models.User{
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Role:         models.UserRoleUser,
		}
		if err := db.Create(&user).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to create user")
		}

		token, err := auth.IssueToken(&user, cfg.JWTSecret)
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to issue token")
		}

		return c.Status(fiber.StatusCreated).JSON(AuthResponse{Token: token, User: user})
	}
}

// Login returns a handler for POST /api/v1/auth/login.
func Login(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "email and password are required")
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// Same message as a bad password: don't leak which emails exist.
				return errJSON(c, fiber.StatusUnauthorized, "invalid email or password")
			}
			return errJSON(c, fiber.StatusInternalServerError, "database error")
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			return errJSON(c, fiber.StatusUnauthorized, "invalid email or password")
		}

		token, err := auth.IssueToken(&user, cfg.JWTSecret)
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to issue token")
		}

		return c.JSON(AuthResponse{Token: token, User: user})
	}
}

// Me returns a handler for GET /api/v1/auth/me — the authenticated user's own
// record.
func Me(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return errJSON(c, fiber.StatusNotFound, "user not found")
		}
		return c.JSON(user)
	}
}
