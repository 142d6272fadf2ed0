// This file handles the /api/v1/turfs routes — browsing turfs, the slot grid
// for a day, and inventory management by owners and admins.
//
// --- Permission model ---
// Two layers of access control:
//
//  1. Route-level (middleware.RequireRole): only "admin" and "owner" global
//     roles can register turfs (POST /turfs). Anyone can browse.
//
//  2. Resource-level (canManageTurf, defined below): controls who can modify
//     a specific turf or decide on its bookings.
//     - "admin" global role → can manage ANY turf.
//     - "owner" global role → can ONLY manage turfs where they are the
//       recorded owner.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/booking"
	"github.com/devanshm/turfbook/internal/models"
)

// CreateTurfRequest is the JSON body for POST /api/v1/turfs.
type CreateTurfRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	Location     string  `json:"location" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	TurfType     string  `json:"turf_type" validate:"required,oneof=5-a-side 7-a-side 11-a-side"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
	OpenHour     *int    `json:"open_hour" validate:"omitempty,min=0,max=23"`
	CloseHour    *int    `json:"close_hour" validate:"omitempty,min=1,max=24"`
	SlotMinutes  *int    `json:"slot_minutes" validate:"omitempty,min=15,max=240"`
	ImageURL     *string `json:"image_url"`
}

// UpdateTurfRequest is the JSON body for PATCH /api/v1/turfs/:id.
// Every field is optional; only provided fields are updated.
type UpdateTurfRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Address      *string  `json:"address"`
	PricePerHour *float64 `json:"price_per_hour" validate:"omitempty,gt=0"`
	OpenHour     *int     `json:"open_hour" validate:"omitempty,min=0,max=23"`
	CloseHour    *int     `json:"close_hour" validate:"omitempty,min=1,max=24"`
	SlotMinutes  *int     `json:"slot_minutes" validate:"omitempty,min=15,max=240"`
	ImageURL     *string  `json:"image_url"`
	IsActive     *bool    `json:"is_active"`
}

// SlotStatus is one entry of the day grid returned by GET /turfs/:id/slots:
// a canonical slot plus whether it is still free on the requested date.
type SlotStatus struct {
	booking.Slot
	Available bool `json:"available"`
}

// GetTurfs returns a handler for GET /api/v1/turfs — all active turfs.
func GetTurfs(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var turfs []models.Turf
		if err := db.Where("is_active = ?", true).Find(&turfs).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch turfs")
		}
		return c.JSON(turfs)
	}
}

// GetAllTurfs returns a handler for GET /api/v1/admin/turfs — every turf,
// inactive ones included. Admin only (route-level).
func GetAllTurfs(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var turfs []models.Turf
		if err := db.Order("created_at asc").Find(&turfs).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch turfs")
		}
		return c.JSON(turfs)
	}
}

// GetTurf returns a handler for GET /api/v1/turfs/:id.
func GetTurf(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		turfID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid turf ID")
		}

		var turf models.Turf
		if err := db.First(&turf, "id = ?", turfID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "turf not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch turf")
		}
		return c.JSON(turf)
	}
}

// GetTurfSlots returns a handler for GET /api/v1/turfs/:id/slots?date=YYYY-MM-DD.
// It generates the turf's canonical slot grid and marks each slot available or
// taken against the date's bookings. The grid is computed fresh per request.
func GetTurfSlots(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		turfID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid turf ID")
		}
		date := c.Query("date")
		if date == "" {
			return errJSON(c, fiber.StatusBadRequest, "date query parameter is required")
		}

		var turf models.Turf
		if err := db.First(&turf, "id = ?", turfID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "turf not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch turf")
		}

		windows, err := bookingWindows(db, turfID, date)
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch bookings")
		}

		grid := booking.GenerateSlots(turf.OpenHour, turf.CloseHour, turf.SlotMinutes)
		statuses := make([]SlotStatus, 0, len(grid))
		for _, slot := range grid {
			statuses = append(statuses, SlotStatus{
				Slot:      slot,
				Available: booking.SlotAvailable(slot, date, windows),
			})
		}
		return c.JSON(statuses)
	}
}

// GetTurfBookings returns a handler for GET /api/v1/turfs/:id/bookings —
// the booking list clients use to render a turf's calendar.
func GetTurfBookings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		turfID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid turf ID")
		}

		var bookings []models.Booking
		if err := db.Where("turf_id = ?", turfID).Order("date desc").Find(&bookings).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch bookings")
		}
		return c.JSON(bookings)
	}
}

// CreateTurf returns a handler for POST /api/v1/turfs.
// Requires "admin" or "owner" role (enforced by RequireRole on the route).
// The authenticated user becomes the turf's owner.
func CreateTurf(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var req CreateTurfRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}

		turf := models.Turf{
			Name:         req.Name,
			Description:  req.Description,
			Location:     req.Location,
			Address:      req.Address,
			TurfType:     models.TurfType(req.TurfType),
			PricePerHour: req.PricePerHour,
			OpenHour:     6,
			CloseHour:    23,
			SlotMinutes:  60,
			ImageURL:     req.ImageURL,
			OwnerID:      userID,
			IsActive:     true,
		}
		if req.OpenHour != nil {
			turf.OpenHour = *req.OpenHour
		}
		if req.CloseHour != nil {
			turf.CloseHour = *req.CloseHour
		}
		if req.SlotMinutes != nil {
			turf.SlotMinutes = *req.SlotMinutes
		}
		if turf.CloseHour <= turf.OpenHour {
			return errJSON(c, fiber.StatusBadRequest, "close_hour must be after open_hour")
		}

		if err := db.Create(&turf).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to create turf")
		}
		return c.Status(fiber.StatusCreated).JSON(turf)
	}
}

// UpdateTurf returns a handler for PATCH /api/v1/turfs/:id.
// Only an admin or the turf's recorded owner may modify it.
func UpdateTurf(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}
		turfID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid turf ID")
		}

		var turf models.Turf
		if err := db.First(&turf, "id = ?", turfID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "turf not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch turf")
		}

		if !canManageTurf(&turf, userID, currentUserRole(c)) {
			return errJSON(c, fiber.StatusForbidden, "not authorized to manage this turf")
		}

		var req UpdateTurfRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Address != nil {
			updates["address"] = *req.Address
		}
		if req.PricePerHour != nil {
			updates["price_per_hour"] = *req.PricePerHour
		}
		if req.OpenHour != nil {
			updates["open_hour"] = *req.OpenHour
		}
		if req.CloseHour != nil {
			updates["close_hour"] = *req.CloseHour
		}
		if req.SlotMinutes != nil {
			updates["slot_minutes"] = *req.SlotMinutes
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}

		if len(updates) > 0 {
			if err := db.Model(&turf).Updates(updates).Error; err != nil {
				return errJSON(c, fiber.StatusInternalServerError, "failed to update turf")
			}
		}
		return c.JSON(turf)
	}
}

// canManageTurf reports whether a user may manage a specific turf:
// global admins may manage any turf; everyone else must be its recorded owner.
func canManageTurf(turf *models.Turf, userID uuid.UUID, role models.UserRole) bool {
	if role == models.UserRoleAdmin {
		return true
	}
	return turf.OwnerID == userID
}
