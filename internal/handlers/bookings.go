// This file handles the booking routes — creating bookings with the slot
// conflict check, cancelling, and the owner/admin approval workflow.
//
// The conflict invariant (no two live bookings overlap on a turf and date)
// is enforced here: the handler validates the request shape first
// (validate-then-compute), then re-reads the turf's bookings and runs the
// pure availability check inside the same transaction as the insert, so two
// simultaneous requests for the same slot serialize on the database.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/booking"
	"github.com/devanshm/turfbook/internal/models"
)

// errSlotTaken is the sentinel the create transaction returns when the
// availability check fails, so the handler can map it to a 409.
var errSlotTaken = errors.New("time slot already booked")

// CreateBookingRequest is the JSON body for POST /api/v1/bookings.
type CreateBookingRequest struct {
	TurfID    string  `json:"turf_id" validate:"required,uuid"`
	TeamID    *string `json:"team_id" validate:"omitempty,uuid"`
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Notes     *string `json:"notes"`
}

// DecideBookingRequest is the JSON body for the owner/admin decision route.
type DecideBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected"`
}

// bookingWindows loads the conflict-check snapshot for a turf and date:
// every booking row on that turf reduced to its date, interval, and status.
// The status filter itself lives in the pure checker, not in SQL, so the
// checker remains the single place that decides which statuses hold a slot.
func bookingWindows(db *gorm.DB, turfID uuid.UUID, date string) ([]booking.Window, error) {
	var rows []models.Booking
	if err := db.Where("turf_id = ? AND date = ?", turfID, date).Find(&rows).Error; err != nil {
		return nil, err
	}
	windows := make([]booking.Window, 0, len(rows))
	for _, b := range rows {
		windows = append(windows, booking.Window{
			Date:      b.Date,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    b.Status,
		})
	}
	return windows, nil
}

// GetMyBookings returns a handler for GET /api/v1/bookings — the
// authenticated user's own bookings, newest date first.
func GetMyBookings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var bookings []models.Booking
		if err := db.Where("user_id = ?", userID).Order("date desc").Find(&bookings).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch bookings")
		}
		return c.JSON(bookings)
	}
}

// CreateBooking returns a handler for POST /api/v1/bookings.
// The booking is created pending; it responds 409 when the requested slot
// conflicts with an existing live booking.
func CreateBooking(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var req CreateBookingRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}

		// Validate before computing: the pure availability check accepts any
		// interval, so well-formedness is this handler's responsibility.
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
		}
		start, err := booking.ParseClock(req.StartTime)
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "start_time must be in HH:MM format")
		}
		end, err := booking.ParseClock(req.EndTime)
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "end_time must be in HH:MM format")
		}
		if end <= start {
			return errJSON(c, fiber.StatusBadRequest, "end_time must be after start_time")
		}

		turfID, _ := uuid.Parse(req.TurfID)
		var turf models.Turf
		if err := db.First(&turf, "id = ? AND is_active = ?", turfID, true).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "turf not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch turf")
		}

		var teamID *uuid.UUID
		if req.TeamID != nil {
			id, _ := uuid.Parse(*req.TeamID)
			teamID = &id
		}

		candidate := booking.Slot{StartTime: req.StartTime, EndTime: req.EndTime}
		price := turf.PricePerHour * float64(end-start) / 60

		created := models.Booking{
			TurfID:     turf.ID,
			UserID:     userID,
			TeamID:     teamID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Status:     models.BookingStatusPending,
			TotalPrice: price,
			Notes:      req.Notes,
		}

		// Check and insert in one transaction so concurrent requests for the
		// same slot serialize on the database's row locks.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			windows, err := bookingWindows(tx, turf.ID, req.Date)
			if err != nil {
				return err
			}
			if !booking.SlotAvailable(candidate, req.Date, windows) {
				return errSlotTaken
			}
			return tx.Create(&created).Error
		})
		if txErr == errSlotTaken {
			return errJSON(c, fiber.StatusConflict, "time slot already booked")
		}
		if txErr != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to create booking")
		}

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// CancelBooking returns a handler for PATCH /api/v1/bookings/:id/cancel.
// Only the requester may cancel their own booking, and only while it is
// pending or confirmed.
func CancelBooking(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}
		bookingID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid booking ID")
		}

		var b models.Booking
		if err := db.First(&b, "id = ?", bookingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "booking not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch booking")
		}

		if b.UserID != userID {
			return errJSON(c, fiber.StatusForbidden, "only the requester can cancel a booking")
		}
		if b.Status == models.BookingStatusCancelled || b.Status == models.BookingStatusRejected {
			return errJSON(c, fiber.StatusConflict, "booking is already closed")
		}

		if err := db.Model(&b).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to cancel booking")
		}
		b.Status = models.BookingStatusCancelled
		return c.JSON(b)
	}
}

// GetOwnerBookings returns a handler for GET /api/v1/owner/bookings —
// bookings on turfs the authenticated owner manages (admins see all).
func GetOwnerBookings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var bookings []models.Booking
		query := db.Order("date desc")
		if currentUserRole(c) != models.UserRoleAdmin {
			query = query.
				Joins("JOIN turfs ON turfs.id = bookings.turf_id").
				Where("turfs.owner_id = ?", userID)
		}
		if err := query.Find(&bookings).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch bookings")
		}
		return c.JSON(bookings)
	}
}

// DecideBooking returns a handler for PATCH /api/v1/owner/bookings/:id —
// the owner/admin decision that moves a pending booking to confirmed or
// rejected.
func DecideBooking(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}
		bookingID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid booking ID")
		}

		var req DecideBookingRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "status must be 'confirmed' or 'rejected'")
		}

		var b models.Booking
		if err := db.Preload("Turf").First(&b, "id = ?", bookingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "booking not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch booking")
		}

		if !canManageTurf(&b.Turf, userID, currentUserRole(c)) {
			return errJSON(c, fiber.StatusForbidden, "not authorized to manage this turf's bookings")
		}
		if b.Status != models.BookingStatusPending {
			return errJSON(c, fiber.StatusConflict, "only pending bookings can be decided")
		}

		if err := db.Model(&b).Update("status", models.BookingStatus(req.Status)).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to update booking")
		}
		b.Status = models.BookingStatus(req.Status)
		return c.JSON(b)
	}
}

// GetAllBookings returns a handler for GET /api/v1/admin/bookings — every
// booking in the system, newest date first. Admin only (route-level).
func GetAllBookings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bookings []models.Booking
		if err := db.Order("date desc").Find(&bookings).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch bookings")
		}
		return c.JSON(bookings)
	}
}
