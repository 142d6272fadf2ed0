package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/middleware"
)

const (
	testTurfID    = "6b1a7f3e-9c2d-4e8f-b1a0-3d5c7e9f1b2d"
	testOwnerID   = "0f8e6d4c-2b1a-4f3e-9d8c-7b6a5e4d3c2b"
	testBookerID  = "7a5b3c1d-9e8f-4a2b-b6c4-d2e0f8a6b4c2"
	testBookingID = "99999999-9999-9999-9999-999999999999"
)

// bookingApp builds a minimal app with the booking create route behind a
// stub that injects the authenticated user, the way the Auth middleware would.
func bookingApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, testBookerID)
		c.Locals(middleware.LocalUserRole, "user")
		return c.Next()
	})
	app.Post("/bookings", CreateBooking(db))
	return app
}

func turfRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "location", "address", "turf_type", "price_per_hour",
		"open_hour", "close_hour", "slot_minutes", "owner_id", "is_active",
	}).AddRow(testTurfID, "Greenfield Arena", "Koramangala", "12 Main Rd",
		"5-a-side", 1200.0, 6, 23, 60, testOwnerID, true)
}

func bookingBody(startTime, endTime string) string {
	return `{"turf_id":"` + testTurfID + `","date":"2026-09-01",` +
		`"start_time":"` + startTime + `","end_time":"` + endTime + `"}`
}

func TestCreateBookingConflict(t *testing.T) {
	db, mock := setupDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "turfs" WHERE id =`).
		WillReturnRows(turfRow())

	// A confirmed booking already holds 18:00-19:00, so the transaction must
	// roll back without inserting.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings" WHERE turf_id =`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "turf_id", "date", "start_time", "end_time", "status",
		}).AddRow(testBookingID, testTurfID, "2026-09-01", "18:00", "19:00", "confirmed"))
	mock.ExpectRollback()

	app := bookingApp(db)
	req := httptest.NewRequest("POST", "/bookings",
		strings.NewReader(bookingBody("18:00", "19:00")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "time slot already booked", body["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingFreeSlot(t *testing.T) {
	db, mock := setupDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "turfs" WHERE id =`).
		WillReturnRows(turfRow())

	// The only existing booking on the date is cancelled, which releases its
	// slot; the insert goes through and commits.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings" WHERE turf_id =`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "turf_id", "date", "start_time", "end_time", "status",
		}).AddRow(testBookingID, testTurfID, "2026-09-01", "18:00", "19:00", "cancelled"))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow("88888888-8888-8888-8888-888888888888"))
	mock.ExpectCommit()

	app := bookingApp(db)
	req := httptest.NewRequest("POST", "/bookings",
		strings.NewReader(bookingBody("18:00", "19:00")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, 1200.0, created["total_price"], "one hour at the turf's rate")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsInvalidInterval(t *testing.T) {
	db, _ := setupDB(t)
	app := bookingApp(db)

	for name, body := range map[string]string{
		"malformed start":  bookingBody("9:00", "10:00"),
		"end before start": bookingBody("10:00", "09:00"),
		"zero length":      bookingBody("10:00", "10:00"),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}
