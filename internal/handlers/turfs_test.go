package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupDB wires GORM to a sqlmock connection so handler queries can be
// asserted without a real Postgres.
func setupDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGetTurfs(t *testing.T) {
	db, mock := setupDB(t)

	turfID := "6b1a7f3e-9c2d-4e8f-b1a0-3d5c7e9f1b2d"
	ownerID := "0f8e6d4c-2b1a-4f3e-9d8c-7b6a5e4d3c2b"
	rows := sqlmock.NewRows([]string{
		"id", "name", "location", "address", "turf_type", "price_per_hour",
		"open_hour", "close_hour", "slot_minutes", "owner_id", "is_active",
	}).AddRow(turfID, "Greenfield Arena", "Koramangala", "12 Main Rd",
		"5-a-side", 1200.0, 6, 23, 60, ownerID, true)

	mock.ExpectQuery(`SELECT (.+) FROM "turfs" WHERE is_active =`).
		WithArgs(true).
		WillReturnRows(rows)

	app := fiber.New()
	app.Get("/turfs", GetTurfs(db))

	resp, err := app.Test(httptest.NewRequest("GET", "/turfs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var turfs []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&turfs))
	require.Len(t, turfs, 1)
	assert.Equal(t, "Greenfield Arena", turfs[0]["name"])
	assert.Equal(t, "5-a-side", turfs[0]["turf_type"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTurfSlots(t *testing.T) {
	db, mock := setupDB(t)

	turfID := "6b1a7f3e-9c2d-4e8f-b1a0-3d5c7e9f1b2d"
	ownerID := "0f8e6d4c-2b1a-4f3e-9d8c-7b6a5e4d3c2b"

	// Turf open 06:00-09:00 with 60-minute slots: three slots in the grid.
	turfRows := sqlmock.NewRows([]string{
		"id", "name", "location", "address", "turf_type", "price_per_hour",
		"open_hour", "close_hour", "slot_minutes", "owner_id", "is_active",
	}).AddRow(turfID, "Greenfield Arena", "Koramangala", "12 Main Rd",
		"5-a-side", 1200.0, 6, 9, 60, ownerID, true)
	mock.ExpectQuery(`SELECT (.+) FROM "turfs" WHERE id =`).
		WillReturnRows(turfRows)

	// One confirmed booking holds 07:00-08:00; a cancelled one does not hold
	// 08:00-09:00.
	bookingRows := sqlmock.NewRows([]string{
		"id", "turf_id", "date", "start_time", "end_time", "status",
	}).
		AddRow("11111111-1111-1111-1111-111111111111", turfID, "2026-09-01", "07:00", "08:00", "confirmed").
		AddRow("22222222-2222-2222-2222-222222222222", turfID, "2026-09-01", "08:00", "09:00", "cancelled")
	mock.ExpectQuery(`SELECT (.+) FROM "bookings" WHERE turf_id =`).
		WillReturnRows(bookingRows)

	app := fiber.New()
	app.Get("/turfs/:id/slots", GetTurfSlots(db))

	resp, err := app.Test(httptest.NewRequest("GET", "/turfs/"+turfID+"/slots?date=2026-09-01", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var slots []SlotStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&slots))
	require.Len(t, slots, 3)

	assert.Equal(t, "06:00", slots[0].StartTime)
	assert.True(t, slots[0].Available)
	assert.Equal(t, "07:00", slots[1].StartTime)
	assert.False(t, slots[1].Available, "confirmed booking holds its slot")
	assert.Equal(t, "08:00", slots[2].StartTime)
	assert.True(t, slots[2].Available, "cancelled booking releases its slot")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTurfSlotsRequiresDate(t *testing.T) {
	db, _ := setupDB(t)

	app := fiber.New()
	app.Get("/turfs/:id/slots", GetTurfSlots(db))

	resp, err := app.Test(httptest.NewRequest(
		"GET", "/turfs/6b1a7f3e-9c2d-4e8f-b1a0-3d5c7e9f1b2d/slots", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
