package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanshm/turfbook/internal/middleware"
	"github.com/devanshm/turfbook/internal/websocket"
)

// TestUpdateMatchAlreadyCompleted pins the exactly-once rating guarantee at
// the HTTP layer: completing a match that is already completed must 409
// without touching the teams.
func TestUpdateMatchAlreadyCompleted(t *testing.T) {
	db, mock := setupDB(t)

	matchID := "33333333-3333-3333-3333-333333333333"
	teamAID := "44444444-4444-4444-4444-444444444444"
	teamBID := "55555555-5555-5555-5555-555555555555"
	turfID := "6b1a7f3e-9c2d-4e8f-b1a0-3d5c7e9f1b2d"
	captainID := "0f8e6d4c-2b1a-4f3e-9d8c-7b6a5e4d3c2b"

	matchRows := sqlmock.NewRows([]string{
		"id", "team_a_id", "team_b_id", "turf_id", "date", "time",
		"team_a_score", "team_b_score", "status", "winner_id",
	}).AddRow(matchID, teamAID, teamBID, turfID, "2026-09-01", "19:00",
		2, 1, "completed", teamAID)
	mock.ExpectQuery(`SELECT (.+) FROM "matches" WHERE id =`).
		WillReturnRows(matchRows)

	teamCols := []string{"id", "name", "captain_id", "location", "rating", "tier"}
	mock.ExpectQuery(`SELECT (.+) FROM "teams" WHERE "teams"."id"`).
		WillReturnRows(sqlmock.NewRows(teamCols).
			AddRow(teamAID, "Alpha FC", captainID, "Koramangala", 1216, "Silver"))
	mock.ExpectQuery(`SELECT (.+) FROM "teams" WHERE "teams"."id"`).
		WillReturnRows(sqlmock.NewRows(teamCols).
			AddRow(teamBID, "Bravo FC", captainID, "Koramangala", 1184, "Bronze"))

	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, captainID)
		c.Locals(middleware.LocalUserRole, "user")
		return c.Next()
	})
	app.Patch("/matches/:id", UpdateMatch(db, hub))

	req := httptest.NewRequest("PATCH", "/matches/"+matchID,
		strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// No UPDATE on teams or matches may have been issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}
