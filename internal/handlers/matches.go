// This file handles the /api/v1/matches routes.
//
// The sensitive operation is the transition into status=completed: that is
// the single point where the rating engine runs, and it must run exactly once
// per match. The update handler rejects a second completion with 409 and
// persists the match result and both teams' new rating state in one
// transaction, then pushes the result to WebSocket watchers.
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/models"
	"github.com/devanshm/turfbook/internal/rating"
	"github.com/devanshm/turfbook/internal/websocket"
)

// CreateMatchRequest is the JSON body for POST /api/v1/matches.
type CreateMatchRequest struct {
	TeamAID   string  `json:"team_a_id" validate:"required,uuid"`
	TeamBID   string  `json:"team_b_id" validate:"required,uuid"`
	TurfID    string  `json:"turf_id" validate:"required,uuid"`
	BookingID *string `json:"booking_id" validate:"omitempty,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string  `json:"time" validate:"required"`
}

// UpdateMatchRequest is the JSON body for PATCH /api/v1/matches/:id.
// All fields are optional: scores can be reported while the match is still
// scheduled, and the status flip to completed (which requires both scores to
// be known) can come in the same request or a later one.
type UpdateMatchRequest struct {
	TeamAScore *int    `json:"team_a_score" validate:"omitempty,min=0"`
	TeamBScore *int    `json:"team_b_score" validate:"omitempty,min=0"`
	Status     *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// matchResult is the payload broadcast to WebSocket watchers when a match
// completes.
type matchResult struct {
	Match      models.Match `json:"match"`
	TeamARated models.Team  `json:"team_a"`
	TeamBRated models.Team  `json:"team_b"`
}

// GetMatches returns a handler for GET /api/v1/matches. Pass ?team_id= to
// restrict to one team's matches.
func GetMatches(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Order("date desc, time desc")
		if teamIDStr := c.Query("team_id"); teamIDStr != "" {
			teamID, err := uuid.Parse(teamIDStr)
			if err != nil {
				return errJSON(c, fiber.StatusBadRequest, "invalid team_id")
			}
			query = query.Where("team_a_id = ? OR team_b_id = ?", teamID, teamID)
		}

		var matches []models.Match
		if err := query.Find(&matches).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch matches")
		}
		return c.JSON(matches)
	}
}

// GetMatch returns a handler for GET /api/v1/matches/:id.
func GetMatch(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid match ID")
		}

		var match models.Match
		if err := db.First(&match, "id = ?", matchID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "match not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch match")
		}
		return c.JSON(match)
	}
}

// CreateMatch returns a handler for POST /api/v1/matches.
// The match is created scheduled, with no scores.
func CreateMatch(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var req CreateMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}
		if req.TeamAID == req.TeamBID {
			return errJSON(c, fiber.StatusBadRequest, "a team cannot play itself")
		}

		teamAID, _ := uuid.Parse(req.TeamAID)
		teamBID, _ := uuid.Parse(req.TeamBID)
		turfID, _ := uuid.Parse(req.TurfID)

		var teamA, teamB models.Team
		if err := db.First(&teamA, "id = ?", teamAID).Error; err != nil {
			return errJSON(c, fiber.StatusNotFound, "team not found")
		}
		if err := db.First(&teamB, "id = ?", teamBID).Error; err != nil {
			return errJSON(c, fiber.StatusNotFound, "team not found")
		}
		if teamA.CaptainID != userID && teamB.CaptainID != userID &&
			currentUserRole(c) != models.UserRoleAdmin {
			return errJSON(c, fiber.StatusForbidden, "only a participating team's captain can schedule a match")
		}

		var turf models.Turf
		if err := db.First(&turf, "id = ?", turfID).Error; err != nil {
			return errJSON(c, fiber.StatusNotFound, "turf not found")
		}

		var bookingID *uuid.UUID
		if req.BookingID != nil {
			id, _ := uuid.Parse(*req.BookingID)
			bookingID = &id
		}

		match := models.Match{
			TeamAID:   teamAID,
			TeamBID:   teamBID,
			TurfID:    turfID,
			BookingID: bookingID,
			Date:      req.Date,
			Time:      req.Time,
			Status:    models.MatchStatusScheduled,
		}
		if err := db.Create(&match).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to create match")
		}
		return c.Status(fiber.StatusCreated).JSON(match)
	}
}

// UpdateMatch returns a handler for PATCH /api/v1/matches/:id — score
// reporting and status changes.
//
// When the patch moves the match into completed, both teams' ratings, tiers,
// records, and goal tallies are recomputed and saved together with the match
// in one transaction, and the result is broadcast to the match's WebSocket
// watchers. Completing an already-completed match returns 409 so the engine
// never double-counts.
func UpdateMatch(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}
		matchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid match ID")
		}

		var req UpdateMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}

		var match models.Match
		if err := db.Preload("TeamA").Preload("TeamB").First(&match, "id = ?", matchID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "match not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch match")
		}

		if match.TeamA.CaptainID != userID && match.TeamB.CaptainID != userID &&
			currentUserRole(c) != models.UserRoleAdmin {
			return errJSON(c, fiber.StatusForbidden, "only a participating team's captain can update a match")
		}

		if match.Status == models.MatchStatusCompleted {
			return errJSON(c, fiber.StatusConflict, "match is already completed")
		}

		if req.TeamAScore != nil {
			match.TeamAScore = req.TeamAScore
		}
		if req.TeamBScore != nil {
			match.TeamBScore = req.TeamBScore
		}

		completing := req.Status != nil && models.MatchStatus(*req.Status) == models.MatchStatusCompleted
		if !completing {
			if req.Status != nil {
				match.Status = models.MatchStatus(*req.Status)
			}
			if err := db.Save(&match).Error; err != nil {
				return errJSON(c, fiber.StatusInternalServerError, "failed to update match")
			}
			return c.JSON(match)
		}

		if match.TeamAScore == nil || match.TeamBScore == nil {
			return errJSON(c, fiber.StatusBadRequest, "both scores are required to complete a match")
		}

		scoreA, scoreB := *match.TeamAScore, *match.TeamBScore
		deltaA, deltaB := rating.Apply(snapshot(match.TeamA), snapshot(match.TeamB), scoreA, scoreB)

		match.Status = models.MatchStatusCompleted
		switch {
		case scoreA > scoreB:
			match.WinnerID = &match.TeamAID
		case scoreB > scoreA:
			match.WinnerID = &match.TeamBID
		default:
			match.WinnerID = nil
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&match).Error; err != nil {
				return err
			}
			if err := applyDelta(tx, &match.TeamA, deltaA); err != nil {
				return err
			}
			return applyDelta(tx, &match.TeamB, deltaB)
		})
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to record match result")
		}

		result := matchResult{Match: match, TeamARated: match.TeamA, TeamBRated: match.TeamB}
		if payload, err := json.Marshal(result); err == nil {
			hub.BroadcastToMatch(match.ID.String(), payload)
		}

		return c.JSON(result)
	}
}

// snapshot extracts the rating engine's read view from a team row.
func snapshot(t models.Team) rating.TeamSnapshot {
	return rating.TeamSnapshot{
		Rating:       t.Rating,
		Wins:         t.Wins,
		Losses:       t.Losses,
		Draws:        t.Draws,
		GoalsFor:     t.GoalsFor,
		GoalsAgainst: t.GoalsAgainst,
	}
}

// applyDelta writes one team's post-match state and mirrors it onto the
// in-memory row so the response and broadcast show the updated values.
func applyDelta(tx *gorm.DB, team *models.Team, d rating.Delta) error {
	team.Rating = d.Rating
	team.Tier = d.Tier
	team.Wins = d.Wins
	team.Losses = d.Losses
	team.Draws = d.Draws
	team.GoalsFor = d.GoalsFor
	team.GoalsAgainst = d.GoalsAgainst
	return tx.Model(team).Updates(map[string]interface{}{
		"rating":        d.Rating,
		"tier":          d.Tier,
		"wins":          d.Wins,
		"losses":        d.Losses,
		"draws":         d.Draws,
		"goals_for":     d.GoalsFor,
		"goals_against": d.GoalsAgainst,
	}).Error
}
