// This file handles the /api/v1/tournaments routes — browsing tournaments,
// organizing them (admins and owners), and registering teams before the
// deadline.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/models"
)

// errTournamentFull is the sentinel the registration transaction returns when
// the team cap is reached, so the handler can map it to a 409.
var errTournamentFull = errors.New("tournament is full")

// CreateTournamentRequest is the JSON body for POST /api/v1/tournaments.
type CreateTournamentRequest struct {
	Name                 string   `json:"name" validate:"required"`
	Description          *string  `json:"description"`
	Location             string   `json:"location" validate:"required"`
	TurfType             *string  `json:"turf_type" validate:"omitempty,oneof=5-a-side 7-a-side 11-a-side"`
	StartDate            string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	RegistrationDeadline string   `json:"registration_deadline" validate:"required,datetime=2006-01-02"`
	MaxTeams             int      `json:"max_teams" validate:"required,min=2"`
	EntryFee             *float64 `json:"entry_fee" validate:"omitempty,gte=0"`
	PrizeInfo            *string  `json:"prize_info"`
	ImageURL             *string  `json:"image_url"`
}

// RegisterTeamRequest is the JSON body for POST /api/v1/tournaments/:id/register.
type RegisterTeamRequest struct {
	TeamID string `json:"team_id" validate:"required,uuid"`
}

// GetTournaments returns a handler for GET /api/v1/tournaments — all
// tournaments, soonest start date first.
func GetTournaments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tournaments []models.Tournament
		if err := db.Order("start_date asc").Find(&tournaments).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch tournaments")
		}
		return c.JSON(tournaments)
	}
}

// GetTournament returns a handler for GET /api/v1/tournaments/:id.
func GetTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid tournament ID")
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "tournament not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch tournament")
		}
		return c.JSON(tournament)
	}
}

// CreateTournament returns a handler for POST /api/v1/tournaments.
// Requires "admin" or "owner" role (enforced by RequireRole on the route);
// the authenticated user becomes the organizer.
func CreateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var req CreateTournamentRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}
		if req.EndDate < req.StartDate {
			return errJSON(c, fiber.StatusBadRequest, "end_date must not be before start_date")
		}
		if req.RegistrationDeadline > req.StartDate {
			return errJSON(c, fiber.StatusBadRequest, "registration_deadline must not be after start_date")
		}

		var turfType *models.TurfType
		if req.TurfType != nil {
			t := models.TurfType(*req.TurfType)
			turfType = &t
		}

		tournament := models.Tournament{
			Name:                 req.Name,
			Description:          req.Description,
			OrganizerID:          userID,
			Location:             req.Location,
			TurfType:             turfType,
			StartDate:            req.StartDate,
			EndDate:              req.EndDate,
			RegistrationDeadline: req.RegistrationDeadline,
			MaxTeams:             req.MaxTeams,
			EntryFee:             req.EntryFee,
			PrizeInfo:            req.PrizeInfo,
			Status:               models.TournamentStatusUpcoming,
			ImageURL:             req.ImageURL,
		}
		if err := db.Create(&tournament).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to create tournament")
		}
		return c.Status(fiber.StatusCreated).JSON(tournament)
	}
}

// RegisterTeam returns a handler for POST /api/v1/tournaments/:id/register.
// Registration closes at the deadline (date comparison, the deadline day
// itself is still open) and when MaxTeams is reached; a team registers at
// most once. Only the team's captain may register it.
func RegisterTeam(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid tournament ID")
		}

		var req RegisterTeamRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}
		teamID, _ := uuid.Parse(req.TeamID)

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "tournament not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch tournament")
		}
		if tournament.Status != models.TournamentStatusUpcoming {
			return errJSON(c, fiber.StatusConflict, "registration is closed")
		}
		if time.Now().Format("2006-01-02") > tournament.RegistrationDeadline {
			return errJSON(c, fiber.StatusConflict, "registration deadline has passed")
		}

		var team models.Team
		if err := db.First(&team, "id = ?", teamID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "team not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch team")
		}
		if team.CaptainID != userID {
			return errJSON(c, fiber.StatusForbidden, "only the team captain can register the team")
		}

		registration := models.TournamentRegistration{
			TournamentID: tournamentID,
			TeamID:       teamID,
		}

		// Capacity check and insert share a transaction so the cap holds under
		// concurrent registrations; the unique index catches duplicates.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.TournamentRegistration{}).
				Where("tournament_id = ?", tournamentID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(tournament.MaxTeams) {
				return errTournamentFull
			}
			return tx.Create(&registration).Error
		})
		if txErr == errTournamentFull {
			return errJSON(c, fiber.StatusConflict, "tournament is full")
		}
		if txErr != nil {
			if isDuplicateKey(txErr) {
				return errJSON(c, fiber.StatusConflict, "team is already registered")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to register team")
		}

		return c.Status(fiber.StatusCreated).JSON(registration)
	}
}

// GetTournamentTeams returns a handler for GET /api/v1/tournaments/:id/teams —
// the registered teams, in registration order.
func GetTournamentTeams(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid tournament ID")
		}

		var teams []models.Team
		err = db.
			Joins("JOIN tournament_registrations ON tournament_registrations.team_id = teams.id").
			Where("tournament_registrations.tournament_id = ?", tournamentID).
			Order("tournament_registrations.registered_at asc").
			Find(&teams).Error
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch teams")
		}
		return c.JSON(teams)
	}
}
