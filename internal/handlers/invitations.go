// This file handles the /api/v1/match-invitations routes — the challenge handshake
// between two teams. Accepting or declining is terminal; it does not schedule
// a match automatically.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/models"
)

// CreateInvitationRequest is the JSON body for POST /api/v1/match-invitations.
type CreateInvitationRequest struct {
	FromTeamID    string  `json:"from_team_id" validate:"required,uuid"`
	ToTeamID      string  `json:"to_team_id" validate:"required,uuid"`
	PreferredDate *string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
	PreferredTime *string `json:"preferred_time"`
	TurfID        *string `json:"turf_id" validate:"omitempty,uuid"`
	Message       *string `json:"message"`
}

// RespondInvitationRequest is the JSON body for PATCH /api/v1/match-invitations/:id.
type RespondInvitationRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// GetInvitations returns a handler for GET /api/v1/match-invitations — every
// invitation sent or received by a team the authenticated user captains.
func GetInvitations(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var teamIDs []uuid.UUID
		if err := db.Model(&models.Team{}).Where("captain_id = ?", userID).Pluck("id", &teamIDs).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch teams")
		}
		if len(teamIDs) == 0 {
			return c.JSON([]models.MatchInvitation{})
		}

		var invitations []models.MatchInvitation
		err := db.
			Where("from_team_id IN ? OR to_team_id IN ?", teamIDs, teamIDs).
			Order("created_at desc").
			Find(&invitations).Error
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch invitations")
		}
		return c.JSON(invitations)
	}
}

// CreateInvitation returns a handler for POST /api/v1/match-invitations.
// Only the challenging team's captain may send one.
func CreateInvitation(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var req CreateInvitationRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}
		if req.FromTeamID == req.ToTeamID {
			return errJSON(c, fiber.StatusBadRequest, "a team cannot challenge itself")
		}

		fromTeamID, _ := uuid.Parse(req.FromTeamID)
		toTeamID, _ := uuid.Parse(req.ToTeamID)

		var fromTeam models.Team
		if err := db.First(&fromTeam, "id = ?", fromTeamID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "team not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch team")
		}
		if fromTeam.CaptainID != userID {
			return errJSON(c, fiber.StatusForbidden, "only the team captain can send invitations")
		}

		var toTeam models.Team
		if err := db.First(&toTeam, "id = ?", toTeamID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "team not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch team")
		}

		var turfID *uuid.UUID
		if req.TurfID != nil {
			id, _ := uuid.Parse(*req.TurfID)
			turfID = &id
		}

		invitation := models.MatchInvitation{
			FromTeamID:    fromTeamID,
			ToTeamID:      toTeamID,
			PreferredDate: req.PreferredDate,
			PreferredTime: req.PreferredTime,
			TurfID:        turfID,
			Message:       req.Message,
			Status:        models.InvitationStatusPending,
		}
		if err := db.Create(&invitation).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to create invitation")
		}
		return c.Status(fiber.StatusCreated).JSON(invitation)
	}
}

// RespondInvitation returns a handler for PATCH /api/v1/match-invitations/:id.
// Only the challenged team's captain may respond, and only while the
// invitation is still pending.
func RespondInvitation(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}
		invitationID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid invitation ID")
		}

		var req RespondInvitationRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "status must be 'accepted' or 'declined'")
		}

		var invitation models.MatchInvitation
		if err := db.Preload("ToTeam").First(&invitation, "id = ?", invitationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "invitation not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch invitation")
		}

		if invitation.ToTeam.CaptainID != userID {
			return errJSON(c, fiber.StatusForbidden, "only the challenged team's captain can respond")
		}
		if invitation.Status != models.InvitationStatusPending {
			return errJSON(c, fiber.StatusConflict, "invitation has already been answered")
		}

		if err := db.Model(&invitation).Update("status", models.InvitationStatus(req.Status)).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to update invitation")
		}
		invitation.Status = models.InvitationStatus(req.Status)
		return c.JSON(invitation)
	}
}
