// This file handles GET /api/v1/matchmaking/suggestions/:teamId — the ranked
// opponent shortlist. The handler only loads the team population; the scoring
// and ranking live in the matchmaking package.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/matchmaking"
	"github.com/devanshm/turfbook/internal/models"
)

// GetSuggestions returns a handler for GET /api/v1/matchmaking/suggestions/:teamId.
func GetSuggestions(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := uuid.Parse(c.Params("teamId"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid team ID")
		}

		var team models.Team
		if err := db.First(&team, "id = ?", teamID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "team not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch team")
		}

		var candidates []models.Team
		if err := db.Order("created_at asc").Find(&candidates).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch teams")
		}

		return c.JSON(matchmaking.Suggest(team, candidates))
	}
}
