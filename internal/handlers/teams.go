// This file handles the /api/v1/teams routes — team creation, rosters, and
// the rating-ordered rankings board.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devanshm/turfbook/internal/models"
	"github.com/devanshm/turfbook/internal/rating"
)

// CreateTeamRequest is the JSON body for POST /api/v1/teams.
type CreateTeamRequest struct {
	Name              string  `json:"name" validate:"required,min=2"`
	Location          string  `json:"location" validate:"required"`
	PreferredTurfType *string `json:"preferred_turf_type" validate:"omitempty,oneof=5-a-side 7-a-side 11-a-side"`
	LogoURL           *string `json:"logo_url"`
}

// AddMemberRequest is the JSON body for POST /api/v1/teams/:id/members.
type AddMemberRequest struct {
	UserID   string  `json:"user_id" validate:"required,uuid"`
	Position *string `json:"position"`
}

// RankingEntry is one row of the rankings board: a team plus its 1-based rank.
type RankingEntry struct {
	Rank int         `json:"rank"`
	Team models.Team `json:"team"`
}

// GetTeams returns a handler for GET /api/v1/teams — all teams, strongest
// first.
func GetTeams(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var teams []models.Team
		if err := db.Order("rating desc").Find(&teams).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch teams")
		}
		return c.JSON(teams)
	}
}

// GetRankings returns a handler for GET /api/v1/teams/rankings — the same
// rating-ordered list with explicit rank numbers attached.
func GetRankings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var teams []models.Team
		if err := db.Order("rating desc").Find(&teams).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch teams")
		}

		rankings := make([]RankingEntry, 0, len(teams))
		for i, team := range teams {
			rankings = append(rankings, RankingEntry{Rank: i + 1, Team: team})
		}
		return c.JSON(rankings)
	}
}

// GetMyTeams returns a handler for GET /api/v1/teams/my — every team the
// authenticated user belongs to.
func GetMyTeams(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var teams []models.Team
		err := db.
			Joins("JOIN team_members ON team_members.team_id = teams.id").
			Where("team_members.user_id = ?", userID).
			Find(&teams).Error
		if err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch teams")
		}
		return c.JSON(teams)
	}
}

// GetTeam returns a handler for GET /api/v1/teams/:id.
func GetTeam(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := uuid.Parse(c.Params("id"))
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
		return c.JSON(team)
	}
}

// CreateTeam returns a handler for POST /api/v1/teams.
// The creator becomes the team's captain and its first member. New teams start
// at the default rating (1200, Silver).
func CreateTeam(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}

		var req CreateTeamRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}

		var turfType *models.TurfType
		if req.PreferredTurfType != nil {
			t := models.TurfType(*req.PreferredTurfType)
			turfType = &t
		}

		team := models.Team{
			Name:              req.Name,
			CaptainID:         userID,
			Location:          req.Location,
			PreferredTurfType: turfType,
			LogoURL:           req.LogoURL,
			Rating:            rating.DefaultRating,
			Tier:              rating.TierFor(rating.DefaultRating),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
			member := models.TeamMember{TeamID: team.ID, UserID: userID}
			return tx.Create(&member).Error
		})
		if err != nil {
			if isDuplicateKey(err) {
				return errJSON(c, fiber.StatusConflict, "a team with that name already exists")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to create team")
		}

		return c.Status(fiber.StatusCreated).JSON(team)
	}
}

// GetTeamMembers returns a handler for GET /api/v1/teams/:id/members.
func GetTeamMembers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid team ID")
		}

		var members []models.TeamMember
		if err := db.Where("team_id = ?", teamID).Order("joined_at asc").Find(&members).Error; err != nil {
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch members")
		}
		return c.JSON(members)
	}
}

// AddTeamMember returns a handler for POST /api/v1/teams/:id/members.
// Only the team's captain may add members.
func AddTeamMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c)
		if !ok {
			return errJSON(c, fiber.StatusUnauthorized, "invalid user ID")
		}
		teamID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid team ID")
		}

		var req AddMemberRequest
		if err := c.BodyParser(&req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return errJSON(c, fiber.StatusBadRequest, err.Error())
		}

		var team models.Team
		if err := db.First(&team, "id = ?", teamID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "team not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch team")
		}
		if team.CaptainID != userID {
			return errJSON(c, fiber.StatusForbidden, "only the team captain can add members")
		}

		newUserID, _ := uuid.Parse(req.UserID)
		var user models.User
		if err := db.First(&user, "id = ?", newUserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errJSON(c, fiber.StatusNotFound, "user not found")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to fetch user")
		}

		member := models.TeamMember{
			TeamID:   teamID,
			UserID:   newUserID,
			Position: req.Position,
		}
		if err := db.Create(&member).Error; err != nil {
			if isDuplicateKey(err) {
				return errJSON(c, fiber.StatusConflict, "user is already a member of this team")
			}
			return errJSON(c, fiber.StatusInternalServerError, "failed to add member")
		}

		return c.Status(fiber.StatusCreated).JSON(member)
	}
}
