// Package rating implements the ELO rating engine: pure arithmetic that turns
// a finished match's scores into new ratings, tiers, and win/loss/draw and
// goal tallies for both teams.
//
// The computation runs once, synchronously, when a match transitions into
// completed with both scores present. It is not idempotent — re-applying it
// to an already-completed match double-counts — so the caller must guard the
// transition (the match handler returns 409 on a second completion attempt).
// The functions here never fail: the caller verifies both teams exist and
// both scores are present before invoking.
package rating

import (
	"math"

	"github.com/devanshm/turfbook/internal/models"
)

// KFactor is the rating update's sensitivity constant.
const KFactor = 32

// DefaultRating is the rating assigned to a newly created team.
const DefaultRating = 1200

// TeamSnapshot is the read-only view of a team's rating state that the engine
// consumes. The caller loads it from persistence; the engine never touches
// storage itself.
type TeamSnapshot struct {
	Rating       int
	Wins         int
	Losses       int
	Draws        int
	GoalsFor     int
	GoalsAgainst int
}

// Delta is the computed post-match state for one team. The caller persists it;
// every field is an absolute new value, not an increment.
type Delta struct {
	Rating       int
	Tier         models.Tier
	Wins         int
	Losses       int
	Draws        int
	GoalsFor     int
	GoalsAgainst int
}

// ExpectedScore is the standard logistic expected-outcome model:
// E_x = 1 / (1 + 10^((Ry-Rx)/400)). For any pair of ratings,
// ExpectedScore(a, b) + ExpectedScore(b, a) == 1.
func ExpectedScore(rx, ry int) float64 {
	return 1 / (1 + math.Pow(10, float64(ry-rx)/400))
}

// NewRating computes round(r + K*(S - E)) for actual score s in {1, 0.5, 0}.
// Rounding is half away from zero (math.Round); the result is externally
// visible in persisted ratings, so the rule is fixed here and pinned by tests.
func NewRating(rating, opponentRating int, actual float64) int {
	expected := ExpectedScore(rating, opponentRating)
	return int(math.Round(float64(rating) + KFactor*(actual-expected)))
}

// TierFor maps a rating to its tier. Thresholds are evaluated high to low,
// first match wins.
func TierFor(rating int) models.Tier {
	switch {
	case rating >= 1600:
		return models.TierPlatinum
	case rating >= 1400:
		return models.TierGold
	case rating >= 1200:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

// actualScores maps the two final scores to the (S_a, S_b) pair:
// strictly greater score wins (1/0), equal scores draw (0.5/0.5).
func actualScores(scoreA, scoreB int) (float64, float64) {
	switch {
	case scoreA > scoreB:
		return 1, 0
	case scoreA < scoreB:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// Apply computes both teams' post-match state from their current snapshots
// and the final scores. Per team: rating and tier are recomputed, exactly one
// of wins/losses/draws is incremented, goalsFor gains the team's own score and
// goalsAgainst the opponent's.
func Apply(teamA, teamB TeamSnapshot, scoreA, scoreB int) (Delta, Delta) {
	sa, sb := actualScores(scoreA, scoreB)

	ra := NewRating(teamA.Rating, teamB.Rating, sa)
	rb := NewRating(teamB.Rating, teamA.Rating, sb)

	deltaA := Delta{
		Rating:       ra,
		Tier:         TierFor(ra),
		Wins:         teamA.Wins,
		Losses:       teamA.Losses,
		Draws:        teamA.Draws,
		GoalsFor:     teamA.GoalsFor + scoreA,
		GoalsAgainst: teamA.GoalsAgainst + scoreB,
	}
	deltaB := Delta{
		Rating:       rb,
		Tier:         TierFor(rb),
		Wins:         teamB.Wins,
		Losses:       teamB.Losses,
		Draws:        teamB.Draws,
		GoalsFor:     teamB.GoalsFor + scoreB,
		GoalsAgainst: teamB.GoalsAgainst + scoreA,
	}

	switch {
	case sa == 1:
		deltaA.Wins++
		deltaB.Losses++
	case sb == 1:
		deltaB.Wins++
		deltaA.Losses++
	default:
		deltaA.Draws++
		deltaB.Draws++
	}

	return deltaA, deltaB
}
