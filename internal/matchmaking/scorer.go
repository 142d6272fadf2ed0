// Package matchmaking scores candidate opponents for a team and produces a
// ranked shortlist. Pure computation: the handler loads the team population,
// this package ranks it.
package matchmaking

import (
	"sort"

	"github.com/devanshm/turfbook/internal/models"
)

// MaxSuggestions caps the shortlist returned by Suggest.
const MaxSuggestions = 6

// Suggestion pairs a candidate opponent with its compatibility score.
type Suggestion struct {
	Team  models.Team `json:"team"`
	Score float64     `json:"score"`
}

// Score rates how suitable opponent is for team:
//   - rating proximity contributes up to 100 points, losing one point per
//     10 rating difference and bottoming out at 0
//   - matching location adds 50
//   - matching preferred turf type adds 30; two teams that both left the
//     preference unset also count as matching
func Score(team, opponent models.Team) float64 {
	diff := team.Rating - opponent.Rating
	if diff < 0 {
		diff = -diff
	}
	eloScore := 100 - float64(diff)/10
	if eloScore < 0 {
		eloScore = 0
	}

	var locationScore float64
	if team.Location == opponent.Location {
		locationScore = 50
	}

	var turfTypeScore float64
	if sameTurfPreference(team.PreferredTurfType, opponent.PreferredTurfType) {
		turfTypeScore = 30
	}

	return eloScore + locationScore + turfTypeScore
}

// sameTurfPreference reports whether two turf-type preferences match: both
// unset counts as a match, one-sided preferences do not.
func sameTurfPreference(a, b *models.TurfType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Suggest ranks every candidate by Score, descending, and returns the top
// MaxSuggestions. The requesting team itself is excluded. Ties keep the
// candidates' input order (stable sort) since no secondary key is defined.
func Suggest(team models.Team, candidates []models.Team) []Suggestion {
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == team.ID {
			continue
		}
		suggestions = append(suggestions, Suggestion{Team: c, Score: Score(team, c)})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}
