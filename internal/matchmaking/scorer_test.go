package matchmaking

import (
	"fmt"
	"testing"

	"github.com/devanshm/turfbook/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func team(name, location string, turfType *models.TurfType, rating int) models.Team {
	return models.Team{
		ID:                uuid.New(),
		Name:              name,
		Location:          location,
		PreferredTurfType: turfType,
		Rating:            rating,
	}
}

func turfType(t models.TurfType) *models.TurfType { return &t }

func TestScore(t *testing.T) {
	five := turfType(models.TurfTypeFiveASide)
	seven := turfType(models.TurfTypeSevenASide)

	me := team("Strikers", "Pune", five, 1300)

	t.Run("identical profile scores 180", func(t *testing.T) {
		twin := team("Mirrors", "Pune", five, 1300)
		assert.Equal(t, 180.0, Score(me, twin))
	})

	t.Run("rating gap of 1000 zeroes the elo component", func(t *testing.T) {
		distant := team("Galacticos", "Mumbai", seven, 2300)
		assert.Equal(t, 0.0, Score(me, distant))
	})

	t.Run("elo component floors at zero rather than going negative", func(t *testing.T) {
		distant := team("Galacticos", "Pune", five, 2800)
		assert.Equal(t, 80.0, Score(me, distant)) // 0 + 50 + 30
	})

	t.Run("rating difference is symmetric", func(t *testing.T) {
		weaker := team("Rookies", "Mumbai", seven, 1100)
		stronger := team("Veterans", "Mumbai", seven, 1500)
		assert.Equal(t, Score(me, weaker), Score(me, stronger)) // both |diff| = 200
	})

	t.Run("one-sided turf preference earns nothing", func(t *testing.T) {
		noPref := team("Wanderers", "Pune", nil, 1300)
		assert.Equal(t, 150.0, Score(me, noPref))
	})

	t.Run("both sides without a preference still match on turf type", func(t *testing.T) {
		a := team("Casuals", "Pune", nil, 1300)
		b := team("Drifters", "Pune", nil, 1300)
		assert.Equal(t, 180.0, Score(a, b))
	})
}

func TestSuggest(t *testing.T) {
	five := turfType(models.TurfTypeFiveASide)
	me := team("Strikers", "Pune", five, 1300)

	t.Run("ranked descending, own team excluded", func(t *testing.T) {
		twin := team("Mirrors", "Pune", five, 1300)
		near := team("Neighbours", "Pune", nil, 1350)
		far := team("Outsiders", "Delhi", nil, 2400)

		got := Suggest(me, []models.Team{far, me, near, twin})
		require.Len(t, got, 3)
		assert.Equal(t, "Mirrors", got[0].Team.Name)
		assert.Equal(t, 180.0, got[0].Score)
		assert.Equal(t, "Neighbours", got[1].Team.Name)
		assert.Equal(t, 145.0, got[1].Score)
		assert.Equal(t, "Outsiders", got[2].Team.Name)
		assert.Equal(t, 0.0, got[2].Score)
	})

	t.Run("caps at six suggestions", func(t *testing.T) {
		var pool []models.Team
		for i := 0; i < 10; i++ {
			pool = append(pool, team(fmt.Sprintf("Team %d", i), "Pune", nil, 1200+i*10))
		}
		got := Suggest(me, pool)
		assert.Len(t, got, MaxSuggestions)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		first := team("First", "Pune", nil, 1250)
		second := team("Second", "Pune", nil, 1350)

		got := Suggest(me, []models.Team{first, second})
		require.Len(t, got, 2)
		// Both are |diff|=50 in the same location: identical 145.0 totals.
		assert.Equal(t, got[0].Score, got[1].Score)
		assert.Equal(t, "First", got[0].Team.Name)
		assert.Equal(t, "Second", got[1].Team.Name)
	})
}
