package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSort(t *testing.T) {
	sep6 := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	aug30 := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	games := []Game{
		{ID: 1, Week: 2, StartDate: timePtr(sep6)},
		{ID: 2, Week: 1, StartDate: timePtr(aug30)},
		{ID: 3, Week: 3},
	}

	Sort(games)

	assert.Equal(t, []int{2, 1, 3}, ids(games))
}

func TestSort_UndatedOrderedByWeek(t *testing.T) {
	aug30 := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	games := []Game{
		{ID: 1, Week: 5},
		{ID: 2, Week: 0, SeasonType: Postseason},
		{ID: 3, Week: 1, StartDate: timePtr(aug30)},
		{ID: 4, Week: 2},
	}

	Sort(games)

	assert.Equal(t, []int{3, 2, 4, 1}, ids(games))
}

func TestSort_SameKickoffByWeekThenInputOrder(t *testing.T) {
	kickoff := time.Date(2025, 9, 6, 16, 0, 0, 0, time.UTC)

	games := []Game{
		{ID: 1, Week: 2, StartDate: timePtr(kickoff)},
		{ID: 2, Week: 1, StartDate: timePtr(kickoff)},
		{ID: 3, Week: 2, StartDate: timePtr(kickoff)},
		{ID: 3, Week: 2, StartDate: timePtr(kickoff)}, // duplicate IDs pass through
	}

	Sort(games)

	assert.Equal(t, []int{2, 1, 3, 3}, ids(games))
}

func TestSort_EqualInstantsInDifferentZones(t *testing.T) {
	utc := time.Date(2025, 9, 6, 16, 0, 0, 0, time.UTC)
	eastern := utc.In(DefaultLocation)

	games := []Game{
		{ID: 1, Week: 2, StartDate: timePtr(eastern)},
		{ID: 2, Week: 1, StartDate: timePtr(utc)},
	}

	Sort(games)

	assert.Equal(t, []int{2, 1}, ids(games))
}

func ids(games []Game) []int {
	out := make([]int, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}
