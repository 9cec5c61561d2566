package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	kickoff := time.Date(2025, 9, 6, 16, 0, 0, 0, time.UTC)
	moved := kickoff.Add(3 * time.Hour)

	previous := CreateSnapshot(2025, []Game{
		{ID: 1, StartDate: timePtr(kickoff)},
		{ID: 2, StartDate: timePtr(kickoff)},
		{ID: 3, StartDate: timePtr(kickoff)},
		{ID: 4, StartDate: timePtr(kickoff), StartTimeTBD: true},
		{ID: 5},
	}, time.Now())

	current := []Game{
		{ID: 1, StartDate: timePtr(kickoff)},
		{ID: 2, StartDate: timePtr(moved)},
		{ID: 3, StartDate: timePtr(kickoff), HomePoints: intPtr(3), AwayPoints: intPtr(0)},
		{ID: 4, StartDate: timePtr(kickoff)}, // kickoff time announced
		{ID: 5, StartDate: timePtr(kickoff)}, // date announced
		{ID: 6},
	}

	diff := Diff(previous, current)

	assert.Equal(t, []int{6}, ids(diff.NewGames))
	assert.Equal(t, []int{2, 4, 5}, ids(diff.Rescheduled))
	assert.Equal(t, []int{3}, ids(diff.Final))
	assert.False(t, diff.IsEmpty())
}

func TestDiff_NilPrevious(t *testing.T) {
	diff := Diff(nil, []Game{{ID: 1}, {ID: 2}})

	assert.Equal(t, []int{1, 2}, ids(diff.NewGames))
	assert.Empty(t, diff.Rescheduled)
	assert.Empty(t, diff.Final)
}

func TestDiff_NoChanges(t *testing.T) {
	games := []Game{{ID: 1, Week: 1}}
	diff := Diff(CreateSnapshot(2025, games, time.Now()), games)

	assert.True(t, diff.IsEmpty())
}

func TestSnapshot_JSONKeys(t *testing.T) {
	snap := CreateSnapshot(2025, []Game{{ID: 42, HomeTeam: "Army", AwayTeam: "Navy"}}, time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2025-12-13T00:00:00Z", decoded.UpdatedAt)
	assert.Equal(t, "Navy @ Army", decoded.Games[42].Matchup())
}
