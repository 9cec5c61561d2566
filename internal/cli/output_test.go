package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cfb-tracker/internal/calendar"
	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }

func TestFormatDate(t *testing.T) {
	kickoff := time.Date(2025, 9, 6, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		g    game.Game
		want string
	}{
		{"timed", game.Game{StartDate: timePtr(kickoff)}, "Sat Sep 06 07:30PM"},
		{"time tbd", game.Game{StartDate: timePtr(time.Date(2025, 9, 6, 4, 0, 0, 0, time.UTC)), StartTimeTBD: true}, "Sat Sep 06 TBD"},
		{"undated", game.Game{}, "TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDate(tt.g))
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "", formatScore(game.Game{HomePoints: intPtr(21)}))
	assert.Equal(t, "14-21", formatScore(game.Game{HomePoints: intPtr(21), AwayPoints: intPtr(14)}))
}

func TestWriteSchedule_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, &ScheduleResult{Season: 2025}, FormatText))
	assert.Equal(t, "No games found matching criteria.\n", buf.String())
}

func TestWriteSync_VerboseListsChanges(t *testing.T) {
	result := &SyncResult{
		Season:    2025,
		GameCount: 2,
		Calendars: []calendar.Written{{Name: "Army Football Schedule", Path: "/tmp/cfb_army.ics", Events: 2}},
		Changes: &game.DiffResult{
			NewGames:    []game.Game{{ID: 1, HomeTeam: "Army", AwayTeam: "Navy"}},
			Rescheduled: []game.Game{},
			Final:       []game.Game{{ID: 2, HomeTeam: "Army", AwayTeam: "Air Force", HomePoints: intPtr(20), AwayPoints: intPtr(3)}},
		},
	}

	var quiet, verbose bytes.Buffer
	require.NoError(t, WriteSync(&quiet, result, FormatText, false))
	require.NoError(t, WriteSync(&verbose, result, FormatText, true))

	assert.Contains(t, quiet.String(), "Changes: 1 new, 0 rescheduled, 1 final")
	assert.NotContains(t, quiet.String(), "NEW: Navy @ Army")
	assert.Contains(t, verbose.String(), "NEW: Navy @ Army (TBD)")
	assert.Contains(t, verbose.String(), "FINAL: Air Force @ Army")
	assert.Contains(t, verbose.String(), "/tmp/cfb_army.ics (2 games)")
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteSchedule(&buf, &ScheduleResult{}, OutputFormat("xml")))
	assert.Error(t, WriteSync(&buf, &SyncResult{}, OutputFormat("xml"), false))
}
