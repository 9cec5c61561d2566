package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestNew_ExpandsHomeAndCreatesDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/.local/share/cfb-tracker")
	require.NoError(t, err)

	want := filepath.Join(home, ".local", "share", "cfb-tracker")
	assert.Equal(t, want, s.DataDir())
	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadSnapshot_Missing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	snap, err := s.LoadSnapshot(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, snap.Season)
	assert.Empty(t, snap.Games)
}

func TestLoadSnapshot_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot_2025.json"), []byte("{not json"), 0644))

	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.LoadSnapshot(2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing snapshot")
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	kickoff := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	games := []game.Game{
		{ID: 2, Season: 2025, Week: 14, StartDate: timePtr(kickoff), HomeTeam: "Michigan", AwayTeam: "Ohio State"},
		{ID: 1, Season: 2025, Week: 15, HomeTeam: "Army", AwayTeam: "Navy"},
	}
	require.NoError(t, s.CreateSnapshotFromGames(2025, games))

	_, err = os.Stat(filepath.Join(dir, "snapshot_2025.json"))
	require.NoError(t, err)

	snap, err := s.LoadSnapshot(2025)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.UpdatedAt)
	require.Len(t, snap.Games, 2)
	assert.True(t, snap.Games[2].StartDate.Equal(kickoff))

	other, err := s.LoadSnapshot(2024)
	require.NoError(t, err)
	assert.Empty(t, other.Games, "seasons are stored separately")

	sorted := Games(snap)
	assert.Equal(t, 2, sorted[0].ID)
	assert.Equal(t, 1, sorted[1].ID)
}

func TestGetGameByID(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.CreateSnapshotFromGames(2025, []game.Game{{ID: 7, HomeTeam: "Army", AwayTeam: "Navy"}}))

	tests := []struct {
		name    string
		id      int
		wantErr bool
	}{
		{"found", 7, false},
		{"missing", 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := s.GetGameByID(2025, tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Navy @ Army", g.Matchup())
		})
	}
}
