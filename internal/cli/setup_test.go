package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cfb-tracker/internal/config"
)

func loadTestConfig(t *testing.T, env testEnv) *config.Config {
	t.Helper()
	cfg, err := config.Load(env.configPath)
	require.NoError(t, err)
	return cfg
}

func TestInit(t *testing.T) {
	env := setupEnv(t, "")

	out, err := env.run(t, "init", "--api-key", "test-key", "--season", "2025",
		"--team", "michigan", "--team", "Hogwarts", "--conference", "big ten")
	require.NoError(t, err)

	assert.Contains(t, out, "Testing API key... valid")
	assert.Contains(t, out, "+ Michigan")
	assert.Contains(t, out, "'Hogwarts' not found")
	assert.Contains(t, out, "+ B1G")

	cfg := loadTestConfig(t, env)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 2025, cfg.Season)
	assert.Equal(t, []string{"Michigan"}, cfg.Tracked.Teams)
	assert.Equal(t, []string{"B1G"}, cfg.Tracked.Conferences)

	info, err := os.Stat(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestInit_InvalidKey(t *testing.T) {
	env := setupEnv(t, "")

	out, err := env.run(t, "init", "--api-key", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API key")
	assert.Contains(t, out, "invalid")
	assert.NoFileExists(t, env.configPath)
}

func TestInit_KeyAlreadyConfigured(t *testing.T) {
	env := setupEnv(t, "api_key: test-key\n")

	out, err := env.run(t, "init", "--api-key", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "Use --force")
	assert.Equal(t, "test-key", loadTestConfig(t, env).APIKey)
}

func TestTrackAndUntrack(t *testing.T) {
	env := setupEnv(t, "api_key: test-key\nseason: 2025\n")

	out, err := env.run(t, "track", "michigan")
	require.NoError(t, err)
	assert.Contains(t, out, "Now tracking Michigan")

	out, err = env.run(t, "track", "Wolverines")
	require.NoError(t, err)
	assert.Contains(t, out, "Already tracking Michigan")

	out, err = env.run(t, "track", "--conference", "sec")
	require.NoError(t, err)
	assert.Contains(t, out, "Now tracking SEC (Southeastern Conference)")

	cfg := loadTestConfig(t, env)
	assert.Equal(t, []string{"Michigan"}, cfg.Tracked.Teams)
	assert.Equal(t, []string{"SEC"}, cfg.Tracked.Conferences)
	assert.Equal(t, "test-key", cfg.APIKey)

	out, err = env.run(t, "untrack", "MICHIGAN")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped tracking MICHIGAN")

	out, err = env.run(t, "untrack", "-c", "sec")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped tracking SEC")

	out, err = env.run(t, "untrack", "Texas")
	require.NoError(t, err)
	assert.Contains(t, out, "Not currently tracking Texas")

	assert.True(t, loadTestConfig(t, env).Tracked.IsEmpty())
}

func TestTrack_Unknown(t *testing.T) {
	env := setupEnv(t, "api_key: test-key\n")

	_, err := env.run(t, "track", "Hogwarts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown team")

	_, err = env.run(t, "track", "--conference", "XFL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown conference")
}

func TestTeams(t *testing.T) {
	env := setupEnv(t, "api_key: test-key\n")

	out, err := env.run(t, "teams")
	require.NoError(t, err)
	assert.Contains(t, out, "Alabama")
	assert.Contains(t, out, "Ohio State")
	assert.NotContains(t, out, "Montana")
	assert.Contains(t, out, "Total: 4 teams")

	out, err = env.run(t, "teams", "--search", "mich")
	require.NoError(t, err)
	assert.Contains(t, out, "Teams matching 'mich'")
	assert.Contains(t, out, "Michigan State")
	assert.NotContains(t, out, "Alabama")
	assert.Contains(t, out, "Total: 2 teams")

	out, err = env.run(t, "teams", "--conference", "b1g")
	require.NoError(t, err)
	assert.Contains(t, out, "Ohio State")
	assert.NotContains(t, out, "Alabama")
	assert.Contains(t, out, "Total: 3 teams")

	out, err = env.run(t, "teams", "--classification", "fcs")
	require.NoError(t, err)
	assert.Contains(t, out, "Montana")
	assert.Contains(t, out, "Total: 1 teams")
}

func TestConferences(t *testing.T) {
	env := setupEnv(t, "")

	out, err := env.run(t, "conferences")
	require.NoError(t, err)
	assert.Contains(t, out, "ABBREVIATION")
	assert.Contains(t, out, "Big Ten Conference")
	assert.Contains(t, out, "Mid-American")
}

func TestStatus(t *testing.T) {
	env := setupEnv(t, trackedConfig)

	out, err := env.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key: Configured")
	assert.Contains(t, out, "Season: 2025")
	assert.Contains(t, out, "- Michigan")
	assert.Contains(t, out, "- SEC (Southeastern Conference)")
	assert.NotContains(t, out, "Last sync")

	_, err = env.run(t, "sync")
	require.NoError(t, err)

	out, err = env.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Last sync")
	assert.Contains(t, out, "(4 games)")
	assert.Contains(t, out, "cfb_michigan.ics")
}

func TestStatus_Unconfigured(t *testing.T) {
	env := setupEnv(t, "")

	out, err := env.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key: Not configured")
	assert.Contains(t, out, "Nothing configured")
}

func TestExport(t *testing.T) {
	env := setupEnv(t, trackedConfig)

	out, err := env.run(t, "export")
	require.NoError(t, err)

	var data ExportData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, 2025, data.Season)
	assert.Equal(t, []string{"Michigan"}, data.Tracked.Teams)
	assert.NotContains(t, out, "test-key")

	path := filepath.Join(t.TempDir(), "tracking.json")
	out, err = env.run(t, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to")
	assert.FileExists(t, path)
}

func TestLogFormat_Invalid(t *testing.T) {
	env := setupEnv(t, "")

	_, err := env.run(t, "status", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}
