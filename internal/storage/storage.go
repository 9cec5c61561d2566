package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pfrederiksen/cfb-tracker/internal/config"
	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

// Storage handles persistence of season snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	dataDir, err := config.ExpandPath(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// DataDir returns the expanded data directory
func (s *Storage) DataDir() string {
	return s.dataDir
}

// snapshotPath returns the path to a season's snapshot file
func (s *Storage) snapshotPath(season int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%d.json", season))
}

// LoadSnapshot loads a season snapshot from disk. A season that was never
// synced yields an empty snapshot.
func (s *Storage) LoadSnapshot(season int) (*game.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(season))
	if err != nil {
		if os.IsNotExist(err) {
			return game.NewSnapshot(season), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot game.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snapshot.Games == nil {
		snapshot.Games = make(map[int]game.Game)
	}
	if snapshot.Season == 0 {
		snapshot.Season = season
	}

	return &snapshot, nil
}

// SaveSnapshot saves a snapshot to disk
func (s *Storage) SaveSnapshot(snapshot *game.Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(snapshot.Season), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// CreateSnapshotFromGames creates and saves a snapshot from a list of games
func (s *Storage) CreateSnapshotFromGames(season int, games []game.Game) error {
	return s.SaveSnapshot(game.CreateSnapshot(season, games, time.Now()))
}

// GetGameByID retrieves a game from a season's snapshot
func (s *Storage) GetGameByID(season, id int) (*game.Game, error) {
	snapshot, err := s.LoadSnapshot(season)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if g, exists := snapshot.Games[id]; exists {
		return &g, nil
	}

	return nil, fmt.Errorf("game not found: %d", id)
}

// Games returns the snapshot's games in schedule order.
func Games(snapshot *game.Snapshot) []game.Game {
	games := make([]game.Game, 0, len(snapshot.Games))
	for _, g := range snapshot.Games {
		games = append(games, g)
	}
	// map order is random; fix ties before the stable schedule sort
	sort.Slice(games, func(i, j int) bool {
		return games[i].ID < games[j].ID
	})
	game.Sort(games)
	return games
}
