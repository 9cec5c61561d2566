package game

import (
	"time"
)

// Snapshot represents the games of one season as seen by a sync run
type Snapshot struct {
	Season    int          `json:"season"`
	Games     map[int]Game `json:"games"`      // keyed by Game.ID
	UpdatedAt string       `json:"updated_at"` // RFC3339 timestamp
}

// NewSnapshot creates an empty snapshot for a season
func NewSnapshot(season int) *Snapshot {
	return &Snapshot{
		Season: season,
		Games:  make(map[int]Game),
	}
}

// CreateSnapshot creates a snapshot from a list of games.
// Later duplicates of an ID replace earlier ones.
func CreateSnapshot(season int, games []Game, updatedAt time.Time) *Snapshot {
	snap := NewSnapshot(season)
	snap.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	for _, g := range games {
		snap.Games[g.ID] = g
	}
	return snap
}

// DiffResult contains the results of comparing a sync against the previous one
type DiffResult struct {
	NewGames    []Game `json:"new_games"`
	Rescheduled []Game `json:"rescheduled"`
	Final       []Game `json:"final"`
}

// IsEmpty reports whether nothing changed.
func (d *DiffResult) IsEmpty() bool {
	return len(d.NewGames) == 0 && len(d.Rescheduled) == 0 && len(d.Final) == 0
}

// Diff compares current games against a previous snapshot.
//
//   - NewGames: IDs absent from the previous snapshot
//   - Rescheduled: start date or TBD flag changed
//   - Final: completed now but not before
//
// A nil previous snapshot reports every game as new. Results keep the order of
// current.
func Diff(previous *Snapshot, current []Game) *DiffResult {
	result := &DiffResult{
		NewGames:    make([]Game, 0),
		Rescheduled: make([]Game, 0),
		Final:       make([]Game, 0),
	}

	if previous == nil {
		previous = NewSnapshot(0)
	}

	for _, g := range current {
		old, exists := previous.Games[g.ID]
		if !exists {
			result.NewGames = append(result.NewGames, g)
			continue
		}

		if !sameStart(old, g) {
			result.Rescheduled = append(result.Rescheduled, g)
		}
		if g.IsCompleted() && !old.IsCompleted() {
			result.Final = append(result.Final, g)
		}
	}

	return result
}

func sameStart(a, b Game) bool {
	if a.StartTimeTBD != b.StartTimeTBD {
		return false
	}
	switch {
	case a.StartDate == nil && b.StartDate == nil:
		return true
	case a.StartDate == nil || b.StartDate == nil:
		return false
	default:
		return a.StartDate.Equal(*b.StartDate)
	}
}
