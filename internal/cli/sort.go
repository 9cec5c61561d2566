package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate    SortOrder = "date"
	SortByWeek    SortOrder = "week"
	SortByMatchup SortOrder = "matchup"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(s)); order {
	case SortByDate, SortByWeek, SortByMatchup:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'date', 'week', or 'matchup')", s)
}

// sortGames sorts games in place based on the specified sort order
func sortGames(games []game.Game, order SortOrder) {
	switch order {
	case SortByDate:
		game.Sort(games)
	case SortByWeek:
		sort.SliceStable(games, func(i, j int) bool {
			if rank(games[i]) != rank(games[j]) {
				return rank(games[i]) < rank(games[j])
			}
			if games[i].Week != games[j].Week {
				return games[i].Week < games[j].Week
			}
			return game.Less(games[i], games[j])
		})
	case SortByMatchup:
		sort.SliceStable(games, func(i, j int) bool {
			a, b := strings.ToLower(games[i].Matchup()), strings.ToLower(games[j].Matchup())
			if a != b {
				return a < b
			}
			return game.Less(games[i], games[j])
		})
	}
}

// rank puts the regular season ahead of the postseason
func rank(g game.Game) int {
	if g.SeasonType == game.Postseason {
		return 1
	}
	return 0
}
