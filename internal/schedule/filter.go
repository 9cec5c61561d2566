package schedule

import (
	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

// AttachBroadcasts returns games with TV networks attached from networks,
// keyed by game ID. Games without an entry keep whatever they had.
func AttachBroadcasts(games []game.Game, networks map[int]string) []game.Game {
	if len(networks) == 0 {
		return games
	}
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if network, ok := networks[g.ID]; ok {
			g = g.WithBroadcast(network)
		}
		out = append(out, g)
	}
	return out
}

// AttachVenues fills in venue city and state from the venue list, matched by
// venue ID. A game without a venue name also takes the venue's name.
func AttachVenues(games []game.Game, venues []game.RawVenue) []game.Game {
	if len(venues) == 0 {
		return games
	}
	byID := make(map[int]game.RawVenue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}

	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if g.VenueID != nil {
			if v, ok := byID[*g.VenueID]; ok {
				g = g.WithVenue(deref(v.City), deref(v.State))
				if g.Venue == nil && v.Name != nil && *v.Name != "" {
					name := *v.Name
					g.Venue = &name
				}
			}
		}
		out = append(out, g)
	}
	return out
}

// FilterTeams keeps games where any of teams matches either side.
// An empty team list keeps everything.
func FilterTeams(games []game.Game, teams []string) []game.Game {
	if len(teams) == 0 {
		return games
	}
	var out []game.Game
	for _, g := range games {
		if involvesAnyTeam(g, teams) {
			out = append(out, g)
		}
	}
	return out
}

// FilterConferences keeps games where either side's conference equals one of
// conferences, ignoring case. An empty list keeps everything.
func FilterConferences(games []game.Game, conferences []string) []game.Game {
	if len(conferences) == 0 {
		return games
	}
	var out []game.Game
	for _, g := range games {
		if involvesAnyConference(g, conferences) {
			out = append(out, g)
		}
	}
	return out
}

// Select keeps games that involve any of teams OR any of conferences. It
// backs the combined calendar, where tracking a team should not be narrowed
// by tracking a conference. With both lists empty it keeps everything.
func Select(games []game.Game, teams, conferences []string) []game.Game {
	if len(teams) == 0 && len(conferences) == 0 {
		return games
	}
	var out []game.Game
	for _, g := range games {
		if involvesAnyTeam(g, teams) || involvesAnyConference(g, conferences) {
			out = append(out, g)
		}
	}
	return out
}

func involvesAnyTeam(g game.Game, teams []string) bool {
	for _, team := range teams {
		if g.InvolvesTeam(team) {
			return true
		}
	}
	return false
}

func involvesAnyConference(g game.Game, conferences []string) bool {
	for _, conf := range conferences {
		if g.InvolvesConference(conf) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
