package game

import (
	"strings"

	"github.com/pfrederiksen/cfb-tracker/internal/logger"
)

// Normalize converts one upstream record into a Game. It never fails:
//   - an unparsable startDate becomes an absent StartDate (logged as a warning)
//   - a missing season falls back to fallbackSeason
//   - a missing season type becomes Regular; enum objects are reduced to their string
//   - blank optional strings become absent
//
// Missing numbers and booleans keep their zero values (week 0, false flags).
func Normalize(raw RawGame, fallbackSeason int) Game {
	g := Game{
		ID:             raw.ID,
		Season:         raw.Season,
		Week:           raw.Week,
		SeasonType:     normalizeSeasonType(raw.SeasonType),
		StartTimeTBD:   raw.StartTimeTBD,
		NeutralSite:    raw.NeutralSite,
		ConferenceGame: raw.ConferenceGame,
		HomeTeam:       strings.TrimSpace(raw.HomeTeam),
		HomeConference: optionalPtr(raw.HomeConference),
		HomePoints:     raw.HomePoints,
		AwayTeam:       strings.TrimSpace(raw.AwayTeam),
		AwayConference: optionalPtr(raw.AwayConference),
		AwayPoints:     raw.AwayPoints,
		VenueID:        raw.VenueID,
		Venue:          optionalPtr(raw.Venue),
		Notes:          optionalPtr(raw.Notes),
	}

	if g.Season == 0 {
		g.Season = fallbackSeason
	}

	if raw.StartDate != nil && strings.TrimSpace(*raw.StartDate) != "" {
		start, err := ParseStartDate(*raw.StartDate)
		if err != nil {
			logger.Warn("Could not parse game start date", logger.Fields{
				"game_id":    raw.ID,
				"start_date": *raw.StartDate,
			})
		} else {
			g.StartDate = &start
		}
	}

	return g
}

// NormalizeAll normalizes every record in order.
func NormalizeAll(raws []RawGame, fallbackSeason int) []Game {
	games := make([]Game, 0, len(raws))
	for _, raw := range raws {
		games = append(games, Normalize(raw, fallbackSeason))
	}
	return games
}

func normalizeSeasonType(v EnumString) SeasonType {
	s := strings.ToLower(strings.TrimSpace(string(v)))
	if s == "" {
		return Regular
	}
	return SeasonType(s)
}

func optionalPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return optional(*p)
}
