package game

import (
	"fmt"
	"strings"
	"time"
)

// SeasonType is the portion of a season a game belongs to
type SeasonType string

const (
	Regular    SeasonType = "regular"
	Postseason SeasonType = "postseason"
)

// Title returns the season type with an upper-case first letter ("Regular").
func (s SeasonType) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Game represents one scheduled college-football game.
//
// A Game is built once by Normalize. Broadcast and venue details arrive from
// secondary fetches and are attached with WithBroadcast and WithVenue, which
// return modified copies.
type Game struct {
	ID         int        `json:"id"`
	Season     int        `json:"season"`
	Week       int        `json:"week"`
	SeasonType SeasonType `json:"season_type"`

	StartDate    *time.Time `json:"start_date,omitempty"`
	StartTimeTBD bool       `json:"start_time_tbd"`

	NeutralSite    bool `json:"neutral_site"`
	ConferenceGame bool `json:"conference_game"`

	HomeTeam       string  `json:"home_team"`
	HomeConference *string `json:"home_conference,omitempty"`
	HomePoints     *int    `json:"home_points,omitempty"`

	AwayTeam       string  `json:"away_team"`
	AwayConference *string `json:"away_conference,omitempty"`
	AwayPoints     *int    `json:"away_points,omitempty"`

	VenueID    *int    `json:"venue_id,omitempty"`
	Venue      *string `json:"venue,omitempty"`
	VenueCity  *string `json:"venue_city,omitempty"`
	VenueState *string `json:"venue_state,omitempty"`

	TVNetwork *string `json:"tv_network,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// IsCompleted reports whether both final scores are present.
// A game with only one score is treated as not completed.
func (g Game) IsCompleted() bool {
	return g.HomePoints != nil && g.AwayPoints != nil
}

// Matchup returns "{away} @ {home}".
func (g Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

// Location returns "venue - city, state" built from whichever parts are
// known, or nil when none are.
func (g Game) Location() *string {
	parts := make([]string, 0, 2)
	if g.Venue != nil {
		parts = append(parts, *g.Venue)
	}
	if g.VenueCity != nil {
		cityState := *g.VenueCity
		if g.VenueState != nil {
			cityState += ", " + *g.VenueState
		}
		parts = append(parts, cityState)
	}
	if len(parts) == 0 {
		return nil
	}
	loc := strings.Join(parts, " - ")
	return &loc
}

// InvolvesTeam reports whether team matches either side (see TeamMatches).
func (g Game) InvolvesTeam(team string) bool {
	return TeamMatches(team, g.HomeTeam) || TeamMatches(team, g.AwayTeam)
}

// InvolvesConference reports whether either side's conference equals
// conference, ignoring case.
func (g Game) InvolvesConference(conference string) bool {
	return (g.HomeConference != nil && ConferenceMatches(conference, *g.HomeConference)) ||
		(g.AwayConference != nil && ConferenceMatches(conference, *g.AwayConference))
}

// WithBroadcast returns a copy of g carrying the TV network.
// An empty network leaves the copy without one.
func (g Game) WithBroadcast(network string) Game {
	g.TVNetwork = optional(network)
	return g
}

// WithVenue returns a copy of g with the venue city and state set.
// Empty values leave the corresponding field absent.
func (g Game) WithVenue(city, state string) Game {
	g.VenueCity = optional(city)
	g.VenueState = optional(state)
	return g
}

// optional returns a pointer to the trimmed string, or nil if it is blank.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
