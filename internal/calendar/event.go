package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

// GameDuration is the length given to every timed event; upstream never
// supplies an end time.
const GameDuration = 4 * time.Hour

// UIDDomain is the right-hand side of every event UID.
const UIDDomain = "cfb-tracker"

var uidNamespace = uuid.MustParse("6f1c3a8e-2b4d-5e9f-8a7c-1d2e3f4a5b6c")

// Settings controls what goes into generated calendars
type Settings struct {
	IncludeTVInfo   bool   `koanf:"include_tv_info"`
	IncludeVenue    bool   `koanf:"include_venue"`
	ReminderMinutes int    `koanf:"reminder_minutes"`
	CalendarName    string `koanf:"calendar_name"`
	OutputDir       string `koanf:"output_dir"`
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		IncludeTVInfo:   true,
		IncludeVenue:    true,
		ReminderMinutes: 60,
		CalendarName:    "CFB Schedule",
		OutputDir:       "~/.local/share/cfb-tracker/calendars",
	}
}

// Event is one calendar entry derived from a game.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    *string
	Categories  []string

	// Start and End are instants for timed events. For all-day events they
	// are midnights in game.DefaultLocation and End is the following day.
	Start  time.Time
	End    time.Time
	AllDay bool

	// Reminder is a negative offset from Start, or nil for no alarm.
	Reminder     *time.Duration
	ReminderText string

	Created time.Time
	Stamp   time.Time
}

// EventUID returns the stable calendar UID for a game. It depends only on
// season and id.
func EventUID(season, id int) string {
	name := fmt.Sprintf("cfb-%d-%d", season, id)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + UIDDomain
}

// NewEvent builds the calendar event for g. It returns false when g has no
// start date. now stamps the Created and Stamp fields.
func NewEvent(g game.Game, settings Settings, now time.Time) (Event, bool) {
	if g.StartDate == nil {
		return Event{}, false
	}

	evt := Event{
		UID:         EventUID(g.Season, g.ID),
		Summary:     Summary(g),
		Description: Description(g, settings.IncludeTVInfo),
		Categories:  Categories(g),
		Created:     now,
		Stamp:       now,
	}

	if g.StartTimeTBD {
		local := g.StartDate.In(game.DefaultLocation)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, game.DefaultLocation)
		evt.Start = day
		evt.End = day.AddDate(0, 0, 1)
		evt.AllDay = true
	} else {
		evt.Start = *g.StartDate
		evt.End = g.StartDate.Add(GameDuration)
	}

	if settings.IncludeVenue {
		evt.Location = g.Location()
	}

	if settings.ReminderMinutes > 0 && !g.StartTimeTBD {
		offset := -time.Duration(settings.ReminderMinutes) * time.Minute
		evt.Reminder = &offset
		evt.ReminderText = "Game starting soon: " + g.Matchup()
	}

	return evt, true
}

// Synthesize builds events for games in order, skipping undated games.
func Synthesize(games []game.Game, settings Settings, now time.Time) []Event {
	events := make([]Event, 0, len(games))
	for _, g := range games {
		if evt, ok := NewEvent(g, settings, now); ok {
			events = append(events, evt)
		}
	}
	return events
}

// Summary returns "{notes}: {away} @ {home}", or just the matchup without notes.
func Summary(g game.Game) string {
	if g.Notes != nil {
		return *g.Notes + ": " + g.Matchup()
	}
	return g.Matchup()
}

// Description returns the event body. Parts are joined by single spaces and
// each trailing section starts on a new line:
//
//	Conference Game Ohio State (Big Ten) at Michigan (Big Ten)
//	TV: ABC
//	Week 1 - 2025 Regular
//	Final: Ohio State 21 - Michigan 28
func Description(g game.Game, includeTV bool) string {
	var parts []string

	if g.ConferenceGame {
		parts = append(parts, "Conference Game")
	}
	if g.NeutralSite {
		parts = append(parts, "Neutral Site")
	}

	parts = append(parts, sideLabel(g.AwayTeam, g.AwayConference), "at", sideLabel(g.HomeTeam, g.HomeConference))

	if includeTV && g.TVNetwork != nil {
		parts = append(parts, "\nTV: "+*g.TVNetwork)
	}

	parts = append(parts, fmt.Sprintf("\nWeek %d - %d %s", g.Week, g.Season, g.SeasonType.Title()))

	if g.IsCompleted() {
		parts = append(parts, fmt.Sprintf("\nFinal: %s %d - %s %d", g.AwayTeam, *g.AwayPoints, g.HomeTeam, *g.HomePoints))
	}

	return strings.Join(parts, " ")
}

// Categories returns the event's tags.
func Categories(g game.Game) []string {
	categories := []string{"College Football", "CFB"}
	if g.ConferenceGame {
		categories = append(categories, "Conference")
	}
	if g.SeasonType == game.Postseason {
		categories = append(categories, "Bowl Game")
	}
	return categories
}

func sideLabel(team string, conference *string) string {
	if conference == nil {
		return team
	}
	return fmt.Sprintf("%s (%s)", team, *conference)
}
