package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/cfb-tracker/internal/calendar"
	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func parseFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(s); format {
	case FormatText, FormatJSON:
		return format, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
}

// SyncResult describes one sync run
type SyncResult struct {
	SyncedAt  time.Time          `json:"synced_at"`
	Season    int                `json:"season"`
	GameCount int                `json:"game_count"`
	Calendars []calendar.Written `json:"calendars"`
	Changes   *game.DiffResult   `json:"changes"`
}

// ScheduleResult contains the games shown by the schedule command
type ScheduleResult struct {
	Season int         `json:"season"`
	Total  int         `json:"total"`
	Games  []game.Game `json:"games"`
}

// WriteSync writes the sync result in the specified format
func WriteSync(w io.Writer, result *SyncResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeSyncText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteSchedule writes the schedule in the specified format
func WriteSchedule(w io.Writer, result *ScheduleResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeScheduleText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeSyncText(w io.Writer, result *SyncResult, verbose bool) error {
	fmt.Fprintf(w, "Synced %d games for the %d season\n", result.GameCount, result.Season)

	if c := result.Changes; c != nil {
		if c.IsEmpty() {
			fmt.Fprintln(w, "No schedule changes since last sync.")
		} else {
			fmt.Fprintf(w, "Changes: %d new, %d rescheduled, %d final\n",
				len(c.NewGames), len(c.Rescheduled), len(c.Final))
			if verbose {
				writeChanges(w, "NEW", c.NewGames)
				writeChanges(w, "MOVED", c.Rescheduled)
				writeChanges(w, "FINAL", c.Final)
			}
		}
	}

	fmt.Fprintln(w, "\nGenerated calendars:")
	for _, cal := range result.Calendars {
		fmt.Fprintf(w, "  %s (%d games)\n", cal.Path, cal.Events)
	}

	fmt.Fprintln(w, "\nTo import into Google Calendar:")
	fmt.Fprintln(w, "  1. Open Google Calendar settings")
	fmt.Fprintln(w, "  2. Choose 'Import & export'")
	fmt.Fprintln(w, "  3. Select the .ics file and a destination calendar")
	return nil
}

func writeChanges(w io.Writer, label string, games []game.Game) {
	for _, g := range games {
		fmt.Fprintf(w, "  %s: %s (%s)\n", label, g.Matchup(), formatDate(g))
	}
}

func writeScheduleText(w io.Writer, result *ScheduleResult) error {
	if len(result.Games) == 0 {
		fmt.Fprintln(w, "No games found matching criteria.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tDATE\tMATCHUP\tTV\tSCORE")
	for _, g := range result.Games {
		tv := ""
		if g.TVNetwork != nil {
			tv = *g.TVNetwork
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", formatWeek(g), formatDate(g), g.Matchup(), tv, formatScore(g))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if result.Total > len(result.Games) {
		fmt.Fprintf(w, "\nShowing first %d of %d games. Use --limit to see more.\n", len(result.Games), result.Total)
	}
	return nil
}

func formatWeek(g game.Game) string {
	if g.SeasonType == game.Postseason {
		return "Bowl"
	}
	return strconv.Itoa(g.Week)
}

// formatDate renders the kickoff in Eastern time.
func formatDate(g game.Game) string {
	if g.StartDate == nil {
		return "TBD"
	}
	local := g.StartDate.In(game.DefaultLocation)
	if g.StartTimeTBD {
		return local.Format("Mon Jan 02") + " TBD"
	}
	return local.Format("Mon Jan 02 03:04PM")
}

func formatScore(g game.Game) string {
	if !g.IsCompleted() {
		return ""
	}
	return fmt.Sprintf("%d-%d", *g.AwayPoints, *g.HomePoints)
}
