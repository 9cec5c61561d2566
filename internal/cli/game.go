package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cfb-tracker/internal/calendar"
	"github.com/pfrederiksen/cfb-tracker/internal/storage"
)

var (
	flagGameSeason int
	flagGameFormat string
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game ID",
		Short: "Show one synced game",
		Long:  "Show the details of a game from the last sync, including its calendar UID.",
		Args:  cobra.ExactArgs(1),
		RunE:  runGame,
	}

	cmd.Flags().IntVar(&flagGameSeason, "season", 0, "Season year (default: configured season)")
	cmd.Flags().StringVar(&flagGameFormat, "format", "text", "Output format: text or json")

	return cmd
}

func runGame(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid game ID: %s", args[0])
	}
	format, err := parseFormat(flagGameFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	season := cfg.Season
	if flagGameSeason > 0 {
		season = flagGameSeason
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return err
	}
	g, err := store.GetGameByID(season, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == FormatJSON {
		return writeJSON(out, g)
	}

	fmt.Fprintf(out, "%s\n", calendar.Summary(*g))
	fmt.Fprintf(out, "  ID:      %d\n", g.ID)
	fmt.Fprintf(out, "  Week:    %s (%d %s)\n", formatWeek(*g), g.Season, g.SeasonType.Title())
	fmt.Fprintf(out, "  Kickoff: %s\n", formatDate(*g))
	if loc := g.Location(); loc != nil {
		fmt.Fprintf(out, "  Venue:   %s\n", *loc)
	}
	if g.TVNetwork != nil {
		fmt.Fprintf(out, "  TV:      %s\n", *g.TVNetwork)
	}
	if g.IsCompleted() {
		fmt.Fprintf(out, "  Final:   %s\n", formatScore(*g))
	}
	fmt.Fprintf(out, "  UID:     %s\n", calendar.EventUID(g.Season, g.ID))
	return nil
}
