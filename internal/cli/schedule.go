package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cfb-tracker/internal/cfbd"
	"github.com/pfrederiksen/cfb-tracker/internal/config"
	"github.com/pfrederiksen/cfb-tracker/internal/game"
	"github.com/pfrederiksen/cfb-tracker/internal/schedule"
	"github.com/pfrederiksen/cfb-tracker/internal/storage"
)

var (
	flagScheduleTeams       []string
	flagScheduleConferences []string
	flagScheduleWeek        int
	flagScheduleThisWeek    bool
	flagScheduleUpcoming    bool
	flagScheduleLimit       int
	flagScheduleFormat      string
	flagScheduleSort        string
	flagScheduleOffline     bool
	flagScheduleSeason      int
)

// timeNow is replaced in tests.
var timeNow = time.Now

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the schedule for tracked teams",
		Long: `Show games for the tracked teams and conferences, or for the teams and
conferences given as flags.

Examples:
  cfb-tracker schedule --team Michigan
  cfb-tracker schedule --conference SEC --week 5
  cfb-tracker schedule --this-week
  cfb-tracker schedule --upcoming --limit 5 --format json`,
		Args: cobra.NoArgs,
		RunE: runSchedule,
	}

	cmd.Flags().StringSliceVarP(&flagScheduleTeams, "team", "t", nil, "Team to show (repeatable)")
	cmd.Flags().StringSliceVarP(&flagScheduleConferences, "conference", "c", nil, "Conference to show (repeatable)")
	cmd.Flags().IntVarP(&flagScheduleWeek, "week", "w", 0, "Only show games in this week")
	cmd.Flags().BoolVar(&flagScheduleThisWeek, "this-week", false, "Only show games in the current week")
	cmd.Flags().BoolVar(&flagScheduleUpcoming, "upcoming", false, "Only show games that have not been played")
	cmd.Flags().IntVarP(&flagScheduleLimit, "limit", "n", 20, "Maximum number of games to show (0 for all)")
	cmd.Flags().StringVar(&flagScheduleFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagScheduleSort, "sort", "date", "Sort order: date, week, or matchup")
	cmd.Flags().BoolVar(&flagScheduleOffline, "offline", false, "Read the last synced snapshot instead of the API")
	cmd.Flags().IntVar(&flagScheduleSeason, "season", 0, "Season year (default: configured season)")

	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagScheduleFormat)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(flagScheduleSort)
	if err != nil {
		return err
	}
	if flagScheduleWeek > 0 && flagScheduleThisWeek {
		return errors.New("--week and --this-week cannot be used together")
	}
	if flagScheduleThisWeek && flagScheduleOffline {
		return errors.New("--this-week needs the API and cannot be used with --offline")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	season := cfg.Season
	if flagScheduleSeason > 0 {
		season = flagScheduleSeason
	}

	teams, conferences := flagScheduleTeams, flagScheduleConferences
	if len(teams) == 0 && len(conferences) == 0 && !cfg.Tracked.TrackAllFBS {
		teams, conferences = cfg.Tracked.Teams, cfg.Tracked.Conferences
	}
	codes, err := resolveConferences(conferences)
	if err != nil {
		return err
	}
	conferences = config.ConferenceAliases(codes)

	var (
		games  []game.Game
		client *cfbd.Client
	)
	if flagScheduleOffline {
		store, err := storage.New(flagDataDir)
		if err != nil {
			return err
		}
		snap, err := store.LoadSnapshot(season)
		if err != nil {
			return err
		}
		if len(snap.Games) == 0 {
			return fmt.Errorf("no synced games for %d: run 'cfb-tracker sync' first", season)
		}
		games = storage.Games(snap)
	} else {
		client, err = requireClient(cfg, nil)
		if err != nil {
			return err
		}
		if games, err = schedule.FetchSeason(cmd.Context(), client, schedule.DefaultOptions(season)); err != nil {
			return err
		}
	}
	// A game is shown when it involves any listed team or conference.
	games = schedule.Select(games, teams, conferences)

	week := flagScheduleWeek
	if flagScheduleThisWeek {
		weeks, err := client.Calendar(cmd.Context(), season)
		if err != nil {
			return fmt.Errorf("fetching calendar: %w", err)
		}
		current, ok := cfbd.WeekAt(weeks, timeNow())
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No games this week (offseason).")
			return nil
		}
		week = current.Week
		games = filterSeasonType(games, game.SeasonType(current.SeasonType))
	}
	if week > 0 {
		games = filterWeek(games, week)
	}
	if flagScheduleUpcoming {
		games = filterUpcoming(games, timeNow())
	}

	sortGames(games, order)

	result := &ScheduleResult{Season: season, Total: len(games), Games: games}
	if flagScheduleLimit > 0 && len(games) > flagScheduleLimit {
		result.Games = games[:flagScheduleLimit]
	}
	if result.Games == nil {
		result.Games = []game.Game{}
	}
	return WriteSchedule(cmd.OutOrStdout(), result, format)
}

func filterWeek(games []game.Game, week int) []game.Game {
	var out []game.Game
	for _, g := range games {
		if g.Week == week {
			out = append(out, g)
		}
	}
	return out
}

func filterSeasonType(games []game.Game, seasonType game.SeasonType) []game.Game {
	if seasonType == "" {
		return games
	}
	var out []game.Game
	for _, g := range games {
		if g.SeasonType == seasonType {
			out = append(out, g)
		}
	}
	return out
}

// filterUpcoming keeps games without a final score that have not kicked off.
// Undated games are kept.
func filterUpcoming(games []game.Game, now time.Time) []game.Game {
	var out []game.Game
	for _, g := range games {
		if g.IsCompleted() {
			continue
		}
		if g.StartDate != nil && g.StartDate.Before(now) {
			continue
		}
		out = append(out, g)
	}
	return out
}
