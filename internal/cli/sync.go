package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cfb-tracker/internal/calendar"
	"github.com/pfrederiksen/cfb-tracker/internal/cfbd"
	"github.com/pfrederiksen/cfb-tracker/internal/config"
	"github.com/pfrederiksen/cfb-tracker/internal/game"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
	"github.com/pfrederiksen/cfb-tracker/internal/notifier"
	"github.com/pfrederiksen/cfb-tracker/internal/schedule"
	"github.com/pfrederiksen/cfb-tracker/internal/storage"
)

var (
	flagSyncTeams       []string
	flagSyncConferences []string
	flagSyncAllFBS      bool
	flagSyncSeason      int
	flagSyncFormat      string
	flagSyncNotify      bool
	flagSyncDryRun      bool
)

// syncTarget is what a sync run writes calendars for.
type syncTarget struct {
	Season      int
	Teams       []string
	Conferences []string // conference codes
	TrackAll    bool
}

func (t syncTarget) isEmpty() bool {
	return !t.TrackAll && len(t.Teams) == 0 && len(t.Conferences) == 0
}

// targetFromConfig returns the tracked teams and conferences from cfg.
func targetFromConfig(cfg *config.Config) syncTarget {
	return syncTarget{
		Season:      cfg.Season,
		Teams:       cfg.Tracked.Teams,
		Conferences: cfg.Tracked.Conferences,
		TrackAll:    cfg.Tracked.TrackAllFBS,
	}
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the schedule and generate calendar files",
		Long: `Fetch the season from the College Football Data API and write one
calendar per tracked team and conference, plus a combined calendar.

Flags override the tracked teams and conferences for this run only.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}

	cmd.Flags().StringSliceVarP(&flagSyncTeams, "team", "t", nil, "Team to sync (repeatable)")
	cmd.Flags().StringSliceVarP(&flagSyncConferences, "conference", "c", nil, "Conference to sync (repeatable)")
	cmd.Flags().BoolVar(&flagSyncAllFBS, "all-fbs", false, "Sync every FBS game into the combined calendar")
	cmd.Flags().IntVar(&flagSyncSeason, "season", 0, "Season year (default: configured season)")
	cmd.Flags().StringVar(&flagSyncFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagSyncNotify, "notify", false, "Send a Telegram digest of schedule changes")
	cmd.Flags().BoolVar(&flagSyncDryRun, "dry-run-notify", false, "Print the change digest instead of sending it")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagSyncFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := requireClient(cfg, nil)
	if err != nil {
		return err
	}

	target := targetFromConfig(cfg)
	if len(flagSyncTeams) > 0 || len(flagSyncConferences) > 0 || flagSyncAllFBS {
		target = syncTarget{Season: cfg.Season, TrackAll: flagSyncAllFBS}
		if target.Teams, err = resolveTeams(cmd.Context(), client, flagSyncTeams); err != nil {
			return err
		}
		if target.Conferences, err = resolveConferences(flagSyncConferences); err != nil {
			return err
		}
	}
	if flagSyncSeason > 0 {
		target.Season = flagSyncSeason
	}

	if target.isEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to track. Use 'cfb-tracker track <team>' or pass --team, --conference or --all-fbs.")
		return nil
	}

	var n notifier.Notifier
	switch {
	case flagSyncDryRun:
		n = notifier.NewDryRunNotifier(cmd.ErrOrStderr())
	case flagSyncNotify:
		if n, err = newNotifier(cfg.Notify); err != nil {
			return err
		}
	}

	result, err := syncCalendars(cmd.Context(), client, cfg.Calendar, target, n, nil)
	if err != nil {
		return err
	}
	return WriteSync(cmd.OutOrStdout(), result, format, flagVerbose)
}

// syncCalendars fetches the full season once, writes every calendar for
// target and then records the season snapshot. A sync that writes no
// calendar leaves the previous snapshot in place. When n is set, changes are
// sent through it; the first sync of a season sends nothing.
func syncCalendars(ctx context.Context, src schedule.Source, settings calendar.Settings, target syncTarget, n notifier.Notifier, recorder *metrics.Recorder) (result *SyncResult, err error) {
	defer func() { recorder.RecordSync(err) }()

	opts := schedule.DefaultOptions(target.Season)
	opts.Metrics = recorder
	games, err := schedule.FetchSeason(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return nil, err
	}
	previous, err := store.LoadSnapshot(target.Season)
	if err != nil {
		return nil, err
	}
	changes := game.Diff(previous, games)

	if settings.OutputDir, err = config.ExpandPath(settings.OutputDir); err != nil {
		return nil, err
	}
	manager := calendar.NewManager(settings, recorder)

	conferences := config.ConferenceAliases(target.Conferences)
	written := manager.GenerateAll(games, target.Teams, conferences, !target.TrackAll)
	if target.TrackAll {
		w, err := manager.Write(settings.CalendarName, calendar.MasterFileName, games)
		if err != nil {
			logger.Error("Failed to write calendar", logger.Fields{"calendar": settings.CalendarName}, err)
		} else {
			written = append(written, w)
		}
	}

	if len(written) == 0 {
		return nil, errors.New("no calendars were written")
	}
	if err := store.CreateSnapshotFromGames(target.Season, games); err != nil {
		return nil, err
	}

	if n != nil && len(previous.Games) > 0 {
		if err := n.Notify(ctx, target.Season, changes); err != nil {
			logger.Warn("Failed to send change notification", logger.Fields{
				"season": target.Season,
				"error":  err.Error(),
			})
		}
	}

	logger.Info("Sync complete", logger.Fields{
		"season":    target.Season,
		"games":     len(games),
		"calendars": len(written),
		"new":       len(changes.NewGames),
	})

	return &SyncResult{
		SyncedAt:  time.Now().UTC(),
		Season:    target.Season,
		GameCount: len(games),
		Calendars: written,
		Changes:   changes,
	}, nil
}

// newNotifier builds the Telegram notifier from the notify settings.
func newNotifier(settings config.Notify) (notifier.Notifier, error) {
	if !settings.Enabled() {
		return nil, fmt.Errorf("notifications need notify.telegram_bot_token and notify.telegram_chat_id (or %s and %s)",
			config.TelegramTokenEnv, config.TelegramChatIDEnv)
	}
	t, err := notifier.NewTelegram(settings.TelegramBotToken, settings.TelegramChatID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func resolveTeams(ctx context.Context, client *cfbd.Client, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	teams, err := client.Teams(ctx, schedule.DefaultClassification)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	resolved := make([]string, 0, len(names))
	for _, name := range names {
		school, ok := cfbd.ResolveTeam(teams, name)
		if !ok {
			return nil, fmt.Errorf("unknown team: %s", name)
		}
		resolved = append(resolved, school)
	}
	return resolved, nil
}

func resolveConferences(names []string) ([]string, error) {
	codes := make([]string, 0, len(names))
	for _, name := range names {
		code, ok := config.ValidateConference(name)
		if !ok {
			return nil, fmt.Errorf("unknown conference: %s", name)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
