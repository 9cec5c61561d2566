package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cfb-tracker/internal/config"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
	"github.com/pfrederiksen/cfb-tracker/internal/notifier"
	"github.com/pfrederiksen/cfb-tracker/internal/server"
)

var (
	flagServeAddr    string
	flagServeRefresh time.Duration
	flagServeSeason  int
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated calendars over HTTP",
		Long: `Serve the generated .ics files so calendar apps can subscribe to them.

With --refresh the tracked calendars are re-synced on that interval, and a
Telegram digest of changes is sent when notify settings are configured.
Endpoints: /calendars, /calendars/{name}.ics, /healthz, /metrics`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&flagServeAddr, "addr", ":8080", "Listen address")
	cmd.Flags().DurationVar(&flagServeRefresh, "refresh", 0, "Re-sync interval, e.g. 6h (0 disables)")
	cmd.Flags().IntVar(&flagServeSeason, "season", 0, "Season year to refresh (default: configured season)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outputDir, err := config.ExpandPath(cfg.Calendar.OutputDir)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	srv := server.New(outputDir, recorder)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagServeRefresh > 0 {
		target := targetFromConfig(cfg)
		if flagServeSeason > 0 {
			target.Season = flagServeSeason
		}
		if target.isEmpty() {
			return errors.New("nothing to track: configure teams or conferences before using --refresh")
		}
		client, err := requireClient(cfg, recorder)
		if err != nil {
			return err
		}

		var n notifier.Notifier
		if cfg.Notify.Enabled() {
			if n, err = newNotifier(cfg.Notify); err != nil {
				return err
			}
		}

		go srv.RunRefresh(ctx, flagServeRefresh, func(ctx context.Context) error {
			_, err := syncCalendars(ctx, client, cfg.Calendar, target, n, recorder)
			return err
		})
		logger.Info("Refreshing calendars periodically", logger.Fields{
			"interval": flagServeRefresh.String(),
			"season":   target.Season,
		})
	}

	return srv.ListenAndServe(ctx, flagServeAddr)
}
