package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cfb-tracker/internal/cfbd"
	"github.com/pfrederiksen/cfb-tracker/internal/config"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagDataDir   string
	flagVerbose   bool
	flagLogFormat string
)

// newClient builds the API client. Tests replace it to point at a fake API.
var newClient = func(apiKey string, recorder *metrics.Recorder) *cfbd.Client {
	return cfbd.NewClient(apiKey, cfbd.WithMetrics(recorder))
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfb-tracker",
		Short: "Track college football games on your calendar",
		Long: `A CLI tool that fetches college football schedules from the
College Football Data API and turns them into calendar (.ics) files.

Get started with: cfb-tracker init`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Config file path")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", config.DefaultDataDir, "Data directory for season snapshots")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(
		newInitCmd(),
		newTeamsCmd(),
		newConferencesCmd(),
		newTrackCmd(),
		newUntrackCmd(),
		newStatusCmd(),
		newSyncCmd(),
		newScheduleCmd(),
		newGameCmd(),
		newExportCmd(),
		newServeCmd(),
	)

	return cmd
}

// setupLogging installs the default logger. LOG_LEVEL picks the level and
// --verbose forces debug.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := logger.LevelInfo
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		parsed, err := logger.ParseLevel(env)
		if err != nil {
			return err
		}
		level = parsed
	}
	if flagVerbose {
		level = logger.LevelDebug
	}

	switch strings.ToLower(flagLogFormat) {
	case "text":
		logger.SetDefault(logger.NewText(level, cmd.ErrOrStderr()))
	case "json":
		logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	default:
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", flagLogFormat)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func requireClient(cfg *config.Config, recorder *metrics.Recorder) (*cfbd.Client, error) {
	if !cfg.HasAPIKey() {
		return nil, config.ErrNoAPIKey
	}
	return newClient(cfg.APIKey, recorder), nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
