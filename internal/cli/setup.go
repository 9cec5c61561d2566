package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cfb-tracker/internal/cfbd"
	"github.com/pfrederiksen/cfb-tracker/internal/config"
	"github.com/pfrederiksen/cfb-tracker/internal/storage"
)

var (
	flagInitAPIKey      string
	flagInitSeason      int
	flagInitTeams       []string
	flagInitConferences []string
	flagInitAllFBS      bool
	flagInitForce       bool

	flagTeamsSearch         string
	flagTeamsClassification string
	flagTeamsConference     string

	flagTrackConference bool
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up the API key and initial tracking",
		Long: `Verify a College Football Data API key and write the config file.

Get a free key at https://collegefootballdata.com/key. When --api-key is
omitted the key is read from standard input.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringVar(&flagInitAPIKey, "api-key", "", "CFBD API key")
	cmd.Flags().IntVar(&flagInitSeason, "season", 0, "Season year to track (default: current year)")
	cmd.Flags().StringSliceVar(&flagInitTeams, "team", nil, "Team to track (repeatable)")
	cmd.Flags().StringSliceVar(&flagInitConferences, "conference", nil, "Conference abbreviation to track (repeatable)")
	cmd.Flags().BoolVar(&flagInitAllFBS, "all-fbs", false, "Track every FBS game")
	cmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing API key")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.HasAPIKey() && !cfg.APIKeyFromEnv() && !flagInitForce {
		fmt.Fprintln(out, "API key already configured. Use --force to replace it.")
		return nil
	}

	apiKey := strings.TrimSpace(flagInitAPIKey)
	if apiKey == "" {
		fmt.Fprint(out, "Enter your CFBD API key (https://collegefootballdata.com/key): ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading API key: %w", err)
		}
		apiKey = strings.TrimSpace(line)
		fmt.Fprintln(out)
	}
	if apiKey == "" {
		return errors.New("no API key provided")
	}

	fmt.Fprint(out, "Testing API key... ")
	client := newClient(apiKey, nil)
	ok, err := client.CheckAPIKey(cmd.Context())
	if err != nil {
		fmt.Fprintln(out, "failed")
		return fmt.Errorf("checking API key: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "invalid")
		return errors.New("invalid API key: please check it and try again")
	}
	fmt.Fprintln(out, "valid")
	cfg.APIKey = apiKey

	if flagInitSeason > 0 {
		cfg.Season = flagInitSeason
	}
	if flagInitAllFBS {
		cfg.Tracked.TrackAllFBS = true
	}

	if len(flagInitTeams) > 0 {
		teams, err := client.Teams(cmd.Context(), "fbs")
		if err != nil {
			return fmt.Errorf("fetching teams: %w", err)
		}
		for _, name := range flagInitTeams {
			resolved, ok := cfbd.ResolveTeam(teams, name)
			if !ok {
				fmt.Fprintf(out, "  ? '%s' not found, skipping\n", name)
				continue
			}
			cfg.AddTeam(resolved)
			fmt.Fprintf(out, "  + %s\n", resolved)
		}
	}

	for _, name := range flagInitConferences {
		code, ok := config.ValidateConference(name)
		if !ok {
			fmt.Fprintf(out, "  ? '%s' is not an FBS conference, skipping\n", name)
			continue
		}
		cfg.AddConference(code)
		fmt.Fprintf(out, "  + %s\n", code)
	}

	if err := cfg.Save(flagConfig); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", flagConfig)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  - Run 'cfb-tracker track <team>' to add teams")
	fmt.Fprintln(out, "  - Run 'cfb-tracker sync' to fetch the schedule and generate calendars")
	fmt.Fprintln(out, "  - Run 'cfb-tracker status' to see the current configuration")
	return nil
}

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List available teams",
		Args:  cobra.NoArgs,
		RunE:  runTeams,
	}

	cmd.Flags().StringVarP(&flagTeamsSearch, "search", "s", "", "Only show teams containing this text")
	cmd.Flags().StringVar(&flagTeamsClassification, "classification", "fbs", "Team classification: fbs, fcs, ii or iii")
	cmd.Flags().StringVarP(&flagTeamsConference, "conference", "c", "", "Only show teams in this conference")

	return cmd
}

func runTeams(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := requireClient(cfg, nil)
	if err != nil {
		return err
	}

	teams, err := client.Teams(cmd.Context(), flagTeamsClassification)
	if err != nil {
		return fmt.Errorf("fetching teams: %w", err)
	}

	if flagTeamsConference != "" {
		code, ok := config.ValidateConference(flagTeamsConference)
		if !ok {
			return fmt.Errorf("unknown conference: %s", flagTeamsConference)
		}
		conf, _ := config.LookupConference(code)
		teams = cfbd.TeamsInConference(teams, conf.ScheduleName)
	}

	names := cfbd.TeamNames(teams)
	if flagTeamsSearch != "" {
		needle := strings.ToLower(flagTeamsSearch)
		filtered := names[:0]
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), needle) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
		fmt.Fprintf(out, "Teams matching '%s':\n\n", flagTeamsSearch)
	}

	writeColumns(out, names, 3)
	fmt.Fprintf(out, "\nTotal: %d teams\n", len(names))
	return nil
}

// writeColumns prints names top-to-bottom in the given number of columns.
func writeColumns(w io.Writer, names []string, columns int) {
	rows := (len(names) + columns - 1) / columns
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i := 0; i < rows; i++ {
		cells := make([]string, 0, columns)
		for j := 0; j < columns; j++ {
			if idx := i + j*rows; idx < len(names) {
				cells = append(cells, names[idx])
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func newConferencesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conferences",
		Short: "List FBS conferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conferences := append([]config.Conference(nil), config.FBSConferences...)
			sort.Slice(conferences, func(i, j int) bool {
				return conferences[i].Code < conferences[j].Code
			})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ABBREVIATION\tFULL NAME\tSCHEDULE NAME")
			for _, c := range conferences {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Code, c.Name, c.ScheduleName)
			}
			return tw.Flush()
		},
	}
}

func newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track NAME",
		Short: "Add a team or conference to track",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrack,
	}
	cmd.Flags().BoolVarP(&flagTrackConference, "conference", "c", false, "Track a conference instead of a team")
	return cmd
}

func runTrack(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagTrackConference {
		code, ok := config.ValidateConference(name)
		if !ok {
			return fmt.Errorf("unknown conference: %s (run 'cfb-tracker conferences' to see the options)", name)
		}
		if !cfg.AddConference(code) {
			fmt.Fprintf(out, "Already tracking %s\n", code)
			return nil
		}
		if err := cfg.Save(flagConfig); err != nil {
			return err
		}
		conf, _ := config.LookupConference(code)
		fmt.Fprintf(out, "Now tracking %s (%s)\n", code, conf.Name)
		return nil
	}

	client, err := requireClient(cfg, nil)
	if err != nil {
		return err
	}
	teams, err := client.Teams(cmd.Context(), "fbs")
	if err != nil {
		return fmt.Errorf("fetching teams: %w", err)
	}

	resolved, ok := cfbd.ResolveTeam(teams, name)
	if !ok {
		return fmt.Errorf("unknown team: %s (run 'cfb-tracker teams --search <name>' to search)", name)
	}
	if !cfg.AddTeam(resolved) {
		fmt.Fprintf(out, "Already tracking %s\n", resolved)
		return nil
	}
	if err := cfg.Save(flagConfig); err != nil {
		return err
	}
	fmt.Fprintf(out, "Now tracking %s\n", resolved)
	return nil
}

func newUntrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "untrack NAME",
		Short: "Remove a team or conference from tracking",
		Args:  cobra.ExactArgs(1),
		RunE:  runUntrack,
	}
	cmd.Flags().BoolVarP(&flagTrackConference, "conference", "c", false, "Untrack a conference instead of a team")
	return cmd
}

func runUntrack(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := strings.TrimSpace(args[0])

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var removed bool
	if flagTrackConference {
		name = strings.ToUpper(name)
		removed = cfg.RemoveConference(name)
	} else {
		removed = cfg.RemoveTeam(name)
	}

	if !removed {
		fmt.Fprintf(out, "Not currently tracking %s\n", name)
		return nil
	}
	if err := cfg.Save(flagConfig); err != nil {
		return err
	}
	fmt.Fprintf(out, "Stopped tracking %s\n", name)
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and tracking status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "CFB Schedule Tracker Status")
	fmt.Fprintln(out, "===========================")

	switch {
	case cfg.APIKeyFromEnv():
		fmt.Fprintf(out, "API Key: Configured (from %s)\n", config.APIKeyEnv)
	case cfg.HasAPIKey():
		fmt.Fprintln(out, "API Key: Configured")
	default:
		fmt.Fprintln(out, "API Key: Not configured")
	}
	fmt.Fprintf(out, "Season: %d\n", cfg.Season)

	fmt.Fprintln(out, "\nTracking:")
	switch {
	case cfg.Tracked.TrackAllFBS:
		fmt.Fprintln(out, "  All FBS games")
	case cfg.Tracked.IsEmpty():
		fmt.Fprintln(out, "  Nothing configured - run 'cfb-tracker track <team>'")
	}
	if len(cfg.Tracked.Teams) > 0 {
		fmt.Fprintln(out, "  Teams:")
		for _, team := range sortedCopy(cfg.Tracked.Teams) {
			fmt.Fprintf(out, "    - %s\n", team)
		}
	}
	if len(cfg.Tracked.Conferences) > 0 {
		fmt.Fprintln(out, "  Conferences:")
		for _, code := range sortedCopy(cfg.Tracked.Conferences) {
			name := "Unknown"
			if conf, ok := config.LookupConference(code); ok {
				name = conf.Name
			}
			fmt.Fprintf(out, "    - %s (%s)\n", code, name)
		}
	}

	fmt.Fprintln(out, "\nCalendar Output:")
	fmt.Fprintf(out, "  Directory: %s\n", cfg.Calendar.OutputDir)
	fmt.Fprintf(out, "  Include TV info: %t\n", cfg.Calendar.IncludeTVInfo)
	fmt.Fprintf(out, "  Include venue: %t\n", cfg.Calendar.IncludeVenue)
	fmt.Fprintf(out, "  Reminder: %d minutes before\n", cfg.Calendar.ReminderMinutes)

	if store, err := storage.New(flagDataDir); err == nil {
		if snap, err := store.LoadSnapshot(cfg.Season); err == nil && snap.UpdatedAt != "" {
			fmt.Fprintf(out, "\nLast sync: %s (%d games)\n", snap.UpdatedAt, len(snap.Games))
		}
	}

	outputDir, err := config.ExpandPath(cfg.Calendar.OutputDir)
	if err != nil {
		return err
	}
	files, _ := filepath.Glob(filepath.Join(outputDir, "*.ics"))
	if len(files) > 0 {
		sort.Strings(files)
		fmt.Fprintln(out, "\nGenerated Calendars:")
		for _, f := range files {
			fmt.Fprintf(out, "  %s\n", filepath.Base(f))
		}
	}

	return nil
}

// ExportData is the tracking configuration written by the export command
type ExportData struct {
	Season  int            `json:"season"`
	Tracked config.Tracked `json:"tracked"`
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export the tracking configuration as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tracked := cfg.Tracked
	if tracked.Teams == nil {
		tracked.Teams = []string{}
	}
	if tracked.Conferences == nil {
		tracked.Conferences = []string{}
	}

	data, err := json.MarshalIndent(ExportData{Season: cfg.Season, Tracked: tracked}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	data = append(data, '\n')

	if len(args) == 0 {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
	return nil
}

func sortedCopy(list []string) []string {
	out := append([]string(nil), list...)
	sort.Strings(out)
	return out
}
