package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
	"github.com/pfrederiksen/cfb-tracker/internal/schedule"
)

// MasterFileName is the combined calendar written by GenerateAll.
const MasterFileName = "cfb_schedule.ics"

// Written describes one calendar file produced by the Manager
type Written struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Events int    `json:"events"`
}

// Manager writes calendar files into Settings.OutputDir. OutputDir must
// already be an absolute or working-directory-relative path.
type Manager struct {
	settings Settings
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewManager creates a calendar manager. recorder may be nil.
func NewManager(settings Settings, recorder *metrics.Recorder) *Manager {
	return &Manager{
		settings: settings,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Settings returns the manager's calendar settings
func (m *Manager) Settings() Settings {
	return m.settings
}

// Build synthesizes a named document from games.
func (m *Manager) Build(name string, games []game.Game) Document {
	return NewDocument(name, Synthesize(games, m.settings, m.now().UTC()))
}

// GenerateAll writes one calendar per team, one per conference and, when
// master is set, a combined calendar holding every game that involves any
// of them. A calendar that fails to write is logged and skipped.
func (m *Manager) GenerateAll(games []game.Game, teams, conferences []string, master bool) []Written {
	var written []Written
	add := func(name, fileName string, selected []game.Game) {
		w, err := m.Write(name, fileName, selected)
		if err != nil {
			logger.Error("Failed to write calendar", logger.Fields{
				"calendar": name,
				"file":     fileName,
			}, err)
			return
		}
		written = append(written, w)
	}

	for _, team := range teams {
		add(team+" Football Schedule", TeamFileName(team), schedule.FilterTeams(games, []string{team}))
	}
	for _, conf := range conferences {
		add(conf+" Football Schedule", ConferenceFileName(conf), schedule.FilterConferences(games, []string{conf}))
	}
	if master {
		add(m.settings.CalendarName, MasterFileName, schedule.Select(games, teams, conferences))
	}

	return written
}

// Write renders games as the calendar name and writes it to fileName inside
// the output directory.
func (m *Manager) Write(name, fileName string, games []game.Game) (Written, error) {
	doc := m.Build(name, games)
	path := filepath.Join(m.settings.OutputDir, fileName)

	if err := WriteFile(path, doc); err != nil {
		return Written{}, err
	}

	m.metrics.RecordCalendar(strings.TrimSuffix(fileName, ".ics"), len(doc.Events))
	logger.Info("Wrote calendar", logger.Fields{
		"calendar": name,
		"path":     path,
		"events":   len(doc.Events),
	})
	return Written{Name: name, Path: path, Events: len(doc.Events)}, nil
}

// WriteFile writes doc to path, creating parent directories as needed. The
// document is written to a temporary file in the same directory and renamed
// into place, so readers see either the old file or the new one.
func WriteFile(path string, doc Document) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating calendar directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing calendar file: %w", err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return fmt.Errorf("setting calendar file mode: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing calendar file: %w", err)
	}
	return nil
}

// TeamFileName returns "cfb_{team}.ics" with the team name lower-cased,
// spaces turned into underscores, "&" spelled out and any other punctuation
// dropped.
func TeamFileName(team string) string {
	return "cfb_" + slug(team) + ".ics"
}

// ConferenceFileName returns "cfb_{conference}.ics".
func ConferenceFileName(conference string) string {
	return "cfb_" + slug(conference) + ".ics"
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, s)
}
