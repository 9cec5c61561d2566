// Package config loads and saves the cfb-tracker configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/pfrederiksen/cfb-tracker/internal/calendar"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
)

const (
	// APIKeyEnv overrides the API key stored in the config file.
	APIKeyEnv = "CFBD_API_KEY"

	TelegramTokenEnv  = "CFBD_TELEGRAM_BOT_TOKEN"
	TelegramChatIDEnv = "CFBD_TELEGRAM_CHAT_ID"

	DefaultPath    = "~/.config/cfb-tracker/config.yaml"
	DefaultDataDir = "~/.local/share/cfb-tracker"
)

// ErrNoAPIKey is returned by commands that need the API but have no key.
var ErrNoAPIKey = errors.New("no CFBD API key configured: run 'cfb-tracker init' or set " + APIKeyEnv)

// Config is the persisted tracker configuration
type Config struct {
	APIKey   string            `koanf:"api_key"`
	Season   int               `koanf:"season"`
	Tracked  Tracked           `koanf:"tracked"`
	Calendar calendar.Settings `koanf:"calendar"`
	Notify   Notify            `koanf:"notify"`

	apiKeyFromEnv bool
}

// Notify holds the Telegram chat that receives schedule change digests
type Notify struct {
	TelegramBotToken string `koanf:"telegram_bot_token"`
	TelegramChatID   string `koanf:"telegram_chat_id"`
}

// Enabled reports whether both Telegram settings are present
func (n Notify) Enabled() bool {
	return n.TelegramBotToken != "" && n.TelegramChatID != ""
}

// Tracked lists the teams and conferences a user follows
type Tracked struct {
	Teams       []string `koanf:"teams" json:"teams"`
	Conferences []string `koanf:"conferences" json:"conferences"`
	TrackAllFBS bool     `koanf:"track_all_fbs" json:"track_all_fbs"`
}

// IsEmpty reports whether nothing is tracked
func (t Tracked) IsEmpty() bool {
	return len(t.Teams) == 0 && len(t.Conferences) == 0 && !t.TrackAllFBS
}

// HasAPIKey reports whether an API key is configured
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// APIKeyFromEnv reports whether the API key came from CFBD_API_KEY.
func (c *Config) APIKeyFromEnv() bool {
	return c.apiKeyFromEnv
}

// Default returns the configuration used before any file is written.
func Default() Config {
	return Config{
		Season:   time.Now().Year(),
		Tracked:  Tracked{Teams: []string{}, Conferences: []string{}},
		Calendar: calendar.DefaultSettings(),
	}
}

// Load reads the configuration: defaults, then the YAML file at path, then
// the CFBD_API_KEY environment variable. A missing file is not an error.
func Load(path string) (*Config, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		logger.Debug("Config file not found, using defaults", logger.Fields{"path": path})
	} else {
		logger.Debug("Loaded configuration", logger.Fields{"path": path})
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CFBD_",
		TransformFunc: func(key, value string) (string, any) {
			if strings.TrimSpace(value) == "" {
				return "", nil
			}
			switch key {
			case APIKeyEnv:
				return "api_key", value
			case TelegramTokenEnv:
				return "notify.telegram_bot_token", value
			case TelegramChatIDEnv:
				return "notify.telegram_chat_id", value
			}
			return "", nil
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.apiKeyFromEnv = strings.TrimSpace(os.Getenv(APIKeyEnv)) != ""

	return &cfg, nil
}

// Save writes the configuration to path as YAML. An API key supplied through
// the environment is not written.
func (c *Config) Save(path string) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	out := *c
	if c.apiKeyFromEnv {
		out.APIKey = ""
	}
	if strings.TrimSpace(os.Getenv(TelegramTokenEnv)) != "" {
		out.Notify.TelegramBotToken = ""
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(out, "koanf"), nil); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if out.APIKey == "" {
		k.Delete("api_key")
	}
	if out.Notify.TelegramBotToken == "" {
		k.Delete("notify.telegram_bot_token")
	}

	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	logger.Debug("Saved configuration", logger.Fields{"path": path})
	return nil
}

// AddTeam tracks team. It reports false if the team was already tracked.
func (c *Config) AddTeam(team string) bool {
	if containsFold(c.Tracked.Teams, team) {
		return false
	}
	c.Tracked.Teams = append(c.Tracked.Teams, team)
	return true
}

// RemoveTeam stops tracking team. It reports false if it was not tracked.
func (c *Config) RemoveTeam(team string) bool {
	var removed bool
	c.Tracked.Teams, removed = removeFold(c.Tracked.Teams, team)
	return removed
}

// AddConference tracks a conference code.
func (c *Config) AddConference(code string) bool {
	if containsFold(c.Tracked.Conferences, code) {
		return false
	}
	c.Tracked.Conferences = append(c.Tracked.Conferences, code)
	return true
}

// RemoveConference stops tracking a conference code.
func (c *Config) RemoveConference(code string) bool {
	var removed bool
	c.Tracked.Conferences, removed = removeFold(c.Tracked.Conferences, code)
	return removed
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
	}
	return path, nil
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func removeFold(list []string, s string) ([]string, bool) {
	out := make([]string, 0, len(list))
	removed := false
	for _, item := range list {
		if strings.EqualFold(item, s) {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
