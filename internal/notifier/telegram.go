package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
)

const (
	telegramBaseURL = "https://api.telegram.org"
	telegramTimeout = 10 * time.Second
)

// Telegram posts digests to a chat through the Telegram Bot API
type Telegram struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegram creates a Telegram notifier
func NewTelegram(botToken, chatID string) (*Telegram, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramBaseURL,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// SetBaseURL points the notifier at a different Bot API host.
func (t *Telegram) SetBaseURL(baseURL string) {
	t.baseURL = strings.TrimRight(baseURL, "/")
}

// Notify sends the digest for changes. An empty diff sends nothing.
func (t *Telegram) Notify(ctx context.Context, season int, changes *game.DiffResult) error {
	if changes == nil || changes.IsEmpty() {
		return nil
	}
	if err := t.SendMessage(ctx, FormatDigest(season, changes)); err != nil {
		return err
	}
	logger.Info("Sent schedule digest", logger.Fields{
		"season":      season,
		"new":         len(changes.NewGames),
		"rescheduled": len(changes.Rescheduled),
		"final":       len(changes.Final),
	})
	return nil
}

// SendMessage sends an HTML text message to the configured chat
func (t *Telegram) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	payload := map[string]interface{}{
		"chat_id":                  t.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK || resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, result.Description)
	}

	return nil
}
