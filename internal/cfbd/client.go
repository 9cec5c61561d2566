package cfbd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
)

const (
	DefaultBaseURL = "https://apiv2.collegefootballdata.com"
	UserAgent      = "cfb-tracker/1.0 (github.com/pfrederiksen/cfb-tracker)"
	Timeout        = 30 * time.Second
)

// Client is a client for the College Football Data API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *RefCache
	metrics    *metrics.Recorder
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL points the client at a different API host (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithMetrics records every upstream call on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

// NewClient creates a new CFBD API client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		cache: NewRefCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache returns the client's reference-list cache
func (c *Client) Cache() *RefCache {
	return c.cache
}

// Games fetches raw game records for one season type.
func (c *Client) Games(ctx context.Context, year int, seasonType game.SeasonType, classification string) ([]game.RawGame, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	if seasonType != "" {
		params.Set("seasonType", string(seasonType))
	}
	if classification != "" {
		params.Set("classification", strings.ToLower(classification))
	}

	var raws []game.RawGame
	if err := c.get(ctx, "games", params, &raws); err != nil {
		return nil, err
	}

	logger.Debug("Fetched games", logger.Fields{
		"season":      year,
		"season_type": string(seasonType),
		"count":       len(raws),
	})
	return raws, nil
}

// Media fetches broadcast records for a season.
func (c *Client) Media(ctx context.Context, year int) ([]game.RawMedia, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))

	var media []game.RawMedia
	if err := c.get(ctx, "games/media", params, &media); err != nil {
		return nil, err
	}
	return media, nil
}

// Venues fetches every venue known to the API.
func (c *Client) Venues(ctx context.Context) ([]game.RawVenue, error) {
	var venues []game.RawVenue
	if err := c.get(ctx, "venues", nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// Teams returns teams of the given classification ("fbs", "fcs", "ii",
// "iii"), sorted by school. Results are memoized per classification.
func (c *Client) Teams(ctx context.Context, classification string) ([]Team, error) {
	classification = strings.ToLower(strings.TrimSpace(classification))
	if cached, ok := c.cache.Teams(classification); ok {
		return cached, nil
	}

	var all []Team
	if err := c.get(ctx, "teams", nil, &all); err != nil {
		return nil, err
	}

	bySchool := make(map[string]Team)
	for _, t := range all {
		if t.Classification == nil || !strings.EqualFold(*t.Classification, classification) {
			continue
		}
		bySchool[strings.ToLower(t.School)] = t
	}

	teams := make([]Team, 0, len(bySchool))
	for _, t := range bySchool {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].School < teams[j].School
	})

	c.cache.SetTeams(classification, teams)
	logger.Info("Fetched teams", logger.Fields{
		"classification": classification,
		"count":          len(teams),
	})
	return teams, nil
}

// Conferences returns every conference. The result is memoized.
func (c *Client) Conferences(ctx context.Context) ([]Conference, error) {
	if cached, ok := c.cache.Conferences(); ok {
		return cached, nil
	}

	var conferences []Conference
	if err := c.get(ctx, "conferences", nil, &conferences); err != nil {
		return nil, err
	}

	c.cache.SetConferences(conferences)
	logger.Info("Fetched conferences", logger.Fields{"count": len(conferences)})
	return conferences, nil
}

// Calendar fetches the week boundaries of a season.
func (c *Client) Calendar(ctx context.Context, year int) ([]CalendarWeek, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))

	var weeks []CalendarWeek
	if err := c.get(ctx, "calendar", params, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// CheckAPIKey verifies the API key with a cheap request. It returns false
// with a nil error when the API rejects the key, and an error for any other
// failure.
func (c *Client) CheckAPIKey(ctx context.Context) (bool, error) {
	c.cache.Invalidate()
	_, err := c.Conferences(ctx)
	if err == nil {
		return true, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		logger.Error("Invalid API key", nil, err)
		return false, nil
	}
	return false, err
}

// get issues an authenticated GET against endpoint and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(endpoint, time.Since(start), err)
		return fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := newAPIError(endpoint, resp)
		c.metrics.RecordUpstream(endpoint, time.Since(start), apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.RecordUpstream(endpoint, time.Since(start), err)
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}

	c.metrics.RecordUpstream(endpoint, time.Since(start), nil)
	return nil
}
