package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/cfb-tracker/internal/cfbd"
	"github.com/pfrederiksen/cfb-tracker/internal/game"
	"github.com/pfrederiksen/cfb-tracker/internal/logger"
	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
)

// DefaultClassification is the tier fetched when none is given.
const DefaultClassification = "fbs"

// Source supplies raw upstream records. *cfbd.Client implements it.
type Source interface {
	Games(ctx context.Context, year int, seasonType game.SeasonType, classification string) ([]game.RawGame, error)
	Media(ctx context.Context, year int) ([]game.RawMedia, error)
	Venues(ctx context.Context) ([]game.RawVenue, error)
}

// Options selects what FetchSeason returns.
type Options struct {
	Year              int
	Teams             []string
	Conferences       []string
	IncludePostseason bool
	Classification    string

	// Metrics, when set, counts normalized games per season type.
	Metrics *metrics.Recorder
}

// DefaultOptions returns options for year with postseason included and the
// FBS classification.
func DefaultOptions(year int) Options {
	return Options{
		Year:              year,
		IncludePostseason: true,
		Classification:    DefaultClassification,
	}
}

// FetchSeason fetches, enriches, filters and sorts one season of games.
func FetchSeason(ctx context.Context, src Source, opts Options) ([]game.Game, error) {
	classification := opts.Classification
	if classification == "" {
		classification = DefaultClassification
	}

	regular, err := src.Games(ctx, opts.Year, game.Regular, classification)
	if err != nil {
		return nil, fmt.Errorf("fetching %d regular season: %w", opts.Year, err)
	}
	games := game.NormalizeAll(regular, opts.Year)
	opts.Metrics.RecordGames(string(game.Regular), len(regular))

	if opts.IncludePostseason {
		post, err := fetchPostseason(ctx, src, opts.Year, classification)
		if err != nil {
			return nil, err
		}
		games = append(games, game.NormalizeAll(post, opts.Year)...)
		opts.Metrics.RecordGames(string(game.Postseason), len(post))
	}

	media, err := src.Media(ctx, opts.Year)
	if err != nil {
		logger.Warn("Broadcast data unavailable, continuing without TV networks", logger.Fields{
			"season": opts.Year,
			"error":  err.Error(),
		})
	} else {
		games = AttachBroadcasts(games, game.Broadcasts(media))
	}

	if needsVenues(games) {
		venues, err := src.Venues(ctx)
		if err != nil {
			logger.Warn("Venue data unavailable, continuing without venue cities", logger.Fields{
				"season": opts.Year,
				"error":  err.Error(),
			})
		} else {
			games = AttachVenues(games, venues)
		}
	}

	games = FilterTeams(games, opts.Teams)
	games = FilterConferences(games, opts.Conferences)
	game.Sort(games)

	logger.Info("Fetched season", logger.Fields{
		"season":      opts.Year,
		"games":       len(games),
		"teams":       len(opts.Teams),
		"conferences": len(opts.Conferences),
	})
	return games, nil
}

// fetchPostseason treats an API error response as "not published yet" and
// returns no games for it. Rejected credentials and failures that never
// reached the API are fatal.
func fetchPostseason(ctx context.Context, src Source, year int, classification string) ([]game.RawGame, error) {
	post, err := src.Games(ctx, year, game.Postseason, classification)
	if err == nil {
		return post, nil
	}

	var apiErr *cfbd.APIError
	if errors.As(err, &apiErr) && !apiErr.Unauthorized() {
		logger.Warn("Postseason schedule unavailable", logger.Fields{
			"season": year,
			"status": apiErr.StatusCode,
		})
		return nil, nil
	}
	return nil, fmt.Errorf("fetching %d postseason: %w", year, err)
}

func needsVenues(games []game.Game) bool {
	for _, g := range games {
		if g.VenueID != nil && g.VenueCity == nil {
			return true
		}
	}
	return false
}
