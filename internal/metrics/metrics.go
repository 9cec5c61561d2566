// Package metrics records operational counters for cfb-tracker on a
// Prometheus registry.
//
// A nil *Recorder is valid and records nothing, so components can take an
// optional recorder without guarding every call.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cfb_tracker"

// Recorder captures upstream fetches, calendar writes and feed requests.
type Recorder struct {
	registry        *prometheus.Registry
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	gamesFetched    *prometheus.CounterVec
	calendarEvents  *prometheus.GaugeVec
	feedRequests    *prometheus.CounterVec
	syncRuns        *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "CFBD API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_seconds",
			Help:      "CFBD API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		gamesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_fetched_total",
			Help:      "Games normalized from upstream records by season type.",
		}, []string{"season_type"}),
		calendarEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "calendar_events",
			Help:      "Events in the most recently written calendar file.",
		}, []string{"calendar"}),
		feedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Calendar feed requests by calendar and HTTP status.",
		}, []string{"calendar", "status"}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Schedule sync runs by outcome.",
		}, []string{"outcome"}),
	}

	r.registry.MustRegister(
		r.upstreamCalls,
		r.upstreamLatency,
		r.gamesFetched,
		r.calendarEvents,
		r.feedRequests,
		r.syncRuns,
	)
	return r
}

// RecordUpstream records one API call against endpoint.
func (r *Recorder) RecordUpstream(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.upstreamCalls.WithLabelValues(endpoint, outcome(err)).Inc()
	r.upstreamLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordGames adds n normalized games of the given season type.
func (r *Recorder) RecordGames(seasonType string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.gamesFetched.WithLabelValues(seasonType).Add(float64(n))
}

// RecordCalendar stores the event count of a written calendar file.
func (r *Recorder) RecordCalendar(name string, events int) {
	if r == nil {
		return
	}
	r.calendarEvents.WithLabelValues(name).Set(float64(events))
}

// RecordFeedRequest counts one served calendar feed request.
func (r *Recorder) RecordFeedRequest(name string, status int) {
	if r == nil {
		return
	}
	r.feedRequests.WithLabelValues(name, strconv.Itoa(status)).Inc()
}

// RecordSync counts one sync run.
func (r *Recorder) RecordSync(err error) {
	if r == nil {
		return
	}
	r.syncRuns.WithLabelValues(outcome(err)).Inc()
}

// Registry exposes the underlying registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
