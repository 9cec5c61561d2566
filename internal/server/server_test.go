package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
)

const sampleICS = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cfb_michigan.ics"), []byte(sampleICS), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cfb_schedule.ics"), []byte(sampleICS), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	return New(dir, metrics.NewRecorder()), dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Calendar(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/calendars/cfb_michigan.ics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, sampleICS, rec.Body.String())
}

func TestServer_CalendarNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []string{
		"/calendars/cfb_alabama.ics",
		"/calendars/notes.ics",
		"/calendars/cfb_michigan.txt",
		"/calendars/CFB_MICHIGAN.ics",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			rec := get(t, s.Handler(), path)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestServer_List(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/calendars")
	require.Equal(t, http.StatusOK, rec.Code)

	var calendars []CalendarInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &calendars))
	require.Len(t, calendars, 2)
	assert.Equal(t, "cfb_michigan", calendars[0].Name)
	assert.Equal(t, "/calendars/cfb_michigan.ics", calendars[0].URL)
	assert.Equal(t, int64(len(sampleICS)), calendars[0].Size)
	assert.Equal(t, "cfb_schedule", calendars[1].Name)
}

func TestServer_ListMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing"), nil)

	rec := get(t, s.Handler(), "/calendars")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())

	s.MarkRefreshed(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC), nil)
	s.MarkRefreshed(time.Now(), errors.New("upstream down"))

	rec = get(t, s.Handler(), "/healthz")
	assert.JSONEq(t, `{"status": "ok", "last_refresh": "2025-09-01T12:00:00Z", "last_error": "upstream down"}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	s, _ := newTestServer(t)

	get(t, s.Handler(), "/calendars/cfb_michigan.ics")
	get(t, s.Handler(), "/calendars/cfb_alabama.ics")

	rec := get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `cfb_tracker_feed_requests_total{calendar="cfb_michigan",status="200"} 1`)
	assert.Contains(t, body, `cfb_tracker_feed_requests_total{calendar="unknown",status="404"} 1`)
	assert.NotContains(t, body, "cfb_alabama")

	noMetrics := New(t.TempDir(), nil)
	assert.Equal(t, http.StatusNotFound, get(t, noMetrics.Handler(), "/metrics").Code)
}

func TestServer_MetricsMissLabelBounded(t *testing.T) {
	s, _ := newTestServer(t)

	for i := 0; i < 25; i++ {
		rec := get(t, s.Handler(), fmt.Sprintf("/calendars/cfb_random_%d.ics", i))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
	get(t, s.Handler(), "/calendars/cfb_michigan.ics")

	body := get(t, s.Handler(), "/metrics").Body.String()
	assert.Contains(t, body, `cfb_tracker_feed_requests_total{calendar="unknown",status="404"} 25`)
	assert.Contains(t, body, `cfb_tracker_feed_requests_total{calendar="cfb_michigan",status="200"} 1`)
	assert.NotContains(t, body, "cfb_random_")
	assert.Equal(t, 2, strings.Count(body, "cfb_tracker_feed_requests_total{"))
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/calendars", strings.NewReader("{}")))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_RunRefresh(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.RunRefresh(ctx, 10*time.Millisecond, func(context.Context) error {
			if calls.Add(1) >= 3 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh loop did not stop after cancel")
	}

	assert.GreaterOrEqual(t, calls.Load(), int32(3))
	rec := get(t, s.Handler(), "/healthz")
	assert.Contains(t, rec.Body.String(), "last_refresh")
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
