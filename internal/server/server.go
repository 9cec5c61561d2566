// Package server publishes generated calendar files over HTTP so calendar
// applications can subscribe to them instead of importing a one-off file.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/pfrederiksen/cfb-tracker/internal/logger"
	"github.com/pfrederiksen/cfb-tracker/internal/metrics"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// CalendarInfo describes one calendar file available for subscription
type CalendarInfo struct {
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// unknownCalendar labels feed requests that did not resolve to a calendar
// file, keeping the metric's label set bounded by the files on disk.
const unknownCalendar = "unknown"

// Server serves the .ics files in a calendar directory.
type Server struct {
	dir     string
	metrics *metrics.Recorder
	router  *mux.Router

	mu          sync.RWMutex
	lastRefresh time.Time
	lastError   string
}

// New creates a server for the calendars in dir. recorder may be nil, in
// which case /metrics answers 404.
func New(dir string, recorder *metrics.Recorder) *Server {
	s := &Server{
		dir:     dir,
		metrics: recorder,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/calendars", s.handleList).Methods(http.MethodGet)
	s.router.HandleFunc("/calendars/{name:[a-z0-9_-]+}.ics", s.handleCalendar).Methods(http.MethodGet, http.MethodHead)
	s.router.Handle("/metrics", recorder.Handler()).Methods(http.MethodGet)

	return s
}

// Handler returns the server's router
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving calendars", logger.Fields{"addr": addr, "dir": s.dir})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving calendars: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("Server stopped", nil)
	return nil
}

// MarkRefreshed records the outcome of a calendar refresh for /healthz.
func (s *Server) MarkRefreshed(at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = err.Error()
		return
	}
	s.lastRefresh = at
	s.lastError = ""
}

// Calendars lists the .ics files in the calendar directory, sorted by name.
func (s *Server) Calendars() ([]CalendarInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CalendarInfo{}, nil
		}
		return nil, fmt.Errorf("reading calendar directory: %w", err)
	}

	calendars := make([]CalendarInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".ics" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".ics")
		calendars = append(calendars, CalendarInfo{
			Name:     name,
			URL:      "/calendars/" + entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
		})
	}

	sort.Slice(calendars, func(i, j int) bool {
		return calendars[i].Name < calendars[j].Name
	})
	return calendars, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	body := map[string]interface{}{"status": "ok"}
	if !s.lastRefresh.IsZero() {
		body["last_refresh"] = s.lastRefresh.UTC().Format(time.RFC3339)
	}
	if s.lastError != "" {
		body["last_error"] = s.lastError
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	calendars, err := s.Calendars()
	if err != nil {
		logger.Error("Failed to list calendars", logger.Fields{"dir": s.dir}, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list calendars"})
		return
	}
	writeJSON(w, http.StatusOK, calendars)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	path := filepath.Join(s.dir, name+".ics")

	data, err := os.ReadFile(path)
	if err != nil {
		status := http.StatusInternalServerError
		if os.IsNotExist(err) {
			status = http.StatusNotFound
		} else {
			logger.Error("Failed to read calendar", logger.Fields{"path": path}, err)
		}
		s.metrics.RecordFeedRequest(unknownCalendar, status)
		http.Error(w, http.StatusText(status), status)
		return
	}

	s.metrics.RecordFeedRequest(name, http.StatusOK)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name+".ics"))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", logger.Fields{"error": err.Error()})
	}
}
