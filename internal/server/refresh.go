package server

import (
	"context"
	"time"

	"github.com/pfrederiksen/cfb-tracker/internal/logger"
)

// RefreshFunc regenerates the calendar files.
type RefreshFunc func(ctx context.Context) error

// RunRefresh calls refresh once immediately and then every interval until
// ctx is cancelled. Runs never overlap. Failures are logged and recorded on
// s; the loop keeps going.
func (s *Server) RunRefresh(ctx context.Context, interval time.Duration, refresh RefreshFunc) {
	s.refreshOnce(ctx, refresh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Refresh loop stopped", nil)
			return
		case <-ticker.C:
			s.refreshOnce(ctx, refresh)
		}
	}
}

func (s *Server) refreshOnce(ctx context.Context, refresh RefreshFunc) {
	start := time.Now()
	err := refresh(ctx)
	s.MarkRefreshed(time.Now(), err)

	if err != nil {
		logger.Error("Calendar refresh failed", logger.Fields{
			"duration_ms": time.Since(start).Milliseconds(),
		}, err)
		return
	}
	logger.Info("Calendars refreshed", logger.Fields{
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
