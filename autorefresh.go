package ciudadauth

import (
	"context"
	"errors"
	"time"
)

// StartAutoRefresh launches the background silent-refresh scheduler: it
// refreshes the session shortly before the held access token expires,
// honoring [AutoRefreshConfig]. It stops on its own when a refresh concludes
// the session is unrecoverable (no refresh token, or the backend rejected
// it), when ctx is canceled, or on [Store.StopAutoRefresh]/[Store.Close].
//
// At most one scheduler runs per store; starting a second is a no-op.
func (s *Store) StartAutoRefresh(ctx context.Context) {
	if s == nil || !s.config.AutoRefresh.Enabled {
		return
	}
	if !s.refreshActive.CompareAndSwap(false, true) {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.refreshStop = cancel
	s.mu.Unlock()

	go s.autoRefreshLoop(runCtx)
}

// StopAutoRefresh halts the scheduler if it is running.
func (s *Store) StopAutoRefresh() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.refreshStop
	s.refreshStop = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.refreshActive.Store(false)
}

func (s *Store) autoRefreshLoop(ctx context.Context) {
	defer s.refreshActive.Store(false)

	cfg := s.config.AutoRefresh

	for {
		var expiry time.Time
		if exp, ok := s.holder.expiresAt(); ok {
			expiry = exp
		}
		delay := nextRefreshDelay(expiry, time.Now(), cfg)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		err := s.RefreshSession(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrNoRefreshToken), errors.Is(err, ErrSessionExpired):
			s.logger.Info("auto refresh stopped", "reason", err)
			return
		case ctx.Err() != nil:
			return
		default:
			// Transient failure; the next tick retries after MinInterval.
		}
	}
}

// nextRefreshDelay computes how long the scheduler sleeps before the next
// refresh attempt. A zero expiry (no token held, or no readable exp claim)
// falls back to MinInterval, as does any deadline already in the past.
func nextRefreshDelay(expiry time.Time, now time.Time, cfg AutoRefreshConfig) time.Duration {
	if expiry.IsZero() {
		return cfg.MinInterval
	}
	delay := expiry.Sub(now) - cfg.Lead
	if delay < cfg.MinInterval {
		return cfg.MinInterval
	}
	return delay
}
