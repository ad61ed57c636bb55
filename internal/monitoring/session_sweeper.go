package monitoring

import (
	"context"
	"log/slog"
	"time"
)

const DEFAULT_SWEEP_INTERVAL = 5 * time.Minute

type Sweeper interface {
	Sweep() int
	Len() int
}

// SweepIdleSessions evicts idle sessions on every tick until ctx is done.
func SweepIdleSessions(ctx context.Context, sessions Sweeper, interval time.Duration) {
	if interval <= 0 {
		interval = DEFAULT_SWEEP_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.Sweep(); removed > 0 {
				slog.Debug("[SessionSweeper] Sweep finished",
					slog.Int("evicted", removed),
					slog.Int("active", sessions.Len()))
			}
		}
	}
}
