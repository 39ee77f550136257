package service

import (
	"context"
	"time"

	"github.com/dkearns/tasktrack/internal/repository"
	"go.uber.org/zap"
)

// StartSessionSweeper reclaims storage held by expired sessions on an
// interval. Expiry itself is enforced at lookup time, so the sweep is
// hygiene, not correctness. It stops when ctx is cancelled.
func StartSessionSweeper(
	ctx context.Context,
	sessions repository.SessionRepository,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := sessions.DeleteExpired(ctx, time.Now())
				if err != nil {
					log.Error("failed to sweep expired sessions", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("swept expired sessions", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
