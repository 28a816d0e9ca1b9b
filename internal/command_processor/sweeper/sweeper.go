// Package sweeper removes read notifications that have aged out of the
// retention window, keeping the feed bounded.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/domain/notification"
)

// Sweeper periodically deletes expired read notifications
type Sweeper struct {
	notifications notification.Repository
	logger        *slog.Logger
	interval      time.Duration
	batchSize     int
	retention     time.Duration
}

func NewSweeper(
	cfg *config.SweeperConfig,
	notifications notification.Repository,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		notifications: notifications,
		logger:        logger,
		interval:      cfg.Interval,
		batchSize:     cfg.BatchSize,
		retention:     cfg.Retention,
	}
}

// Start begins sweeping until context is canceled
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting notification retention sweeper",
		"interval", s.interval.String(),
		"batch_size", s.batchSize,
		"retention", s.retention.String(),
	)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Notification sweeper stopping due to context cancellation.")
			return
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.logger.Error("Error during notification retention sweep", "error", err)
			}
		}
	}
}

// sweep deletes batch after batch of expired read notifications until a
// batch comes back short, so one tick fully drains the backlog.
func (s *Sweeper) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)

	var total int64
	for {
		deleted, err := s.notifications.DeleteReadBefore(ctx, cutoff, s.batchSize)
		if err != nil {
			return fmt.Errorf("failed to delete expired notifications: %w", err)
		}
		total += deleted
		if deleted < int64(s.batchSize) {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if total > 0 {
		s.logger.Info("Swept expired notifications", "deleted", total, "cutoff", cutoff)
	}

	return nil
}
