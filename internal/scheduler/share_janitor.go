package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/logger"
	"github.com/MrSnakeDoc/spellshare/internal/metrics"
)

const (
	// DefaultJanitorGrace is how long an expired share stays in the expiring index
	DefaultJanitorGrace = 24 * time.Hour
)

// ExpiredIndexPruner drops expiring-index entries older than a cutoff.
type ExpiredIndexPruner interface {
	PruneExpiredIndex(ctx context.Context, cutoff time.Time) (int64, error)
}

// ShareJanitor keeps the expiring index small. Records themselves are kept:
// an expired share still answers with "expired" instead of "not found".
type ShareJanitor struct {
	store    ExpiredIndexPruner
	logger   logger.Logger
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewShareJanitor creates a new janitor
func NewShareJanitor(
	store ExpiredIndexPruner,
	log logger.Logger,
	interval time.Duration,
	grace time.Duration,
) *ShareJanitor {
	if grace <= 0 {
		grace = DefaultJanitorGrace
	}

	return &ShareJanitor{
		store:    store,
		logger:   log.With(logger.String("component", "share_janitor")),
		interval: interval,
		grace:    grace,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start runs a first pass, then prunes on every tick
func (j *ShareJanitor) Start(ctx context.Context) error {
	if _, err := j.Prune(ctx); err != nil {
		j.logger.Warn("initial prune failed", logger.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := j.Prune(ctx); err != nil {
					j.logger.Error("prune failed", logger.Error(err))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor
func (j *ShareJanitor) Stop() {
	close(j.stopCh)
}

// Prune removes index entries that expired more than grace ago.
func (j *ShareJanitor) Prune(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.grace)

	removed, err := j.store.PruneExpiredIndex(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		metrics.ExpiredIndexPruned.Add(float64(removed))
		j.logger.Info("pruned expiring index",
			logger.Int64("removed", removed),
			logger.Time("cutoff", cutoff))
	} else {
		j.logger.Debug("nothing to prune")
	}

	return removed, nil
}
