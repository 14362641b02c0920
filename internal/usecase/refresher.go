package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"TradeDeck/pkg/cache"
	"TradeDeck/pkg/logger"
)

// SnapshotKey is the cache key under which the latest snapshot is stored.
const SnapshotKey = "dashboard:snapshot"

// Refresher owns the fixed-interval refresh cadence: it runs the aggregator
// on a schedule and stores the resulting snapshot in the cache for handlers
// to serve. The core stays stateless; the cache holds "last snapshot".
type Refresher struct {
	agg      *DashboardAggregator
	cache    cache.Service
	interval time.Duration
	ttl      time.Duration
	cron     *cron.Cron
	log      *logger.Logger
}

// NewRefresher creates a refresher. The snapshot TTL should comfortably
// exceed the interval so a few failed cycles still serve stale data.
func NewRefresher(agg *DashboardAggregator, c cache.Service, interval, ttl time.Duration, log *logger.Logger) *Refresher {
	if ttl <= 0 {
		ttl = 5 * interval
	}
	return &Refresher{
		agg:      agg,
		cache:    c,
		interval: interval,
		ttl:      ttl,
		cron:     cron.New(),
		log:      log,
	}
}

// Start runs one refresh immediately, then schedules the periodic cycle.
func (r *Refresher) Start(ctx context.Context) error {
	r.runOnce(ctx)

	_, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), func() {
		r.runOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	r.cron.Start()
	r.log.Info("refresher started", logger.Duration("interval_ms", r.interval))
	return nil
}

// Stop halts the schedule. In-flight cycles finish on their own; their
// results are simply the last write to the cache.
func (r *Refresher) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.log.Info("refresher stopped")
}

func (r *Refresher) runOnce(ctx context.Context) {
	snap := r.agg.Refresh(ctx)
	if err := r.cache.Set(ctx, SnapshotKey, snap, r.ttl); err != nil {
		r.log.Warn("snapshot cache write failed", logger.Error(err))
	}
}
