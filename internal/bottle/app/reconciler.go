package app

import (
	"context"
	"time"

	"drift_chronicles_service/internal/bottle/repository"
	"drift_chronicles_service/pkg/logger"
)

// OrphanReconciler repairs claims whose chat creation failed mid-flight.
// A claimed bottle is supposed to have exactly one chat; the sweep walks
// CLAIMED bottles and re-runs the idempotent chat creation, which is a
// no-op for healthy claims.
type OrphanReconciler struct {
	bottles  repository.BottleRepository
	chats    ChatStarter
	interval time.Duration
	limit    int64
}

// NewOrphanReconciler create a OrphanReconciler
func NewOrphanReconciler(bottles repository.BottleRepository, chats ChatStarter, interval time.Duration, limit int64) *OrphanReconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	if limit <= 0 {
		limit = 500
	}
	return &OrphanReconciler{
		bottles:  bottles,
		chats:    chats,
		interval: interval,
		limit:    limit,
	}
}

// Run sweep on a ticker until ctx is cancelled
func (r *OrphanReconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("orphan reconciler stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep one pass over claimed bottles
func (r *OrphanReconciler) Sweep(ctx context.Context) {
	claimed, err := r.bottles.FetchClaimed(ctx, r.limit)
	if err != nil {
		logger.Log.Errorf("orphan sweep failed to fetch claimed bottles", err)
		return
	}

	for _, b := range claimed {
		_, created, err := r.chats.CreateFromClaim(ctx, b.ID, b.Content, b.CreatorID, b.ClaimedBy)
		if err != nil {
			logger.Log.Errorf("orphan sweep failed to repair bottle "+b.ID, err)
			continue
		}
		if created {
			logger.Log.Info("orphan sweep repaired missing chat for bottle " + b.ID)
		}
	}
}
