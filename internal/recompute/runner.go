// Package recompute drives batch order-cost recomputation. Each order is
// processed in isolation: a failure on order N never stops orders N+1 on.
package recompute

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pdushie/bundle-management-app-sub001/internal/config"
	orderdomain "github.com/pdushie/bundle-management-app-sub001/internal/order/domain"
)

var (
	ordersProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_recompute_processed_total",
		Help: "Orders whose costs were recomputed and persisted.",
	})
	ordersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_recompute_failed_total",
		Help: "Orders skipped by the recompute pass because of an error.",
	})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_recompute_run_seconds",
		Help:    "Wall time of a full recompute pass.",
		Buckets: prometheus.DefBuckets,
	})
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   *config.Config
	Repo  orderdomain.Repository
	Costs orderdomain.CostService
}

type Runner struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   *config.Config
	repo  orderdomain.Repository
	costs orderdomain.CostService
}

func New(p Params) *Runner {
	return &Runner{
		db:    p.DB,
		log:   p.Log.Named("recompute"),
		cfg:   p.Cfg,
		repo:  p.Repo,
		costs: p.Costs,
	}
}

// Run executes one full pass over all orders, paging by id. It returns the
// number of orders recomputed; per-order failures are counted and logged
// but do not stop the pass.
func (r *Runner) Run(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() { runDuration.Observe(time.Since(start).Seconds()) }()

	batchSize := r.cfg.Recompute.BatchSize

	processed := 0
	var cursor snowflake.ID
	for {
		ids, err := r.repo.ListIDsAfter(ctx, r.db, cursor, batchSize)
		if err != nil {
			return processed, err
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			if err := r.recomputeOne(ctx, id); err != nil {
				ordersFailed.Inc()
				r.log.Error("order recompute failed",
					zap.Int64("order_id", int64(id)), zap.Error(err))
				continue
			}
			ordersProcessed.Inc()
			processed++
		}

		cursor = ids[len(ids)-1]
		if len(ids) < batchSize {
			break
		}
	}

	r.log.Info("recompute pass complete",
		zap.Int("processed", processed), zap.Duration("took", time.Since(start)))
	return processed, nil
}

// recomputeOne wraps a single order's recompute so that even a panic in
// one order cannot take down the rest of the pass. The aggregator is
// fail-soft on its own, but the load/persist steps around it can still
// fail on a lost connection.
func (r *Runner) recomputeOne(ctx context.Context, id snowflake.ID) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recompute panicked: %v", rec)
		}
	}()

	_, err = r.costs.RecomputeOrder(ctx, id)
	return err
}

// RunForever repeats Run on the configured interval until ctx is done.
func (r *Runner) RunForever(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Recompute.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Run(ctx); err != nil {
				r.log.Error("recompute pass aborted", zap.Error(err))
			}
		}
	}
}

var Module = fx.Module("recompute",
	fx.Provide(New),
)
