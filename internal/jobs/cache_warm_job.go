package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/sales-target-api/internal/domain"
	"go.uber.org/zap"
)

// CacheWarmJobName is the name of the roll-up cache warm job
const CacheWarmJobName = "rollup_cache_warm"

const cacheWarmLockName = "rollup-cache-warm"

// RollupWarmer computes the roll-ups the warm job precomputes
type RollupWarmer interface {
	ListZoneSummaries(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error)
	ListUserSummaries(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error)
	InvalidateCache(ctx context.Context) error
}

// Locker takes a lock shared by every API instance
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (unlock func(), ok bool, err error)
}

// CacheWarmJob drops cached roll-ups and recomputes the grouped zone and user
// summaries of the current month. Only the instance holding the warm lock runs.
type CacheWarmJob struct {
	warmer  RollupWarmer
	locker  Locker
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewCacheWarmJob(warmer RollupWarmer, locker Locker, logger *zap.Logger, timeout time.Duration) *CacheWarmJob {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &CacheWarmJob{
		warmer:  warmer,
		locker:  locker,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// WarmResult reports what a run computed
type WarmResult struct {
	Period  string
	Zones   int
	Users   int
	Skipped bool
}

// Run executes one warm cycle and logs the outcome
func (j *CacheWarmJob) Run() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result, err := j.Warm(ctx)
	if err != nil {
		j.logger.Error("roll-up cache warm failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	if result.Skipped {
		j.logger.Info("roll-up cache warm skipped, another instance holds the lock")
		return
	}

	j.logger.Info("roll-up cache warmed",
		zap.String("period", result.Period),
		zap.Int("zones", result.Zones),
		zap.Int("users", result.Users),
		zap.Duration("duration", time.Since(start)))
}

// Warm takes the warm lock, invalidates the cache and recomputes the current
// month's grouped roll-ups
func (j *CacheWarmJob) Warm(ctx context.Context) (WarmResult, error) {
	unlock, ok, err := j.locker.TryLock(ctx, cacheWarmLockName, j.timeout)
	if err != nil {
		return WarmResult{}, fmt.Errorf("acquire warm lock: %w", err)
	}
	if !ok {
		return WarmResult{Skipped: true}, nil
	}
	defer unlock()

	month := domain.CalendarMonth(j.now())
	q := domain.PerformanceQuery{TargetPeriod: month.Token, PeriodType: domain.PeriodTypeMonthly}
	result := WarmResult{Period: month.Token}

	if err := j.warmer.InvalidateCache(ctx); err != nil {
		return result, fmt.Errorf("invalidate roll-up cache: %w", err)
	}

	zones, err := j.warmer.ListZoneSummaries(ctx, q)
	if err != nil {
		return result, fmt.Errorf("warm zone summaries: %w", err)
	}
	result.Zones = len(zones.Records)

	users, err := j.warmer.ListUserSummaries(ctx, q)
	if err != nil {
		return result, fmt.Errorf("warm user summaries: %w", err)
	}
	result.Users = len(users.Records)

	return result, nil
}

// RegisterCacheWarmJob registers the warm job and optionally runs it once in
// the background right away
func RegisterCacheWarmJob(scheduler *Scheduler, warmer RollupWarmer, locker Locker, logger *zap.Logger, cronExpr string, timeout time.Duration, runOnStartup bool) (*CacheWarmJob, error) {
	job := NewCacheWarmJob(warmer, locker, logger.Named(CacheWarmJobName), timeout)
	if err := scheduler.AddJob(CacheWarmJobName, cronExpr, job.Run); err != nil {
		return nil, err
	}
	if runOnStartup {
		go job.Run()
	}
	return job, nil
}
