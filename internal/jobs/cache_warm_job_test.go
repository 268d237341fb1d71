package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWarmer struct {
	queries     []domain.PerformanceQuery
	invalidated int
	zoneErr     error
}

func (f *fakeWarmer) ListZoneSummaries(_ context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error) {
	f.queries = append(f.queries, q)
	if f.zoneErr != nil {
		return nil, f.zoneErr
	}
	return &domain.ScopeSummaryReport{Records: make([]domain.ScopeSummaryRecord, 3)}, nil
}

func (f *fakeWarmer) ListUserSummaries(_ context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error) {
	f.queries = append(f.queries, q)
	return &domain.ScopeSummaryReport{Records: make([]domain.ScopeSummaryRecord, 5)}, nil
}

func (f *fakeWarmer) InvalidateCache(context.Context) error {
	f.invalidated++
	return nil
}

type fakeLocker struct {
	held     bool
	released int
	err      error
}

func (l *fakeLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	if l.held {
		return nil, false, nil
	}
	l.held = true
	return func() {
		l.held = false
		l.released++
	}, true, nil
}

func newTestJob(warmer RollupWarmer, locker Locker) *CacheWarmJob {
	job := NewCacheWarmJob(warmer, locker, zap.NewNop(), time.Second)
	job.now = func() time.Time { return time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC) }
	return job
}

func TestCacheWarmJob_Warm(t *testing.T) {
	warmer := &fakeWarmer{}
	locker := &fakeLocker{}

	result, err := newTestJob(warmer, locker).Warm(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, "2025-03", result.Period)
	assert.Equal(t, 3, result.Zones)
	assert.Equal(t, 5, result.Users)
	assert.Equal(t, 1, warmer.invalidated)
	assert.Equal(t, 1, locker.released)

	require.Len(t, warmer.queries, 2)
	for _, q := range warmer.queries {
		assert.Equal(t, "2025-03", q.TargetPeriod)
		assert.Equal(t, domain.PeriodTypeMonthly, q.PeriodType)
		assert.Nil(t, q.ScopeID)
	}
}

func TestCacheWarmJob_SkipsWhenLocked(t *testing.T) {
	warmer := &fakeWarmer{}
	locker := &fakeLocker{held: true}

	result, err := newTestJob(warmer, locker).Warm(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, warmer.queries)
	assert.Zero(t, warmer.invalidated)
}

func TestCacheWarmJob_Errors(t *testing.T) {
	t.Run("lock failure", func(t *testing.T) {
		_, err := newTestJob(&fakeWarmer{}, &fakeLocker{err: errors.New("redis down")}).Warm(context.Background())
		assert.ErrorContains(t, err, "redis down")
	})

	t.Run("zone roll-up failure releases the lock", func(t *testing.T) {
		locker := &fakeLocker{}
		_, err := newTestJob(&fakeWarmer{zoneErr: errors.New("boom")}, locker).Warm(context.Background())
		assert.ErrorContains(t, err, "warm zone summaries")
		assert.False(t, locker.held)
	})
}

func TestScheduler_Jobs(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "@every 1h", func() {}))
	require.NoError(t, s.AddJob("a", "0 */15 * * * *", func() {}))
	assert.Error(t, s.AddJob("a", "@hourly", func() {}))
	assert.Error(t, s.AddJob("c", "not a cron", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
}

func TestRegisterCacheWarmJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	job, err := RegisterCacheWarmJob(s, &fakeWarmer{}, &fakeLocker{}, zap.NewNop(), "0 */15 * * * *", time.Second, false)
	require.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, []string{CacheWarmJobName}, s.JobNames())
}
