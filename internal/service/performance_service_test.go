package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-target-api/internal/cache"
	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/straye-as/sales-target-api/internal/repository"
	"github.com/straye-as/sales-target-api/internal/service"
	"github.com/straye-as/sales-target-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memoryCache is an in-process RollupCache that records writes
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	c.sets++
	return nil
}

func (c *memoryCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) Enabled() bool { return true }

func (c *memoryCache) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}

func newPerformanceService(db *gorm.DB, rollupCache *memoryCache) *service.PerformanceService {
	log := zap.NewNop()
	offerRepo := repository.NewOfferRepository(db)
	metrics := service.NewMetricsService(offerRepo, log)
	metrics.SetClock(func() time.Time { return testutil.Date(2025, time.March, 31) })

	var c cache.RollupCache
	if rollupCache != nil {
		c = rollupCache
	}

	return service.NewPerformanceService(
		repository.NewZoneRepository(db),
		repository.NewUserRepository(db),
		service.NewActualService(offerRepo, log),
		metrics,
		service.NewTargetService(repository.NewTargetRepository(db), log),
		c,
		4,
		log,
	)
}

func monthlyQuery(token string) domain.PerformanceQuery {
	return domain.PerformanceQuery{TargetPeriod: token, PeriodType: domain.PeriodTypeMonthly}
}

func TestPerformanceService_YearlyTargetMonthlyRollup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)
	ctx := context.Background()

	zone := testutil.CreateZone(t, db, "North")
	owner := testutil.CreateUser(t, db, "Ola Nordmann", domain.UserRoleZoneUser, &zone.ID)
	testutil.CreateZoneTarget(t, db, zone.ID, "2025", domain.PeriodTypeYearly, nil, 120000)
	seedMarchClosings(t, db, zone.ID, owner.ID)

	report, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	require.Len(t, report.Records, 1)

	record := report.Records[0]
	assert.Equal(t, zone.ID, record.Scope.ID)
	assert.Equal(t, "North", record.Scope.Name)
	assert.True(t, record.Normalized)
	assert.Equal(t, 1, record.TargetRows)
	assert.True(t, decimal.NewFromInt(10000).Equal(record.TargetValue), record.TargetValue.String())
	assert.True(t, decimal.NewFromInt(30000).Equal(record.ActualValue), record.ActualValue.String())
	assert.Equal(t, 3, record.ActualOfferCount)
	assert.InDelta(t, 300.0, record.Achievement.AchievementPercent, 1e-9)
	assert.True(t, decimal.NewFromInt(20000).Equal(record.Achievement.Variance))

	assert.Equal(t, "2025-03", report.TargetPeriod.Token)
	assert.Equal(t, "2025-03", report.ActualPeriod.Token)
}

func TestPerformanceService_PerProductRecords(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)
	ctx := context.Background()

	north := testutil.CreateZone(t, db, "North")
	south := testutil.CreateZone(t, db, "South")
	owner := testutil.CreateUser(t, db, "Ola Nordmann", domain.UserRoleZoneUser, &north.ID)
	overall := testutil.CreateZoneTarget(t, db, north.ID, "2025", domain.PeriodTypeYearly, nil, 120000)
	pumps := testutil.CreateZoneTarget(t, db, north.ID, "2025", domain.PeriodTypeYearly, testutil.Ptr("PUMPS"), 24000)
	seedMarchClosings(t, db, north.ID, owner.ID)

	pumpDate := testutil.Date(2025, time.March, 14)
	testutil.CreateOffer(t, db, domain.Offer{
		Stage: domain.OfferStageOrderBooked, ZoneID: north.ID, CreatedByID: owner.ID,
		ProductType: testutil.Ptr("PUMPS"), POValue: testutil.Money(1000), PODate: &pumpDate,
	})
	// expected in March, which only feeds grouped summaries
	testutil.CreateOffer(t, db, domain.Offer{
		Stage: domain.OfferStageNegotiation, ZoneID: north.ID, CreatedByID: owner.ID,
		OfferValue: testutil.Money(5000), ProbabilityPercentage: testutil.Ptr(80),
		POExpectedMonth: testutil.Ptr("2025-03"),
	})

	report, err := svc.ListZonePerformance(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	require.Len(t, report.Records, 3)

	t.Run("overall row first", func(t *testing.T) {
		record := report.Records[0]
		require.NotNil(t, record.TargetID)
		assert.Equal(t, overall.ID, *record.TargetID)
		assert.Nil(t, record.ProductType)
		require.NotNil(t, record.StoredPeriodType)
		assert.Equal(t, domain.PeriodTypeYearly, *record.StoredPeriodType)
		assert.True(t, decimal.NewFromInt(10000).Equal(record.TargetValue))
		assert.True(t, decimal.NewFromInt(31000).Equal(record.ActualValue), record.ActualValue.String())
		assert.InDelta(t, 310.0, record.Achievement.AchievementPercent, 1e-9)
		assert.Zero(t, record.Achievement.ExpectedAchievementPercent)
	})

	t.Run("product row uses its own actuals", func(t *testing.T) {
		record := report.Records[1]
		require.NotNil(t, record.TargetID)
		assert.Equal(t, pumps.ID, *record.TargetID)
		require.NotNil(t, record.ProductType)
		assert.Equal(t, "PUMPS", *record.ProductType)
		assert.True(t, decimal.NewFromInt(2000).Equal(record.TargetValue))
		assert.True(t, decimal.NewFromInt(1000).Equal(record.ActualValue))
		assert.InDelta(t, 50.0, record.Achievement.AchievementPercent, 1e-9)
	})

	t.Run("zone without targets", func(t *testing.T) {
		record := report.Records[2]
		assert.Equal(t, south.ID, record.Scope.ID)
		assert.Nil(t, record.TargetID)
		assert.True(t, record.TargetValue.IsZero())
		assert.True(t, record.ActualValue.IsZero())
		assert.Zero(t, record.Achievement.AchievementPercent)
	})
}

func TestPerformanceService_ZeroTargetScopeReportsActuals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)

	zone := testutil.CreateZone(t, db, "North")
	owner := testutil.CreateUser(t, db, "Ola Nordmann", domain.UserRoleZoneUser, &zone.ID)
	seedMarchClosings(t, db, zone.ID, owner.ID)

	report, err := svc.ListZoneSummaries(context.Background(), monthlyQuery("2025-03"))
	require.NoError(t, err)
	require.Len(t, report.Records, 1)

	record := report.Records[0]
	assert.Equal(t, 0, record.TargetRows)
	assert.True(t, record.TargetValue.IsZero())
	assert.True(t, decimal.NewFromInt(30000).Equal(record.ActualValue))
	assert.Zero(t, record.Achievement.AchievementPercent)
	assert.Zero(t, record.Achievement.VariancePercent)
}

func TestPerformanceService_ScopeFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)
	ctx := context.Background()

	north := testutil.CreateZone(t, db, "North")
	south := testutil.CreateZone(t, db, "South")
	closed := testutil.CreateZone(t, db, "Closed")
	testutil.Deactivate(t, db, closed)

	testutil.CreateUser(t, db, "Admin", domain.UserRoleAdmin, nil)
	manager := testutil.CreateUser(t, db, "Berit Manager", domain.UserRoleZoneManager, &north.ID)
	seller := testutil.CreateUser(t, db, "Anders Seller", domain.UserRoleZoneUser, &south.ID)
	gone := testutil.CreateUser(t, db, "Gone Seller", domain.UserRoleZoneUser, &south.ID)
	testutil.Deactivate(t, db, gone)

	t.Run("active zones in name order", func(t *testing.T) {
		report, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
		require.NoError(t, err)
		require.Len(t, report.Records, 2)
		assert.Equal(t, "North", report.Records[0].Scope.Name)
		assert.Equal(t, "South", report.Records[1].Scope.Name)
	})

	t.Run("single zone", func(t *testing.T) {
		q := monthlyQuery("2025-03")
		q.ScopeID = &south.ID
		report, err := svc.ListZoneSummaries(ctx, q)
		require.NoError(t, err)
		require.Len(t, report.Records, 1)
		assert.Equal(t, south.ID, report.Records[0].Scope.ID)
	})

	t.Run("inactive zone is not found", func(t *testing.T) {
		q := monthlyQuery("2025-03")
		q.ScopeID = &closed.ID
		_, err := svc.ListZoneSummaries(ctx, q)
		assert.ErrorIs(t, err, domain.ErrScopeNotFound)
	})

	t.Run("sales users only", func(t *testing.T) {
		report, err := svc.ListUserSummaries(ctx, monthlyQuery("2025-03"))
		require.NoError(t, err)
		require.Len(t, report.Records, 2)
		assert.Equal(t, seller.ID, report.Records[0].Scope.ID)
		assert.Equal(t, manager.ID, report.Records[1].Scope.ID)
		assert.Equal(t, domain.ScopeKindUser, report.Records[0].Scope.Kind)
		require.NotNil(t, report.Records[0].Scope.ZoneID)
		assert.Equal(t, south.ID, *report.Records[0].Scope.ZoneID)
	})

	t.Run("users of a zone", func(t *testing.T) {
		q := monthlyQuery("2025-03")
		q.ZoneID = &north.ID
		report, err := svc.ListUserPerformance(ctx, q)
		require.NoError(t, err)
		require.Len(t, report.Records, 1)
		assert.Equal(t, manager.ID, report.Records[0].Scope.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		q := monthlyQuery("2025-03")
		missing := uint(9999)
		q.ScopeID = &missing
		_, err := svc.ListUserPerformance(ctx, q)
		assert.ErrorIs(t, err, domain.ErrScopeNotFound)
	})
}

func TestPerformanceService_UserTargets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)

	zone := testutil.CreateZone(t, db, "North")
	owner := testutil.CreateUser(t, db, "Ola Nordmann", domain.UserRoleZoneUser, &zone.ID)
	testutil.CreateUserTarget(t, db, owner.ID, "2025-03", domain.PeriodTypeMonthly, nil, 15000)
	seedMarchClosings(t, db, zone.ID, owner.ID)

	report, err := svc.ListUserSummaries(context.Background(), monthlyQuery("2025-03"))
	require.NoError(t, err)
	require.Len(t, report.Records, 1)

	record := report.Records[0]
	assert.False(t, record.Normalized)
	assert.True(t, decimal.NewFromInt(15000).Equal(record.TargetValue))
	assert.InDelta(t, 200.0, record.Achievement.AchievementPercent, 1e-9)
	assert.InDelta(t, 100.0, record.Achievement.VariancePercent, 1e-9)
}

func TestPerformanceService_ActualValuePeriod(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)
	ctx := context.Background()

	zone := testutil.CreateZone(t, db, "North")
	owner := testutil.CreateUser(t, db, "Ola Nordmann", domain.UserRoleZoneUser, &zone.ID)
	testutil.CreateZoneTarget(t, db, zone.ID, "2025", domain.PeriodTypeYearly, nil, 120000)
	seedMarchClosings(t, db, zone.ID, owner.ID)

	t.Run("month inside a yearly target", func(t *testing.T) {
		q := domain.PerformanceQuery{
			TargetPeriod:      "2025",
			PeriodType:        domain.PeriodTypeYearly,
			ActualValuePeriod: testutil.Ptr("2025-03"),
		}
		report, err := svc.ListZoneSummaries(ctx, q)
		require.NoError(t, err)
		require.Len(t, report.Records, 1)

		assert.Equal(t, "2025", report.TargetPeriod.Token)
		assert.Equal(t, "2025-03", report.ActualPeriod.Token)
		assert.True(t, decimal.NewFromInt(10000).Equal(report.Records[0].TargetValue))
		assert.True(t, decimal.NewFromInt(30000).Equal(report.Records[0].ActualValue))
	})

	t.Run("month outside the target period", func(t *testing.T) {
		q := monthlyQuery("2025-03")
		q.ActualValuePeriod = testutil.Ptr("2025-04")
		_, err := svc.ListZoneSummaries(ctx, q)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriodFormat)
		assert.ErrorIs(t, err, service.ErrActualPeriodOutsideTarget)
	})

	t.Run("malformed actual period", func(t *testing.T) {
		q := monthlyQuery("2025-03")
		q.ActualValuePeriod = testutil.Ptr("March")
		_, err := svc.ListZonePerformance(ctx, q)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriodFormat)
	})
}

func TestPerformanceService_InvalidPeriod(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)

	for _, q := range []domain.PerformanceQuery{
		{TargetPeriod: "2025-13", PeriodType: domain.PeriodTypeMonthly},
		{TargetPeriod: "2025", PeriodType: domain.PeriodTypeMonthly},
		{TargetPeriod: "2025-03", PeriodType: domain.PeriodTypeYearly},
	} {
		_, err := svc.ListZoneSummaries(context.Background(), q)
		assert.True(t, errors.Is(err, domain.ErrInvalidPeriodFormat), "%+v: %v", q, err)
	}
}

func TestPerformanceService_StableOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPerformanceService(db, nil)
	ctx := context.Background()

	for _, name := range []string{"Vest", "Nord", "Sor", "Ost", "Midt", "Innlandet"} {
		testutil.CreateZone(t, db, name)
	}

	first, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	second, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)

	names := make([]string, 0, len(first.Records))
	for i := range first.Records {
		names = append(names, first.Records[i].Scope.Name)
		assert.Equal(t, first.Records[i].Scope.ID, second.Records[i].Scope.ID)
	}
	assert.Equal(t, []string{"Innlandet", "Midt", "Nord", "Ost", "Sor", "Vest"}, names)
}

func TestPerformanceService_Cache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rollupCache := newMemoryCache()
	svc := newPerformanceService(db, rollupCache)
	ctx := context.Background()

	zone := testutil.CreateZone(t, db, "North")
	testutil.CreateZoneTarget(t, db, zone.ID, "2025-03", domain.PeriodTypeMonthly, nil, 5000)

	first, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, 1, rollupCache.sets)

	// served from the cache, so the new zone is not visible yet
	testutil.CreateZone(t, db, "South")
	cached, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	require.Len(t, cached.Records, 1)
	assert.True(t, first.Records[0].TargetValue.Equal(cached.Records[0].TargetValue))

	require.NoError(t, svc.InvalidateCache(ctx))
	fresh, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	assert.Len(t, fresh.Records, 2)

	t.Run("cancelled requests are not cached", func(t *testing.T) {
		before := rollupCache.sets
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.ListZonePerformance(cancelled, monthlyQuery("2025-04"))
		assert.Error(t, err)
		assert.Equal(t, before, rollupCache.sets)
	})
}

func TestPerformanceService_DegradedResultsAreNotCached(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rollupCache := newMemoryCache()
	svc := newPerformanceService(db, rollupCache)
	ctx := context.Background()

	zone := testutil.CreateZone(t, db, "North")
	owner := testutil.CreateUser(t, db, "Ola Nordmann", domain.UserRoleZoneUser, &zone.ID)
	testutil.CreateZoneTarget(t, db, zone.ID, "2025", domain.PeriodTypeYearly, nil, 120000)
	seedMarchClosings(t, db, zone.ID, owner.ID)

	// offers unavailable: actuals and metrics fall back to zero
	require.NoError(t, db.Exec("ALTER TABLE offers RENAME TO offers_offline").Error)
	outage, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	require.Len(t, outage.Records, 1)
	assert.True(t, outage.Records[0].ActualValue.IsZero())
	assert.Equal(t, 0, rollupCache.sets)

	_, err = svc.ListZonePerformance(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	assert.Equal(t, 0, rollupCache.sets)

	require.NoError(t, db.Exec("ALTER TABLE offers_offline RENAME TO offers").Error)
	recovered, err := svc.ListZoneSummaries(ctx, monthlyQuery("2025-03"))
	require.NoError(t, err)
	require.Len(t, recovered.Records, 1)
	assert.True(t, decimal.NewFromInt(30000).Equal(recovered.Records[0].ActualValue), recovered.Records[0].ActualValue.String())
	assert.Equal(t, 1, rollupCache.sets)
}
