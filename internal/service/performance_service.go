package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-target-api/internal/cache"
	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/straye-as/sales-target-api/internal/logger"
	"github.com/straye-as/sales-target-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 8

// PerformanceService assembles target versus actual roll-ups for zones and users
type PerformanceService struct {
	zoneRepo       *repository.ZoneRepository
	userRepo       *repository.UserRepository
	actualService  *ActualService
	metricsService *MetricsService
	targetService  *TargetService
	cache          cache.RollupCache
	maxConcurrency int
	logger         *zap.Logger
}

func NewPerformanceService(
	zoneRepo *repository.ZoneRepository,
	userRepo *repository.UserRepository,
	actualService *ActualService,
	metricsService *MetricsService,
	targetService *TargetService,
	rollupCache cache.RollupCache,
	maxConcurrency int,
	logger *zap.Logger,
) *PerformanceService {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	if rollupCache == nil {
		rollupCache = cache.NewNoopRollupCache()
	}
	return &PerformanceService{
		zoneRepo:       zoneRepo,
		userRepo:       userRepo,
		actualService:  actualService,
		metricsService: metricsService,
		targetService:  targetService,
		cache:          rollupCache,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// scopeEntry pairs the query scope of a zone or user with its reference data
type scopeEntry struct {
	scope repository.Scope
	ref   domain.ScopeRef
}

// resolvedQuery holds the windows a request is evaluated over
type resolvedQuery struct {
	query  domain.PerformanceQuery
	target domain.Period
	actual domain.Period
}

// resolveQuery resolves the target period and the actuals window. The
// actuals window defaults to the target period and must lie inside it.
func resolveQuery(q domain.PerformanceQuery) (resolvedQuery, error) {
	target, err := domain.ResolvePeriod(q.TargetPeriod, q.PeriodType)
	if err != nil {
		return resolvedQuery{}, err
	}

	actual := target
	if q.ActualValuePeriod != nil && *q.ActualValuePeriod != "" {
		kind, err := domain.PeriodTypeOf(*q.ActualValuePeriod)
		if err != nil {
			return resolvedQuery{}, err
		}
		actual, err = domain.ResolvePeriod(*q.ActualValuePeriod, kind)
		if err != nil {
			return resolvedQuery{}, err
		}
		if !target.Covers(actual) {
			return resolvedQuery{}, fmt.Errorf("%w: %w: %s is not inside %s",
				domain.ErrInvalidPeriodFormat, ErrActualPeriodOutsideTarget, actual.Token, target.Token)
		}
	}

	return resolvedQuery{query: q, target: target, actual: actual}, nil
}

// ListZonePerformance returns one record per zone target row
func (s *PerformanceService) ListZonePerformance(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopePerformanceReport, error) {
	return s.performance(ctx, domain.ScopeKindZone, q)
}

// ListUserPerformance returns one record per user target row
func (s *PerformanceService) ListUserPerformance(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopePerformanceReport, error) {
	return s.performance(ctx, domain.ScopeKindUser, q)
}

// ListZoneSummaries returns one summary per zone with its metrics bundle
func (s *PerformanceService) ListZoneSummaries(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error) {
	return s.summaries(ctx, domain.ScopeKindZone, q)
}

// ListUserSummaries returns one summary per sales user with its metrics bundle
func (s *PerformanceService) ListUserSummaries(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error) {
	return s.summaries(ctx, domain.ScopeKindUser, q)
}

func (s *PerformanceService) performance(ctx context.Context, kind domain.ScopeKind, q domain.PerformanceQuery) (*domain.ScopePerformanceReport, error) {
	rq, err := resolveQuery(q)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(string(kind), "records", q)
	var cached domain.ScopePerformanceReport
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := s.enumerate(ctx, kind, q)
	if err != nil {
		return nil, err
	}

	var degraded atomic.Bool
	perScope := make([][]domain.PerScopePerProductRecord, len(entries))
	s.fanOut(len(entries), func(i int) {
		records, partial := s.perProductRecords(ctx, entries[i], rq)
		perScope[i] = records
		if partial {
			degraded.Store(true)
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]domain.PerScopePerProductRecord, 0, len(entries))
	for _, scoped := range perScope {
		records = append(records, scoped...)
	}

	report := &domain.ScopePerformanceReport{
		TargetPeriod: rq.target,
		ActualPeriod: rq.actual,
		Records:      records,
	}
	s.cacheUnlessDegraded(ctx, key, report, degraded.Load())
	return report, nil
}

func (s *PerformanceService) summaries(ctx context.Context, kind domain.ScopeKind, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error) {
	rq, err := resolveQuery(q)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(string(kind), "summary", q)
	var cached domain.ScopeSummaryReport
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := s.enumerate(ctx, kind, q)
	if err != nil {
		return nil, err
	}

	var degraded atomic.Bool
	records := make([]domain.ScopeSummaryRecord, len(entries))
	s.fanOut(len(entries), func(i int) {
		record, partial := s.summaryRecord(ctx, entries[i], rq)
		records[i] = record
		if partial {
			degraded.Store(true)
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &domain.ScopeSummaryReport{
		TargetPeriod: rq.target,
		ActualPeriod: rq.actual,
		Records:      records,
	}
	s.cacheUnlessDegraded(ctx, key, report, degraded.Load())
	return report, nil
}

// fanOut runs fn for every index with bounded parallelism. fn writes its
// result by index, so output order follows enumeration order.
func (s *PerformanceService) fanOut(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *PerformanceService) enumerate(ctx context.Context, kind domain.ScopeKind, q domain.PerformanceQuery) ([]scopeEntry, error) {
	switch kind {
	case domain.ScopeKindZone:
		zones, err := s.zoneRepo.ListActive(ctx, q.ScopeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScopeEnumeration, err)
		}
		if q.ScopeID != nil && len(zones) == 0 {
			return nil, fmt.Errorf("%w: zone %d", domain.ErrScopeNotFound, *q.ScopeID)
		}
		entries := make([]scopeEntry, 0, len(zones))
		for _, zone := range zones {
			entries = append(entries, scopeEntry{
				scope: repository.ZoneScope(zone.ID),
				ref:   domain.ScopeRef{Kind: domain.ScopeKindZone, ID: zone.ID, Name: zone.Name},
			})
		}
		return entries, nil

	case domain.ScopeKindUser:
		users, err := s.userRepo.ListActiveSalesUsers(ctx, repository.SalesUserFilter{ID: q.ScopeID, ZoneID: q.ZoneID})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScopeEnumeration, err)
		}
		if q.ScopeID != nil && len(users) == 0 {
			return nil, fmt.Errorf("%w: user %d", domain.ErrScopeNotFound, *q.ScopeID)
		}
		entries := make([]scopeEntry, 0, len(users))
		for _, user := range users {
			entries = append(entries, scopeEntry{
				scope: repository.UserScope(user.ID),
				ref:   domain.ScopeRef{Kind: domain.ScopeKindUser, ID: user.ID, Name: user.Name, ZoneID: user.ZoneID},
			})
		}
		return entries, nil
	}

	return nil, fmt.Errorf("unknown scope kind %q", kind)
}

// loadTargets treats a failed target query as a scope without targets
func (s *PerformanceService) loadTargets(ctx context.Context, entry scopeEntry, rq resolvedQuery) domain.TargetAggregate {
	targets, err := s.targetService.Aggregate(ctx, entry.scope, rq.target, rq.actual.Type, rq.query.ProductType)
	if err != nil {
		log := logger.WithScope(logger.FromContext(ctx, s.logger), repository.ScopeLabel(entry.scope), rq.target.Token)
		log.Warn("Target query failed, treating scope as without targets",
			zap.Error(fmt.Errorf("%w: %w", domain.ErrAggregationQueryFailure, err)),
		)
		return domain.TargetAggregate{Value: decimal.Zero, Degraded: true}
	}
	return targets
}

// perProductRecords also reports whether any query of the scope degraded to zero
func (s *PerformanceService) perProductRecords(ctx context.Context, entry scopeEntry, rq resolvedQuery) ([]domain.PerScopePerProductRecord, bool) {
	targets := s.loadTargets(ctx, entry, rq)

	if len(targets.Lines) == 0 {
		actual := s.actualService.Compute(ctx, entry.scope, rq.actual, rq.query.ProductType)
		return []domain.PerScopePerProductRecord{{
			Scope:            entry.ref,
			ProductType:      rq.query.ProductType,
			TargetValue:      decimal.Zero,
			ActualValue:      actual.Value,
			ActualOfferCount: actual.Count,
			Achievement:      domain.CalculateAchievement(decimal.Zero, actual.Value, decimal.Zero),
		}}, targets.Degraded || actual.Degraded
	}

	degraded := false
	records := make([]domain.PerScopePerProductRecord, 0, len(targets.Lines))
	for _, line := range targets.Lines {
		line := line
		actual := s.actualService.Compute(ctx, entry.scope, rq.actual, line.ProductType)
		degraded = degraded || actual.Degraded
		records = append(records, domain.PerScopePerProductRecord{
			Scope:            entry.ref,
			TargetID:         &line.TargetID,
			ProductType:      line.ProductType,
			StoredPeriodType: &line.StoredPeriodType,
			TargetValue:      line.Value,
			TargetOfferCount: line.OfferCount,
			ActualValue:      actual.Value,
			ActualOfferCount: actual.Count,
			Achievement:      domain.CalculateAchievement(line.Value, actual.Value, decimal.Zero),
		})
	}
	return records, degraded
}

func (s *PerformanceService) summaryRecord(ctx context.Context, entry scopeEntry, rq resolvedQuery) (domain.ScopeSummaryRecord, bool) {
	targets := s.loadTargets(ctx, entry, rq)

	actual := domain.ActualResult{Value: decimal.Zero}
	if len(targets.Lines) == 0 {
		actual = s.actualService.Compute(ctx, entry.scope, rq.actual, rq.query.ProductType)
	} else {
		for _, line := range targets.Lines {
			lineActual := s.actualService.Compute(ctx, entry.scope, rq.actual, line.ProductType)
			actual.Value = actual.Value.Add(lineActual.Value)
			actual.Count += lineActual.Count
			actual.Degraded = actual.Degraded || lineActual.Degraded
		}
	}

	metrics := s.metricsService.Compose(ctx, entry.scope, rq.actual)
	degraded := targets.Degraded || actual.Degraded || metrics.Degraded

	return domain.ScopeSummaryRecord{
		Scope:            entry.ref,
		TargetRows:       len(targets.Lines),
		Normalized:       targets.Normalized,
		TargetValue:      targets.Value,
		TargetOfferCount: targets.OfferCount,
		ActualValue:      actual.Value,
		ActualOfferCount: actual.Count,
		Metrics:          metrics,
		Achievement:      domain.CalculateAchievement(targets.Value, actual.Value, metrics.ExpectedOffers),
	}, degraded
}

func (s *PerformanceService) readCache(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Roll-up cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

// cacheUnlessDegraded stores a report only when every scope was computed from
// successful queries; degraded zeros are recomputed on the next request
func (s *PerformanceService) cacheUnlessDegraded(ctx context.Context, key string, report interface{}, degraded bool) {
	if degraded {
		s.logger.Debug("Roll-up degraded, skipping cache write", zap.String("key", key))
		return
	}
	s.writeCache(ctx, key, report)
}

func (s *PerformanceService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Roll-up cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateCache drops every cached roll-up
func (s *PerformanceService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
