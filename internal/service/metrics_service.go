package service

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/straye-as/sales-target-api/internal/logger"
	"github.com/straye-as/sales-target-api/internal/repository"
	"go.uber.org/zap"
)

// MetricsService composes the pipeline metrics bundle of a scope
type MetricsService struct {
	offerRepo *repository.OfferRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewMetricsService(offerRepo *repository.OfferRepository, logger *zap.Logger) *MetricsService {
	return &MetricsService{
		offerRepo: offerRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the clock used to pick the year-to-date window
func (s *MetricsService) SetClock(now func() time.Time) {
	s.now = now
}

// Compose computes the metrics bundle for a scope and period. Booked orders
// are counted for the current calendar year regardless of the period. Any
// query failure yields the all-zero bundle, marked degraded.
func (s *MetricsService) Compose(ctx context.Context, scope repository.Scope, period domain.Period) domain.ScopeMetrics {
	metrics, err := s.compose(ctx, scope, period)
	if err != nil {
		log := logger.WithScope(logger.FromContext(ctx, s.logger), repository.ScopeLabel(scope), period.Token)
		log.Warn("Metrics query failed, reporting zero metrics",
			zap.Error(fmt.Errorf("%w: %w", domain.ErrAggregationQueryFailure, err)),
		)
		metrics := domain.ZeroMetrics()
		metrics.Degraded = true
		return metrics
	}
	return metrics
}

func (s *MetricsService) compose(ctx context.Context, scope repository.Scope, period domain.Period) (domain.ScopeMetrics, error) {
	created, err := s.offerRepo.GetCreatedOfferStats(ctx, scope, period)
	if err != nil {
		return domain.ScopeMetrics{}, err
	}

	expected, err := s.offerRepo.GetExpectedValue(ctx, scope, period)
	if err != nil {
		return domain.ScopeMetrics{}, err
	}

	booked, err := s.offerRepo.CountBookedOrders(ctx, scope, domain.CalendarYear(s.now().UTC().Year()))
	if err != nil {
		return domain.ScopeMetrics{}, err
	}

	return domain.ScopeMetrics{
		TotalOffers:      created.TotalOffers,
		TotalOffersValue: created.TotalValue,
		OrdersReceived:   created.OrdersReceived,
		OpenFunnel:       created.TotalValue.Sub(created.OrdersReceived),
		ExpectedOffers:   expected,
		OrderBooking:     booked,
	}, nil
}
