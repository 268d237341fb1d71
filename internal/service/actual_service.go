package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/straye-as/sales-target-api/internal/logger"
	"github.com/straye-as/sales-target-api/internal/repository"
	"go.uber.org/zap"
)

// ActualService computes realized performance: the value and count of
// closed offers placed in a window by the closing-date policy
type ActualService struct {
	offerRepo *repository.OfferRepository
	policy    domain.ClosingPolicy
	logger    *zap.Logger
}

func NewActualService(offerRepo *repository.OfferRepository, logger *zap.Logger) *ActualService {
	return &ActualService{
		offerRepo: offerRepo,
		policy:    domain.DefaultClosingPolicy,
		logger:    logger,
	}
}

// Compute returns the actual value and offer count of a scope in the window,
// optionally restricted to a product type. A failed query yields a degraded zero.
func (s *ActualService) Compute(ctx context.Context, scope repository.Scope, window domain.Period, productType *string) domain.ActualResult {
	offers, err := s.offerRepo.ListClosedCandidates(ctx, scope, window, productType, s.policy)
	if err != nil {
		log := logger.WithScope(logger.FromContext(ctx, s.logger), repository.ScopeLabel(scope), window.Token)
		log.Warn("Actual performance query failed, reporting zero",
			zap.Error(fmt.Errorf("%w: %w", domain.ErrAggregationQueryFailure, err)),
		)
		return domain.ActualResult{Value: decimal.Zero, Degraded: true}
	}
	return s.policy.Aggregate(offers, window)
}
