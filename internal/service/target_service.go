package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/straye-as/sales-target-api/internal/repository"
	"go.uber.org/zap"
)

var monthsPerYear = decimal.NewFromInt(12)

// TargetService loads the targets of a scope and converts them to the display period
type TargetService struct {
	targetRepo *repository.TargetRepository
	logger     *zap.Logger
}

func NewTargetService(targetRepo *repository.TargetRepository, logger *zap.Logger) *TargetService {
	return &TargetService{
		targetRepo: targetRepo,
		logger:     logger,
	}
}

// Aggregate returns the target rows of a scope for the target period. A
// monthly period without monthly rows falls back to the year's yearly rows.
// Yearly rows shown in a monthly display are divided by 12 and rounded to the
// nearest integer; the total is normalized from the raw sum.
func (s *TargetService) Aggregate(ctx context.Context, scope repository.Scope, period domain.Period, display domain.PeriodType, productType *string) (domain.TargetAggregate, error) {
	storedType := period.Type
	targets, err := s.targetRepo.ListForScope(ctx, scope, repository.TargetFilter{
		TargetPeriod: period.Token,
		PeriodType:   period.Type,
		ProductType:  productType,
	})
	if err != nil {
		return domain.TargetAggregate{}, err
	}

	if len(targets) == 0 && period.IsMonthly() {
		storedType = domain.PeriodTypeYearly
		targets, err = s.targetRepo.ListForScope(ctx, scope, repository.TargetFilter{
			TargetPeriod: strconv.Itoa(period.Year()),
			PeriodType:   domain.PeriodTypeYearly,
			ProductType:  productType,
		})
		if err != nil {
			return domain.TargetAggregate{}, err
		}
	}

	normalize := display == domain.PeriodTypeMonthly && storedType == domain.PeriodTypeYearly
	return buildTargetAggregate(targets, normalize), nil
}

func buildTargetAggregate(targets []domain.Target, normalize bool) domain.TargetAggregate {
	aggregate := domain.TargetAggregate{
		Lines:      make([]domain.TargetLine, 0, len(targets)),
		Normalized: normalize,
	}

	rawValue := decimal.Zero
	var rawCount *int64
	for _, target := range targets {
		line := domain.TargetLine{
			TargetID:         target.ID,
			TargetPeriod:     target.TargetPeriod,
			StoredPeriodType: target.PeriodType,
			ProductType:      target.ProductType,
			Value:            normalizeValue(target.TargetValue, normalize),
		}
		if target.TargetOfferCount != nil {
			count := int64(*target.TargetOfferCount)
			line.OfferCount = normalizeCount(&count, normalize)
			if rawCount == nil {
				rawCount = new(int64)
			}
			*rawCount += count
		}
		rawValue = rawValue.Add(target.TargetValue)
		aggregate.Lines = append(aggregate.Lines, line)
	}

	aggregate.Value = normalizeValue(rawValue, normalize)
	aggregate.OfferCount = normalizeCount(rawCount, normalize)
	return aggregate
}

func normalizeValue(value decimal.Decimal, normalize bool) decimal.Decimal {
	if !normalize {
		return value
	}
	return value.Div(monthsPerYear).Round(0)
}

func normalizeCount(count *int64, normalize bool) *int64 {
	if count == nil || !normalize {
		return count
	}
	monthly := decimal.NewFromInt(*count).Div(monthsPerYear).Round(0).IntPart()
	return &monthly
}
