package repository

import (
	"context"
	"fmt"

	"github.com/straye-as/sales-target-api/internal/domain"
	"gorm.io/gorm"
)

// TargetRepository reads zone and user targets through a shared projection
type TargetRepository struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) *TargetRepository {
	return &TargetRepository{db: db}
}

// TargetFilter selects the stored target rows of a scope
type TargetFilter struct {
	TargetPeriod string
	PeriodType   domain.PeriodType
	ProductType  *string
}

// ListForScope returns the target rows of a scope for a period. The overall
// row sorts first, then product types alphabetically.
func (r *TargetRepository) ListForScope(ctx context.Context, scope Scope, filter TargetFilter) ([]domain.Target, error) {
	var targets []domain.Target

	query := r.db.WithContext(ctx).Table(scope.TargetTable()).
		Select("id, "+scope.TargetColumn()+" AS scope_id, target_period, period_type, product_type, target_value, target_offer_count").
		Where(scope.TargetColumn()+" = ?", scope.ID()).
		Where("target_period = ? AND period_type = ?", filter.TargetPeriod, filter.PeriodType)
	query = ApplyProductType(query, filter.ProductType)

	err := query.
		Order("CASE WHEN product_type IS NULL THEN 0 ELSE 1 END, product_type, id").
		Find(&targets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list targets for %s: %w", ScopeLabel(scope), err)
	}
	return targets, nil
}
