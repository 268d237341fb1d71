package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/straye-as/sales-target-api/internal/domain"
	"gorm.io/gorm"
)

// OfferRepository reads offers for performance roll-ups. Offers are owned
// by the CRM and never written here.
type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// ListClosedCandidates returns the closed offers of a scope that may fall into
// the window under the closing policy. The filter is coarse: any closing
// field in range, or every closing field empty with the fallback in range.
// The policy itself decides the final membership.
func (r *OfferRepository) ListClosedCandidates(ctx context.Context, scope Scope, window domain.Period, productType *string, policy domain.ClosingPolicy) ([]domain.Offer, error) {
	fields := policy.RuleFields()
	conditions := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, 2*len(fields)+2)
	empty := make([]string, 0, len(fields))

	for _, field := range fields {
		conditions = append(conditions, fmt.Sprintf("%s BETWEEN ? AND ?", field))
		args = append(args, window.Start, window.End)
		empty = append(empty, fmt.Sprintf("%s IS NULL", field))
	}
	fallback := fmt.Sprintf("%s BETWEEN ? AND ?", policy.Fallback)
	if len(empty) > 0 {
		fallback = "(" + strings.Join(empty, " AND ") + " AND " + fallback + ")"
	}
	conditions = append(conditions, fallback)
	args = append(args, window.Start, window.End)

	query := r.db.WithContext(ctx).Model(&domain.Offer{}).
		Where("stage IN ?", policy.Stages)
	query = ApplyOfferScope(query, scope)
	query = ApplyProductType(query, productType)
	query = query.Where("("+strings.Join(conditions, " OR ")+")", args...)

	var offers []domain.Offer
	if err := query.Order("id").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to list closed offers for %s: %w", ScopeLabel(scope), err)
	}
	return offers, nil
}
