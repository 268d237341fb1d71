package repository

// Aggregates behind the scope metrics bundle. Each query is scoped to one
// zone or user and returns zero sums when nothing matches.

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-target-api/internal/domain"
)

// CreatedOfferStats summarizes offers created inside a period
type CreatedOfferStats struct {
	TotalOffers    int64
	TotalValue     decimal.Decimal
	OrdersReceived decimal.Decimal
}

// GetCreatedOfferStats counts and sums the offers a scope created in the period.
// OrdersReceived sums the offer value, not the purchase order value, of WON offers.
func (r *OfferRepository) GetCreatedOfferStats(ctx context.Context, scope Scope, period domain.Period) (*CreatedOfferStats, error) {
	var row struct {
		TotalOffers    int64
		TotalValue     decimal.Decimal
		OrdersReceived decimal.Decimal
	}

	query := r.db.WithContext(ctx).Model(&domain.Offer{}).
		Select(
			"COUNT(*) AS total_offers, "+
				"COALESCE(SUM(offer_value), 0) AS total_value, "+
				"COALESCE(SUM(CASE WHEN stage = ? THEN offer_value ELSE 0 END), 0) AS orders_received",
			domain.OfferStageWon,
		).
		Where("created_at BETWEEN ? AND ?", period.Start, period.End)
	query = ApplyOfferScope(query, scope)

	if err := query.Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to get created offer stats for %s: %w", ScopeLabel(scope), err)
	}

	return &CreatedOfferStats{
		TotalOffers:    row.TotalOffers,
		TotalValue:     row.TotalValue,
		OrdersReceived: row.OrdersReceived,
	}, nil
}

// GetExpectedValue sums offer_value * probability / 100 over offers expected
// to close in the period with a probability above 50 percent. Creation date
// is not considered.
func (r *OfferRepository) GetExpectedValue(ctx context.Context, scope Scope, period domain.Period) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}

	query := r.db.WithContext(ctx).Model(&domain.Offer{}).
		Select("COALESCE(SUM(offer_value * probability_percentage / 100.0), 0) AS total").
		Where("probability_percentage > ?", 50)
	if period.IsMonthly() {
		query = query.Where("po_expected_month = ?", period.Token)
	} else {
		query = query.Where("po_expected_month LIKE ?", period.Token+"-%")
	}
	query = ApplyOfferScope(query, scope)

	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to get expected value for %s: %w", ScopeLabel(scope), err)
	}
	return row.Total, nil
}

// CountBookedOrders counts ORDER_BOOKED offers booked in SAP inside the window
func (r *OfferRepository) CountBookedOrders(ctx context.Context, scope Scope, window domain.Period) (int64, error) {
	var count int64

	query := r.db.WithContext(ctx).Model(&domain.Offer{}).
		Where("stage = ?", domain.OfferStageOrderBooked).
		Where("booking_date_in_sap BETWEEN ? AND ?", window.Start, window.End)
	query = ApplyOfferScope(query, scope)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count booked orders for %s: %w", ScopeLabel(scope), err)
	}
	return count, nil
}
