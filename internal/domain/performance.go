package domain

import "github.com/shopspring/decimal"

// ScopeKind is the level a roll-up is computed at
type ScopeKind string

const (
	ScopeKindZone ScopeKind = "ZONE"
	ScopeKindUser ScopeKind = "USER"
)

// ScopeRef identifies the zone or user a record belongs to
type ScopeRef struct {
	Kind   ScopeKind `json:"kind"`
	ID     uint      `json:"id"`
	Name   string    `json:"name"`
	ZoneID *uint     `json:"zoneId,omitempty"`
}

// PerformanceQuery is a request for a performance roll-up.
// ScopeID narrows the result to one zone or user, ZoneID narrows a user
// roll-up to the members of a zone.
type PerformanceQuery struct {
	TargetPeriod      string     `json:"targetPeriod"`
	PeriodType        PeriodType `json:"periodType"`
	ProductType       *string    `json:"productType,omitempty"`
	ActualValuePeriod *string    `json:"actualValuePeriod,omitempty"`
	ScopeID           *uint      `json:"scopeId,omitempty"`
	ZoneID            *uint      `json:"zoneId,omitempty"`
}

// ScopeMetrics is the wider pipeline picture for a scope and period
type ScopeMetrics struct {
	TotalOffers      int64           `json:"totalOffers"`
	TotalOffersValue decimal.Decimal `json:"totalOffersValue"`
	OrdersReceived   decimal.Decimal `json:"ordersReceived"`
	OpenFunnel       decimal.Decimal `json:"openFunnel"`
	ExpectedOffers   decimal.Decimal `json:"expectedOffers"`
	OrderBooking     int64           `json:"orderBooking"`
	// Degraded marks a zero bundle standing in for a failed query
	Degraded bool `json:"-"`
}

// ZeroMetrics is the bundle reported when metrics cannot be computed
func ZeroMetrics() ScopeMetrics {
	return ScopeMetrics{
		TotalOffersValue: decimal.Zero,
		OrdersReceived:   decimal.Zero,
		OpenFunnel:       decimal.Zero,
		ExpectedOffers:   decimal.Zero,
	}
}

// TargetLine is one stored target row converted to the display period
type TargetLine struct {
	TargetID         uint            `json:"targetId"`
	TargetPeriod     string          `json:"targetPeriod"`
	StoredPeriodType PeriodType      `json:"storedPeriodType"`
	ProductType      *string         `json:"productType,omitempty"`
	Value            decimal.Decimal `json:"value"`
	OfferCount       *int64          `json:"offerCount,omitempty"`
}

// TargetAggregate is the set of target rows matched for a scope. Value and
// OfferCount are normalized from the raw sums, so a yearly total shown
// monthly is divided and rounded once.
type TargetAggregate struct {
	Lines      []TargetLine    `json:"lines"`
	Value      decimal.Decimal `json:"value"`
	OfferCount *int64          `json:"offerCount,omitempty"`
	Normalized bool            `json:"normalized"`
	// Degraded marks an empty aggregate standing in for a failed query
	Degraded bool `json:"-"`
}

// PerScopePerProductRecord is one target row of a scope with its actuals.
// Expected achievement is a grouped-only figure: it needs the scope's metrics
// bundle, so Achievement.ExpectedAchievementPercent is always zero here and
// the record DTO leaves it out.
type PerScopePerProductRecord struct {
	Scope            ScopeRef        `json:"scope"`
	TargetID         *uint           `json:"targetId,omitempty"`
	ProductType      *string         `json:"productType,omitempty"`
	StoredPeriodType *PeriodType     `json:"storedPeriodType,omitempty"`
	TargetValue      decimal.Decimal `json:"targetValue"`
	TargetOfferCount *int64          `json:"targetOfferCount,omitempty"`
	ActualValue      decimal.Decimal `json:"actualValue"`
	ActualOfferCount int             `json:"actualOfferCount"`
	Achievement      Achievement     `json:"achievement"`
}

// ScopeSummaryRecord condenses all target rows of a scope into one record
type ScopeSummaryRecord struct {
	Scope            ScopeRef        `json:"scope"`
	TargetRows       int             `json:"targetRows"`
	Normalized       bool            `json:"normalized"`
	TargetValue      decimal.Decimal `json:"targetValue"`
	TargetOfferCount *int64          `json:"targetOfferCount,omitempty"`
	ActualValue      decimal.Decimal `json:"actualValue"`
	ActualOfferCount int             `json:"actualOfferCount"`
	Metrics          ScopeMetrics    `json:"metrics"`
	Achievement      Achievement     `json:"achievement"`
}

// ScopePerformanceReport is an ungrouped roll-up
type ScopePerformanceReport struct {
	TargetPeriod Period                     `json:"targetPeriod"`
	ActualPeriod Period                     `json:"actualPeriod"`
	Records      []PerScopePerProductRecord `json:"records"`
}

// ScopeSummaryReport is a grouped roll-up
type ScopeSummaryReport struct {
	TargetPeriod Period               `json:"targetPeriod"`
	ActualPeriod Period               `json:"actualPeriod"`
	Records      []ScopeSummaryRecord `json:"records"`
}
