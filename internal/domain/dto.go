package domain

// DTOs for API responses. Monetary values are exposed as plain numbers.

// PeriodDTO describes a resolved period window
type PeriodDTO struct {
	Token string     `json:"token"`
	Type  PeriodType `json:"type"`
	Start string     `json:"start"` // ISO 8601
	End   string     `json:"end"`   // ISO 8601
}

// ReportPeriodDTO describes the target and actual windows of a roll-up
type ReportPeriodDTO struct {
	Target PeriodDTO `json:"target"`
	Actual PeriodDTO `json:"actual"`
}

type ScopeMetricsDTO struct {
	TotalOffers      int64   `json:"totalOffers"`
	TotalOffersValue float64 `json:"totalOffersValue"`
	OrdersReceived   float64 `json:"ordersReceived"`
	OpenFunnel       float64 `json:"openFunnel"`
	ExpectedOffers   float64 `json:"expectedOffers"`
	OrderBooking     int64   `json:"orderBooking"`
}

// PerformanceRecordDTO is one target row of a zone or user with its actuals
type PerformanceRecordDTO struct {
	ScopeType          ScopeKind   `json:"scopeType"`
	ScopeID            uint        `json:"scopeId"`
	ScopeName          string      `json:"scopeName"`
	ZoneID             *uint       `json:"zoneId,omitempty"`
	TargetID           *uint       `json:"targetId,omitempty"`
	ProductType        *string     `json:"productType"`
	StoredPeriodType   *PeriodType `json:"storedPeriodType,omitempty"`
	TargetValue        float64     `json:"targetValue"`
	TargetOfferCount   *int64      `json:"targetOfferCount"`
	ActualValue        float64     `json:"actualValue"`
	ActualOfferCount   int         `json:"actualOfferCount"`
	AchievementPercent float64     `json:"achievementPercent"`
	Variance           float64     `json:"variance"`
	VariancePercent    float64     `json:"variancePercent"`
}

// PerformanceSummaryDTO is the grouped roll-up of a zone or user
type PerformanceSummaryDTO struct {
	ScopeType                  ScopeKind       `json:"scopeType"`
	ScopeID                    uint            `json:"scopeId"`
	ScopeName                  string          `json:"scopeName"`
	ZoneID                     *uint           `json:"zoneId,omitempty"`
	TargetRows                 int             `json:"targetRows"`
	Normalized                 bool            `json:"normalized"`
	TargetValue                float64         `json:"targetValue"`
	TargetOfferCount           *int64          `json:"targetOfferCount"`
	ActualValue                float64         `json:"actualValue"`
	ActualOfferCount           int             `json:"actualOfferCount"`
	AchievementPercent         float64         `json:"achievementPercent"`
	Variance                   float64         `json:"variance"`
	VariancePercent            float64         `json:"variancePercent"`
	ExpectedAchievementPercent float64         `json:"expectedAchievementPercent"`
	Metrics                    ScopeMetricsDTO `json:"metrics"`
}

// PerformanceReportDTO wraps a roll-up response
type PerformanceReportDTO struct {
	Data    interface{}     `json:"data"`
	Period  ReportPeriodDTO `json:"period"`
	Grouped bool            `json:"grouped"`
}

// PerformanceQueryParams are the query string parameters of the performance endpoints
type PerformanceQueryParams struct {
	TargetPeriod      string `validate:"required,max=7"`
	PeriodType        string `validate:"required,oneof=MONTHLY YEARLY"`
	ProductType       string `validate:"omitempty,max=100"`
	ActualValuePeriod string `validate:"omitempty,max=7"`
}
