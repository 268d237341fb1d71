package domain

import "github.com/shopspring/decimal"

// ClosingDateField names an offer column that can mark an offer as closed
type ClosingDateField string

const (
	ClosingFieldPODate           ClosingDateField = "po_date"
	ClosingFieldBookingDateInSAP ClosingDateField = "booking_date_in_sap"
	ClosingFieldOfferClosedInCRM ClosingDateField = "offer_closed_in_crm"
	ClosingFieldCreatedAt        ClosingDateField = "created_at"
)

// ClosingRule includes an offer in a window when its stage is one of
// Stages and Field is set and inside the window.
type ClosingRule struct {
	Name   string
	Stages []OfferStage
	Field  ClosingDateField
}

func (r ClosingRule) appliesTo(stage OfferStage) bool {
	for _, s := range r.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Includes reports whether the rule places the offer inside the period
func (r ClosingRule) Includes(o *Offer, period Period) bool {
	if !r.appliesTo(o.Stage) {
		return false
	}
	date := o.ClosingDate(r.Field)
	return date != nil && period.Contains(*date)
}

// ClosingPolicy decides which closed offers fall into a period.
// Rules are evaluated in order and the first match wins, so an offer is
// counted at most once. Offers with none of the rule fields set fall back
// to the Fallback field.
type ClosingPolicy struct {
	Stages   []OfferStage
	Rules    []ClosingRule
	Fallback ClosingDateField
}

// DefaultClosingPolicy is the closing-date policy used for actuals
var DefaultClosingPolicy = ClosingPolicy{
	Stages: ClosedStages,
	Rules: []ClosingRule{
		{Name: "po_date", Stages: []OfferStage{OfferStagePOReceived, OfferStageOrderBooked}, Field: ClosingFieldPODate},
		{Name: "booking_date_in_sap", Stages: []OfferStage{OfferStageOrderBooked}, Field: ClosingFieldBookingDateInSAP},
		{Name: "offer_closed_in_crm", Stages: []OfferStage{OfferStageWon}, Field: ClosingFieldOfferClosedInCRM},
	},
	Fallback: ClosingFieldCreatedAt,
}

// RuleFields returns the distinct closing fields referenced by the rules, in rule order
func (p ClosingPolicy) RuleFields() []ClosingDateField {
	seen := make(map[ClosingDateField]bool, len(p.Rules))
	fields := make([]ClosingDateField, 0, len(p.Rules))
	for _, r := range p.Rules {
		if !seen[r.Field] {
			seen[r.Field] = true
			fields = append(fields, r.Field)
		}
	}
	return fields
}

func (p ClosingPolicy) isClosed(stage OfferStage) bool {
	for _, s := range p.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Match returns the name of the rule that places the offer inside the period
func (p ClosingPolicy) Match(o *Offer, period Period) (string, bool) {
	if !p.isClosed(o.Stage) {
		return "", false
	}
	for _, r := range p.Rules {
		if r.Includes(o, period) {
			return r.Name, true
		}
	}

	for _, field := range p.RuleFields() {
		if o.ClosingDate(field) != nil {
			return "", false
		}
	}
	if date := o.ClosingDate(p.Fallback); date != nil && period.Contains(*date) {
		return string(p.Fallback), true
	}
	return "", false
}

// ActualResult is the realized value and offer count for a scope and window
type ActualResult struct {
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
	// Degraded marks a zero result standing in for a failed query
	Degraded bool `json:"-"`
}

// Aggregate sums the realized value of every offer the policy places in the
// period. Offers without a positive value are not counted.
func (p ClosingPolicy) Aggregate(offers []Offer, period Period) ActualResult {
	result := ActualResult{Value: decimal.Zero}
	for i := range offers {
		if _, ok := p.Match(&offers[i], period); !ok {
			continue
		}
		value := offers[i].RealizedValue()
		if !value.IsPositive() {
			continue
		}
		result.Value = result.Value.Add(value)
		result.Count++
	}
	return result
}
