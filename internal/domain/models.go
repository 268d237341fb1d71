package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole is the sales organisation role of a user
type UserRole string

const (
	UserRoleAdmin       UserRole = "ADMIN"
	UserRoleZoneManager UserRole = "ZONE_MANAGER"
	UserRoleZoneUser    UserRole = "ZONE_USER"
)

// SalesRoles are the roles that carry personal targets
var SalesRoles = []UserRole{UserRoleZoneUser, UserRoleZoneManager}

// IsValid reports whether the role is one of the known roles
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleZoneManager, UserRoleZoneUser:
		return true
	}
	return false
}

// OfferStage is the lifecycle stage of an offer
type OfferStage string

const (
	OfferStageQuotationSent OfferStage = "QUOTATION_SENT"
	OfferStageNegotiation   OfferStage = "NEGOTIATION"
	OfferStageWon           OfferStage = "WON"
	OfferStageLost          OfferStage = "LOST"
	OfferStagePOReceived    OfferStage = "PO_RECEIVED"
	OfferStageOrderBooked   OfferStage = "ORDER_BOOKED"
)

// ClosedStages are the stages that count towards actual performance
var ClosedStages = []OfferStage{OfferStageWon, OfferStagePOReceived, OfferStageOrderBooked}

// IsClosed reports whether the stage is counted as closed business
func (s OfferStage) IsClosed() bool {
	for _, closed := range ClosedStages {
		if s == closed {
			return true
		}
	}
	return false
}

// Zone is a sales territory
type Zone struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// User is a member of the sales organisation
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Role      UserRole  `gorm:"type:varchar(50);not null;index" json:"role"`
	ZoneID    *uint     `gorm:"column:zone_id;index" json:"zoneId,omitempty"`
	Zone      *Zone     `gorm:"foreignKey:ZoneID" json:"-"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// Offer is a commercial proposal tracked through its stages.
// Monetary columns are nullable; a missing value is treated as zero.
type Offer struct {
	ID                    uint                `gorm:"primaryKey"`
	Title                 string              `gorm:"type:varchar(200);not null"`
	ReferenceNumber       *string             `gorm:"type:varchar(50);column:reference_number"`
	CustomerID            *uint               `gorm:"index;column:customer_id"`
	Stage                 OfferStage          `gorm:"type:varchar(50);not null;index"`
	ZoneID                uint                `gorm:"not null;index;column:zone_id"`
	Zone                  *Zone               `gorm:"foreignKey:ZoneID"`
	CreatedByID           uint                `gorm:"not null;index;column:created_by_id"`
	CreatedBy             *User               `gorm:"foreignKey:CreatedByID"`
	ProductType           *string             `gorm:"type:varchar(100);index;column:product_type"`
	OfferValue            decimal.NullDecimal `gorm:"type:decimal(15,2);column:offer_value"`
	POValue               decimal.NullDecimal `gorm:"type:decimal(15,2);column:po_value"`
	ProbabilityPercentage *int                `gorm:"column:probability_percentage"`
	POExpectedMonth       *string             `gorm:"type:varchar(7);column:po_expected_month"`
	PODate                *time.Time          `gorm:"column:po_date"`
	BookingDateInSAP      *time.Time          `gorm:"column:booking_date_in_sap"`
	OfferClosedInCRM      *time.Time          `gorm:"column:offer_closed_in_crm"`
	CreatedAt             time.Time           `gorm:"not null;index"`
	UpdatedAt             time.Time           `gorm:"not null"`
}

// RealizedValue is the value an offer contributes to actuals: the purchase
// order value when positive, otherwise the offer value when positive,
// otherwise zero.
func (o *Offer) RealizedValue() decimal.Decimal {
	if o.POValue.Valid && o.POValue.Decimal.IsPositive() {
		return o.POValue.Decimal
	}
	if o.OfferValue.Valid && o.OfferValue.Decimal.IsPositive() {
		return o.OfferValue.Decimal
	}
	return decimal.Zero
}

// ClosingDate returns the timestamp stored in the given closing field
func (o *Offer) ClosingDate(field ClosingDateField) *time.Time {
	switch field {
	case ClosingFieldPODate:
		return o.PODate
	case ClosingFieldBookingDateInSAP:
		return o.BookingDateInSAP
	case ClosingFieldOfferClosedInCRM:
		return o.OfferClosedInCRM
	case ClosingFieldCreatedAt:
		return &o.CreatedAt
	}
	return nil
}

// TargetFields are the columns shared by zone and user targets
type TargetFields struct {
	TargetPeriod     string          `gorm:"type:varchar(7);not null;index;column:target_period"`
	PeriodType       PeriodType      `gorm:"type:varchar(10);not null;column:period_type"`
	ProductType      *string         `gorm:"type:varchar(100);column:product_type"`
	TargetValue      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:target_value"`
	TargetOfferCount *int            `gorm:"column:target_offer_count"`
}

// ZoneTarget is a target assigned to a zone
type ZoneTarget struct {
	ID     uint  `gorm:"primaryKey"`
	ZoneID uint  `gorm:"not null;index;column:zone_id"`
	Zone   *Zone `gorm:"foreignKey:ZoneID"`
	TargetFields
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// UserTarget is a target assigned to an individual user
type UserTarget struct {
	ID     uint  `gorm:"primaryKey"`
	UserID uint  `gorm:"not null;index;column:user_id"`
	User   *User `gorm:"foreignKey:UserID"`
	TargetFields
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Target is a scope-agnostic projection of a zone_targets or user_targets row
type Target struct {
	ID               uint
	ScopeID          uint
	TargetPeriod     string
	PeriodType       PeriodType
	ProductType      *string
	TargetValue      decimal.Decimal
	TargetOfferCount *int
}
