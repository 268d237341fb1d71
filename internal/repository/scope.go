package repository

import (
	"fmt"

	"github.com/straye-as/sales-target-api/internal/domain"
	"gorm.io/gorm"
)

// Scope is the level a roll-up is computed at. It tells the queries which
// offer column identifies the scope and where its targets are stored.
type Scope interface {
	Kind() domain.ScopeKind
	ID() uint
	// OfferColumn is the offers column holding the scope id
	OfferColumn() string
	// TargetTable is the table holding targets for this scope kind
	TargetTable() string
	// TargetColumn is the target table column holding the scope id
	TargetColumn() string
}

type zoneScope struct {
	id uint
}

// ZoneScope returns the scope of a single zone
func ZoneScope(id uint) Scope {
	return zoneScope{id: id}
}

func (s zoneScope) Kind() domain.ScopeKind { return domain.ScopeKindZone }
func (s zoneScope) ID() uint               { return s.id }
func (s zoneScope) OfferColumn() string    { return "zone_id" }
func (s zoneScope) TargetTable() string    { return "zone_targets" }
func (s zoneScope) TargetColumn() string   { return "zone_id" }

type userScope struct {
	id uint
}

// UserScope returns the scope of a single user, matched on offer ownership
func UserScope(id uint) Scope {
	return userScope{id: id}
}

func (s userScope) Kind() domain.ScopeKind { return domain.ScopeKindUser }
func (s userScope) ID() uint               { return s.id }
func (s userScope) OfferColumn() string    { return "created_by_id" }
func (s userScope) TargetTable() string    { return "user_targets" }
func (s userScope) TargetColumn() string   { return "user_id" }

// ScopeFor builds the scope for a kind and id
func ScopeFor(kind domain.ScopeKind, id uint) (Scope, error) {
	switch kind {
	case domain.ScopeKindZone:
		return ZoneScope(id), nil
	case domain.ScopeKindUser:
		return UserScope(id), nil
	}
	return nil, fmt.Errorf("unknown scope kind %q", kind)
}

// ScopeLabel renders a scope for log fields
func ScopeLabel(scope Scope) string {
	return fmt.Sprintf("%s:%d", scope.Kind(), scope.ID())
}

// ApplyOfferScope restricts an offers query to the offers of the scope
func ApplyOfferScope(query *gorm.DB, scope Scope) *gorm.DB {
	return query.Where(scope.OfferColumn()+" = ?", scope.ID())
}

// ApplyProductType restricts a query to a product type when one is given
func ApplyProductType(query *gorm.DB, productType *string) *gorm.DB {
	if productType != nil {
		return query.Where("product_type = ?", *productType)
	}
	return query
}
