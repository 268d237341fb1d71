package auth

import (
	"context"
	"errors"

	"github.com/straye-as/sales-target-api/internal/domain"
)

var (
	// ErrScopeForbidden is returned when a caller asks for a zone or user outside their reach
	ErrScopeForbidden = errors.New("access to scope denied")
	// ErrNoZoneAssigned is returned for zone roles without a zone
	ErrNoZoneAssigned = errors.New("user has no zone assigned")
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uint
	DisplayName string
	Email       string
	Role        domain.UserRole
	ZoneID      *uint
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRole) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if user can see every zone and user
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.UserRoleAdmin
}

func (u *UserContext) zone() (uint, error) {
	if u.ZoneID == nil {
		return 0, ErrNoZoneAssigned
	}
	return *u.ZoneID, nil
}

// ApplyZoneRestriction narrows a zone roll-up to the caller's own zone.
// Admins are not restricted.
func (u *UserContext) ApplyZoneRestriction(q *domain.PerformanceQuery) error {
	if u.IsAdmin() {
		return nil
	}
	zoneID, err := u.zone()
	if err != nil {
		return err
	}
	if q.ScopeID != nil && *q.ScopeID != zoneID {
		return ErrScopeForbidden
	}
	q.ScopeID = &zoneID
	return nil
}

// ApplyUserRestriction narrows a user roll-up. Zone managers see the users
// of their zone, zone users see only themselves.
func (u *UserContext) ApplyUserRestriction(q *domain.PerformanceQuery) error {
	switch u.Role {
	case domain.UserRoleAdmin:
		return nil

	case domain.UserRoleZoneManager:
		zoneID, err := u.zone()
		if err != nil {
			return err
		}
		if q.ZoneID != nil && *q.ZoneID != zoneID {
			return ErrScopeForbidden
		}
		q.ZoneID = &zoneID
		return nil

	case domain.UserRoleZoneUser:
		if q.ScopeID != nil && *q.ScopeID != u.UserID {
			return ErrScopeForbidden
		}
		userID := u.UserID
		q.ScopeID = &userID
		return nil
	}

	return ErrScopeForbidden
}
