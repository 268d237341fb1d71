package service

import "errors"

var (
	// ErrScopeEnumeration is returned when zones or users cannot be listed
	ErrScopeEnumeration = errors.New("failed to enumerate scopes")

	// ErrActualPeriodOutsideTarget is returned when the actual value period
	// does not lie inside the target period. It wraps domain.ErrInvalidPeriodFormat.
	ErrActualPeriodOutsideTarget = errors.New("actual value period outside target period")
)
