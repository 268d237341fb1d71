package repository

import (
	"context"

	"github.com/straye-as/sales-target-api/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// SalesUserFilter narrows the list of sales users
type SalesUserFilter struct {
	ID     *uint
	ZoneID *uint
}

// ListActiveSalesUsers returns active users holding a sales role, ordered by name
func (r *UserRepository) ListActiveSalesUsers(ctx context.Context, filter SalesUserFilter) ([]domain.User, error) {
	var users []domain.User
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("role IN ?", domain.SalesRoles)
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.ZoneID != nil {
		query = query.Where("zone_id = ?", *filter.ZoneID)
	}
	err := query.Order("name ASC, id ASC").Find(&users).Error
	return users, err
}
