package repository

import (
	"context"

	"github.com/straye-as/sales-target-api/internal/domain"
	"gorm.io/gorm"
)

type ZoneRepository struct {
	db *gorm.DB
}

func NewZoneRepository(db *gorm.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// ListActive returns active zones ordered by name, optionally only the one with id
func (r *ZoneRepository) ListActive(ctx context.Context, id *uint) ([]domain.Zone, error) {
	var zones []domain.Zone
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if id != nil {
		query = query.Where("id = ?", *id)
	}
	err := query.Order("name ASC, id ASC").Find(&zones).Error
	return zones, err
}
