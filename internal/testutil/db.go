package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-target-api/internal/database"
	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with the schema migrated.
// The pool is pinned to one connection so concurrent roll-ups share the same database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "%", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Second)
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// Date returns a UTC timestamp at noon on the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Money returns a valid nullable decimal
func Money(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// CreateZone inserts an active zone
func CreateZone(t *testing.T, db *gorm.DB, name string) *domain.Zone {
	t.Helper()
	zone := &domain.Zone{Name: name, IsActive: true}
	require.NoError(t, db.WithContext(context.Background()).Create(zone).Error)
	return zone
}

// Deactivate marks a zone or user inactive. gorm skips zero values on
// create, so inactive rows have to be updated after insert.
func Deactivate(t *testing.T, db *gorm.DB, model interface{}) {
	t.Helper()
	require.NoError(t, db.Model(model).Update("is_active", false).Error)
}

// CreateUser inserts an active user with a role in a zone
func CreateUser(t *testing.T, db *gorm.DB, name string, role domain.UserRole, zoneID *uint) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Role:     role,
		ZoneID:   zoneID,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateOffer inserts an offer. Title, zone, owner and CreatedAt are defaulted when unset.
func CreateOffer(t *testing.T, db *gorm.DB, offer domain.Offer) *domain.Offer {
	t.Helper()
	if offer.Title == "" {
		offer.Title = fmt.Sprintf("Offer %s", offer.Stage)
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = Date(2020, time.January, 1)
	}
	require.NoError(t, db.Create(&offer).Error)
	return &offer
}

// CreateZoneTarget inserts a zone target
func CreateZoneTarget(t *testing.T, db *gorm.DB, zoneID uint, period string, periodType domain.PeriodType, productType *string, value int64) *domain.ZoneTarget {
	t.Helper()
	target := &domain.ZoneTarget{
		ZoneID: zoneID,
		TargetFields: domain.TargetFields{
			TargetPeriod: period,
			PeriodType:   periodType,
			ProductType:  productType,
			TargetValue:  decimal.NewFromInt(value),
		},
	}
	require.NoError(t, db.Create(target).Error)
	return target
}

// CreateUserTarget inserts a user target
func CreateUserTarget(t *testing.T, db *gorm.DB, userID uint, period string, periodType domain.PeriodType, productType *string, value int64) *domain.UserTarget {
	t.Helper()
	target := &domain.UserTarget{
		UserID: userID,
		TargetFields: domain.TargetFields{
			TargetPeriod: period,
			PeriodType:   periodType,
			ProductType:  productType,
			TargetValue:  decimal.NewFromInt(value),
		},
	}
	require.NoError(t, db.Create(target).Error)
	return target
}
