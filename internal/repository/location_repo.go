package repository

import (
	"time"

	"huddle/internal/clock"
	"huddle/internal/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewLocationRepository(db *gorm.DB, clk clock.Clock) *LocationRepository {
	return &LocationRepository{db: db, clk: clk}
}

// AppendBatch writes all fixes as new immutable rows, stamping the
// server receive time. The batch goes through a single transaction so a
// partial failure never silently drops records.
func (r *LocationRepository) AppendBatch(fixes []models.LocationFix) (int, error) {
	if len(fixes) == 0 {
		return 0, nil
	}
	now := r.clk.Now()
	for i := range fixes {
		fixes[i].CreatedAt = now
	}
	if err := r.db.Create(&fixes).Error; err != nil {
		return 0, err
	}
	return len(fixes), nil
}

// LatestWithin returns at most one fix per user, the most recent by
// recorded time, restricted to fixes recorded inside the window. Users
// without a qualifying fix are absent from the map, not an error.
func (r *LocationRepository) LatestWithin(userIDs []uint, window time.Duration) (map[uint]models.LocationFix, error) {
	out := make(map[uint]models.LocationFix, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	cutoff := r.clk.Now().Add(-window)
	var fixes []models.LocationFix
	err := r.db.
		Where("user_id IN ? AND recorded_at >= ?", userIDs, cutoff).
		Order("recorded_at DESC, id DESC").
		Find(&fixes).Error
	if err != nil {
		return nil, err
	}
	for _, f := range fixes {
		if _, ok := out[f.UserID]; !ok {
			out[f.UserID] = f
		}
	}
	return out, nil
}

// MostRecentForUser is the single-user variant used for direct lookups.
// Returns gorm.ErrRecordNotFound when no fix qualifies.
func (r *LocationRepository) MostRecentForUser(userID uint, window time.Duration) (*models.LocationFix, error) {
	cutoff := r.clk.Now().Add(-window)
	var f models.LocationFix
	err := r.db.
		Where("user_id = ? AND recorded_at >= ?", userID, cutoff).
		Order("recorded_at DESC, id DESC").
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}
