package repository

import (
	"errors"
	"time"

	"huddle/internal/clock"
	"huddle/internal/domain"
	"huddle/internal/models"

	"gorm.io/gorm"
)

type PresenceRepository struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewPresenceRepository(db *gorm.DB, clk clock.Clock) *PresenceRepository {
	return &PresenceRepository{db: db, clk: clk}
}

func (r *PresenceRepository) GetByUserID(userID uint) (*models.UserPresence, error) {
	var p models.UserPresence
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Heartbeat refreshes last-activity to now, optionally switching status
// when one is supplied. Creates the presence row on first call and is
// idempotent after that; two concurrent heartbeats race harmlessly to
// the same logical update (last-writer-wins).
func (r *PresenceRepository) Heartbeat(userID uint, status string) (*models.UserPresence, error) {
	p, err := r.GetByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if p == nil {
		p = &models.UserPresence{UserID: userID, Status: domain.PresenceOffline}
	}
	now := r.clk.Now()
	p.LastActiveAt = &now
	if status != "" {
		p.Status = status
	}
	if err := r.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// SetStatus sets the presence flag and always refreshes last-activity.
func (r *PresenceRepository) SetStatus(userID uint, status string) (*models.UserPresence, error) {
	return r.Heartbeat(userID, status)
}

// ListOnlineWithin returns users flagged ONLINE whose last activity is
// inside the window, excluding the given user. This is the candidate
// read path for discovery: the window filter is what makes a stale
// ONLINE flag harmless between cleanup sweeps.
func (r *PresenceRepository) ListOnlineWithin(excludeUserID uint, window time.Duration) ([]models.User, error) {
	cutoff := r.clk.Now().Add(-window)
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("INNER JOIN user_presence up ON up.user_id = users.id AND up.deleted_at IS NULL").
		Where("up.status = ? AND up.last_active_at IS NOT NULL AND up.last_active_at >= ?", domain.PresenceOnline, cutoff).
		Where("users.id <> ?", excludeUserID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DemoteStale flips ONLINE rows whose last activity predates the cutoff
// to OFFLINE and returns how many were demoted. Batch self-healing
// sweep, invoked by the external scheduler.
func (r *PresenceRepository) DemoteStale(staleAfter time.Duration) (int64, error) {
	cutoff := r.clk.Now().Add(-staleAfter)
	res := r.db.Model(&models.UserPresence{}).
		Where("status = ? AND (last_active_at IS NULL OR last_active_at < ?)", domain.PresenceOnline, cutoff).
		Update("status", domain.PresenceOffline)
	return res.RowsAffected, res.Error
}
