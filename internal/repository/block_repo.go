package repository

import (
	"huddle/internal/models"

	"gorm.io/gorm"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

func (r *BlockRepository) Create(b *models.Block) error {
	return r.db.Create(b).Error
}

// DeleteByID removes a block owned by blockerID, freeing the pair key
// so the same user can be blocked again later. Returns the number of
// rows removed so callers can distinguish "not yours / not found".
func (r *BlockRepository) DeleteByID(id, blockerID uint) (int64, error) {
	res := r.db.Where("id = ? AND blocker_id = ?", id, blockerID).Delete(&models.Block{})
	return res.RowsAffected, res.Error
}

func (r *BlockRepository) ListByBlocker(blockerID uint) ([]models.Block, error) {
	var list []models.Block
	err := r.db.Where("blocker_id = ?", blockerID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// Exists checks one direction only (used for idempotent create).
func (r *BlockRepository) Exists(blockerID, blockedID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&c).Error
	return c > 0, err
}

// IsBlockedPair reports whether a block exists in either direction.
// Blocks are stored directionally but consumed symmetrically.
func (r *BlockRepository) IsBlockedPair(a, b uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&c).Error
	return c > 0, err
}

// FilterBlocked removes candidates with a block in either direction
// relative to the requester. Queried fresh on every call: a cached
// allow-list could surface a user who blocked the requester moments ago.
func (r *BlockRepository) FilterBlocked(requesterID uint, candidates []models.User) ([]models.User, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	ids := make([]uint, len(candidates))
	for i, u := range candidates {
		ids[i] = u.ID
	}
	var blocks []models.Block
	err := r.db.
		Where("(blocker_id = ? AND blocked_id IN ?) OR (blocked_id = ? AND blocker_id IN ?)", requesterID, ids, requesterID, ids).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return excludeBlocked(requesterID, candidates, blocks), nil
}

// excludeBlocked drops every candidate appearing on either side of a
// block row involving the requester.
func excludeBlocked(requesterID uint, candidates []models.User, blocks []models.Block) []models.User {
	if len(blocks) == 0 {
		return candidates
	}
	excluded := make(map[uint]bool, len(blocks))
	for _, b := range blocks {
		excluded[b.BlockerID] = true
		excluded[b.BlockedID] = true
	}
	delete(excluded, requesterID)
	out := make([]models.User, 0, len(candidates))
	for _, u := range candidates {
		if !excluded[u.ID] {
			out = append(out, u)
		}
	}
	return out
}
