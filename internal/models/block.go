package models

import "time"

// Block is directional in storage but symmetric for every visibility
// check: if either direction exists the pair is mutually invisible.
// Rows are removed outright on unblock; a soft-deleted row would keep
// occupying the unique pair index and make re-blocking impossible.
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uint      `gorm:"not null;index:idx_block_pair,unique" json:"blocker_id"`
	BlockedID uint      `gorm:"not null;index:idx_block_pair,unique" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`

	Blocker User `gorm:"foreignKey:BlockerID" json:"-"`
	Blocked User `gorm:"foreignKey:BlockedID" json:"-"`
}

func (Block) TableName() string {
	return "blocks"
}
