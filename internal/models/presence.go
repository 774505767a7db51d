package models

import (
	"time"

	"gorm.io/gorm"
)

// UserPresence tracks the coarse online/offline flag and last activity.
// The status field alone does not prove liveness: reads filter it through
// a freshness window, and a periodic sweep demotes stale ONLINE rows.
type UserPresence struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Status       string         `gorm:"size:20;not null;index" json:"status"` // ONLINE, OFFLINE
	LastActiveAt *time.Time     `gorm:"index" json:"last_active_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserPresence) TableName() string {
	return "user_presence"
}
