package models

import (
	"time"

	"gorm.io/gorm"
)

// LocationFix is one reported position sample. Rows are append-only and
// immutable once written; discovery only ever reads the most recent fix
// per user inside a freshness window. Coordinates are truncated to 4
// decimal places before they get here.
type LocationFix struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index:idx_fix_user_recorded" json:"user_id"`
	Latitude       float64        `gorm:"type:decimal(10,8);not null" json:"-"`
	Longitude      float64        `gorm:"type:decimal(11,8);not null" json:"-"`
	AccuracyMeters *float64       `gorm:"type:decimal(8,2)" json:"accuracy_meters,omitempty"`
	SpeedMps       *float64       `gorm:"type:decimal(8,2)" json:"speed_mps,omitempty"`
	HeadingDeg     *float64       `gorm:"type:decimal(6,2)" json:"heading_deg,omitempty"`
	RecordedAt     time.Time      `gorm:"not null;index:idx_fix_user_recorded" json:"recorded_at"` // client-supplied capture time
	CreatedAt      time.Time      `json:"created_at"`                                              // server receive time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (LocationFix) TableName() string {
	return "location_fixes"
}
