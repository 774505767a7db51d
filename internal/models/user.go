package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null;default:''" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	Bio          *string        `gorm:"type:text" json:"bio"`
	Age          *int           `json:"age"`
	AreaLabel    *string        `gorm:"size:128" json:"area_label"` // free-text "where I am" label, not coordinates
	Gender       string         `gorm:"size:20;not null;default:'UNSPECIFIED'" json:"gender"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Presence *UserPresence `gorm:"foreignKey:UserID" json:"presence,omitempty"`
}

// DisplayName returns the username, falling back to the local part of
// the email when it is empty.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	name, _, _ := strings.Cut(u.Email, "@")
	return name
}
