package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is a two-party message thread. Threads are ephemeral:
// messages past the retention window are removed by the cleanup job.
type Conversation struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	PublicID  string         `gorm:"uniqueIndex;size:36;not null" json:"id"`
	CreatedBy uint           `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Participants []Participant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type Participant struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	ConversationID uint           `gorm:"not null;index:idx_participant_pair,unique" json:"-"`
	UserID         uint           `gorm:"not null;index:idx_participant_pair,unique" json:"user_id"`
	JoinedAt       time.Time      `gorm:"not null" json:"joined_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Participant) TableName() string {
	return "participants"
}

type Message struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ConversationID uint           `gorm:"not null;index" json:"-"`
	SenderID       uint           `gorm:"not null;index" json:"sender_id"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"-"`
	Sender       User         `gorm:"foreignKey:SenderID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
