package repository

import (
	"time"

	"huddle/internal/models"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// CreateWithParticipants writes the conversation and both participant
// rows in one transaction.
func (r *ConversationRepository) CreateWithParticipants(conv *models.Conversation, joinedAt time.Time, userIDs ...uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, uid := range userIDs {
			p := models.Participant{ConversationID: conv.ID, UserID: uid, JoinedAt: joinedAt}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindBetween returns the existing two-party conversation between a and
// b, if any.
func (r *ConversationRepository) FindBetween(a, b uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.
		Joins("INNER JOIN participants pa ON pa.conversation_id = conversations.id AND pa.user_id = ? AND pa.deleted_at IS NULL", a).
		Joins("INNER JOIN participants pb ON pb.conversation_id = conversations.id AND pb.user_id = ? AND pb.deleted_at IS NULL", b).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) GetByPublicID(publicID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Preload("Participants").Where("public_id = ?", publicID).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) ListForUser(userID uint) ([]models.Conversation, error) {
	var list []models.Conversation
	err := r.db.Preload("Participants").
		Joins("INNER JOIN participants p ON p.conversation_id = conversations.id AND p.deleted_at IS NULL").
		Where("p.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Find(&list).Error
	return list, err
}

func (r *ConversationRepository) IsParticipant(conversationID, userID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Participant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&c).Error
	return c > 0, err
}

func (r *ConversationRepository) CreateMessage(m *models.Message) error {
	return r.db.Create(m).Error
}

func (r *ConversationRepository) ListMessages(conversationID uint, limit, offset int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// DeleteMessagesOlderThan hard-deletes aged messages. Invoked by the
// external cleanup trigger; idempotent when nothing qualifies.
func (r *ConversationRepository) DeleteMessagesOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Unscoped().Where("created_at < ?", cutoff).Delete(&models.Message{})
	return res.RowsAffected, res.Error
}
