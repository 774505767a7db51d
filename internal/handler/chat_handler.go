package handler

import (
	"errors"
	"net/http"
	"strconv"

	"huddle/internal/clock"
	"huddle/internal/middleware"
	"huddle/internal/models"
	"huddle/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ChatHandler struct {
	convRepo  *repository.ConversationRepository
	userRepo  *repository.UserRepository
	blockRepo *repository.BlockRepository
	clk       clock.Clock
}

func NewChatHandler(convRepo *repository.ConversationRepository, userRepo *repository.UserRepository, blockRepo *repository.BlockRepository, clk clock.Clock) *ChatHandler {
	return &ChatHandler{convRepo: convRepo, userRepo: userRepo, blockRepo: blockRepo, clk: clk}
}

// CreateConversation opens (or returns) the two-party thread between the
// caller and a peer. Blocked pairs cannot message each other.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req struct {
		PeerID uint `json:"peer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PeerID == callerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot start a conversation with yourself"})
		return
	}
	if _, err := h.userRepo.GetByID(req.PeerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		zap.L().Error("user lookup failed", zap.Uint("user_id", req.PeerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	blocked, err := h.blockRepo.IsBlockedPair(callerID, req.PeerID)
	if err != nil {
		zap.L().Error("block check failed", zap.Uint("user_id", callerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if blocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if existing, err := h.convRepo.FindBetween(callerID, req.PeerID); err == nil {
		c.JSON(http.StatusOK, existing)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("conversation lookup failed", zap.Uint("user_id", callerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	conv := &models.Conversation{
		PublicID:  uuid.New().String(),
		CreatedBy: callerID,
	}
	if err := h.convRepo.CreateWithParticipants(conv, h.clk.Now(), callerID, req.PeerID); err != nil {
		zap.L().Error("conversation create failed", zap.Uint("user_id", callerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, conv)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.convRepo.ListForUser(userID)
	if err != nil {
		zap.L().Error("conversation list failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": list})
}

// PostMessage appends a message to a conversation the caller belongs to.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	conv, ok := h.loadConversation(c, userID)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content" binding:"required,max=4000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := &models.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		Content:        req.Content,
		CreatedAt:      h.clk.Now(),
	}
	if err := h.convRepo.CreateMessage(m); err != nil {
		zap.L().Error("message create failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	conv, ok := h.loadConversation(c, userID)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.convRepo.ListMessages(conv.ID, limit, offset)
	if err != nil {
		zap.L().Error("message list failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": list})
}

// loadConversation resolves :id and enforces participant-only access.
// Writes the error response itself when it returns ok=false.
func (h *ChatHandler) loadConversation(c *gin.Context, userID uint) (*models.Conversation, bool) {
	conv, err := h.convRepo.GetByPublicID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return nil, false
		}
		zap.L().Error("conversation lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return nil, false
	}
	member := false
	for _, p := range conv.Participants {
		if p.UserID == userID {
			member = true
			break
		}
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return conv, true
}
