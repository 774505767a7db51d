package handler

import (
	"net/http"

	"huddle/internal/domain"
	"huddle/internal/middleware"
	"huddle/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PresenceHandler struct {
	repo *repository.PresenceRepository
}

func NewPresenceHandler(repo *repository.PresenceRepository) *PresenceHandler {
	return &PresenceHandler{repo: repo}
}

// Heartbeat refreshes the caller's last-activity timestamp, optionally
// switching status in the same call. Repeated calls just refresh.
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req struct {
		UserID uint   `json:"user_id" binding:"required"`
		Status string `json:"status" binding:"omitempty,oneof=ONLINE OFFLINE"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot heartbeat for another user"})
		return
	}
	presence, err := h.repo.Heartbeat(callerID, req.Status)
	if err != nil {
		zap.L().Error("heartbeat failed", zap.Uint("user_id", callerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "heartbeat failed"})
		return
	}
	c.JSON(http.StatusOK, presence)
}

// SetStatus sets the presence flag; any value outside ONLINE/OFFLINE is
// rejected. Always refreshes last-activity.
func (h *PresenceHandler) SetStatus(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req struct {
		UserID uint   `json:"user_id" binding:"required"`
		Status string `json:"status" binding:"required,oneof=ONLINE OFFLINE"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot set status for another user"})
		return
	}
	presence, err := h.repo.SetStatus(callerID, req.Status)
	if err != nil {
		zap.L().Error("status update failed", zap.Uint("user_id", callerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, presence)
}

func (h *PresenceHandler) GetMyPresence(c *gin.Context) {
	userID := middleware.GetUserID(c)
	presence, err := h.repo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": domain.PresenceOffline, "last_active_at": nil})
		return
	}
	c.JSON(http.StatusOK, presence)
}
