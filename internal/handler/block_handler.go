package handler

import (
	"errors"
	"net/http"
	"strconv"

	"huddle/internal/middleware"
	"huddle/internal/models"
	"huddle/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BlockHandler struct {
	repo     *repository.BlockRepository
	userRepo *repository.UserRepository
}

func NewBlockHandler(repo *repository.BlockRepository, userRepo *repository.UserRepository) *BlockHandler {
	return &BlockHandler{repo: repo, userRepo: userRepo}
}

// Create blocks another user. Idempotent: blocking someone already
// blocked returns 200 instead of a duplicate-key failure.
func (h *BlockHandler) Create(c *gin.Context) {
	blockerID := middleware.GetUserID(c)
	var req struct {
		BlockedID uint `json:"blocked_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BlockedID == blockerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot block yourself"})
		return
	}
	if _, err := h.userRepo.GetByID(req.BlockedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		zap.L().Error("user lookup failed", zap.Uint("user_id", req.BlockedID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	exists, err := h.repo.Exists(blockerID, req.BlockedID)
	if err != nil {
		zap.L().Error("block check failed", zap.Uint("user_id", blockerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "block failed"})
		return
	}
	if exists {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	b := &models.Block{BlockerID: blockerID, BlockedID: req.BlockedID}
	if err := h.repo.Create(b); err != nil {
		zap.L().Error("block create failed", zap.Uint("user_id", blockerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "block failed"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	blockerID := middleware.GetUserID(c)
	blockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || blockID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}
	removed, err := h.repo.DeleteByID(uint(blockID), blockerID)
	if err != nil {
		zap.L().Error("block delete failed", zap.Uint("user_id", blockerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unblock failed"})
		return
	}
	if removed == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "block not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *BlockHandler) List(c *gin.Context) {
	blockerID := middleware.GetUserID(c)
	list, err := h.repo.ListByBlocker(blockerID)
	if err != nil {
		zap.L().Error("block list failed", zap.Uint("user_id", blockerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": list})
}
