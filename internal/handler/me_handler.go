package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"huddle/internal/middleware"
	"huddle/internal/models"
	"huddle/internal/repository"
	"huddle/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MeHandler struct {
	userRepo *repository.UserRepository
	cloud    cloudinary.Client
}

func NewMeHandler(userRepo *repository.UserRepository, cloud cloudinary.Client) *MeHandler {
	return &MeHandler{userRepo: userRepo, cloud: cloud}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		zap.L().Error("profile lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile applies a tri-state PATCH: fields absent from the payload
// are untouched, explicit nulls clear, values overwrite.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	changes, err := req.Changes()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	if name, ok := changes["username"].(string); ok {
		if existing, err := h.userRepo.GetByUsername(name); err == nil && existing.ID != userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
			return
		}
	}
	if err := h.userRepo.UpdateFields(userID, changes); err != nil {
		zap.L().Error("profile update failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		zap.L().Error("profile reload failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UploadAvatar stores a new profile image and replaces the previous one.
// Deleting the old asset is best-effort.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()
	folder := "huddle/avatars/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		zap.L().Error("avatar upload failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	old := u.AvatarURL
	u.AvatarURL = url
	if err := h.userRepo.Update(u); err != nil {
		zap.L().Error("avatar save failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if old != "" {
		if err := h.cloud.DeleteByURL(c.Request.Context(), old); err != nil {
			zap.L().Warn("old avatar delete failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// DeleteAccount destroys the user and cascades every owned record.
// Removing the stored avatar is best-effort: a blob-store failure is
// logged but never aborts the deletion.
func (h *MeHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		zap.L().Error("user lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if err := h.userRepo.DeleteCascade(userID); err != nil {
		zap.L().Error("account delete failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if u.AvatarURL != "" {
		if err := h.cloud.DeleteByURL(c.Request.Context(), u.AvatarURL); err != nil {
			zap.L().Warn("avatar cleanup failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
