package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"huddle/internal/domain"
	"huddle/internal/middleware"
	"huddle/internal/models"
	"huddle/internal/repository"
	"huddle/pkg/geo"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LocationHandler struct {
	locRepo   *repository.LocationRepository
	userRepo  *repository.UserRepository
	blockRepo *repository.BlockRepository
}

func NewLocationHandler(locRepo *repository.LocationRepository, userRepo *repository.UserRepository, blockRepo *repository.BlockRepository) *LocationHandler {
	return &LocationHandler{locRepo: locRepo, userRepo: userRepo, blockRepo: blockRepo}
}

type fixPayload struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters *float64  `json:"accuracy_meters"`
	SpeedMps       *float64  `json:"speed_mps"`
	HeadingDeg     *float64  `json:"heading_deg"`
	RecordedAt     time.Time `json:"recorded_at" binding:"required"`
}

// AppendBatch ingests a batch of location fixes for the caller. The whole
// batch succeeds or the whole batch fails; coordinates are truncated to 4
// decimal places before persistence.
func (h *LocationHandler) AppendBatch(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req struct {
		UserID uint         `json:"user_id" binding:"required"`
		Fixes  []fixPayload `json:"fixes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot report locations for another user"})
		return
	}
	if len(req.Fixes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fixes must not be empty"})
		return
	}
	for _, f := range req.Fixes {
		if !geo.ValidLatLng(f.Latitude, f.Longitude) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "latitude must be in [-90,90] and longitude in [-180,180]"})
			return
		}
	}
	if _, err := h.userRepo.GetByID(callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		zap.L().Error("user lookup failed", zap.Uint("user_id", callerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	fixes := make([]models.LocationFix, len(req.Fixes))
	for i, f := range req.Fixes {
		fixes[i] = models.LocationFix{
			UserID:         callerID,
			Latitude:       geo.Truncate(f.Latitude),
			Longitude:      geo.Truncate(f.Longitude),
			AccuracyMeters: f.AccuracyMeters,
			SpeedMps:       f.SpeedMps,
			HeadingDeg:     f.HeadingDeg,
			RecordedAt:     f.RecordedAt,
		}
	}
	inserted, err := h.locRepo.AppendBatch(fixes)
	if err != nil {
		zap.L().Error("fix batch insert failed", zap.Uint("user_id", callerID), zap.Int("count", len(fixes)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": inserted})
}

// GetUserLocation returns the target's freshest fix inside the 5-minute
// window. Blocked pairs cannot see each other's location in either
// direction.
func (h *LocationHandler) GetUserLocation(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if uint(targetID) != callerID {
		blocked, err := h.blockRepo.IsBlockedPair(callerID, uint(targetID))
		if err != nil {
			zap.L().Error("block check failed", zap.Uint("user_id", callerID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if blocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
	}
	fix, err := h.locRepo.MostRecentForUser(uint(targetID), domain.LocationWindow)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no recent location"})
			return
		}
		zap.L().Error("location lookup failed", zap.Uint64("target_id", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":         fix.UserID,
		"latitude":        fix.Latitude,
		"longitude":       fix.Longitude,
		"accuracy_meters": fix.AccuracyMeters,
		"recorded_at":     fix.RecordedAt,
	})
}
