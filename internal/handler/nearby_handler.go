package handler

import (
	"errors"
	"net/http"
	"strconv"

	"huddle/internal/discovery"
	"huddle/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NearbyHandler struct {
	engine *discovery.Engine
}

func NewNearbyHandler(engine *discovery.Engine) *NearbyHandler {
	return &NearbyHandler{engine: engine}
}

// FindNearby handles GET /users/nearby?lat&lon&radius. All three params
// must parse as numbers; the engine enforces the radius cap.
func (h *NearbyHandler) FindNearby(c *gin.Context) {
	requesterID := middleware.GetUserID(c)
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lon must be a number"})
		return
	}
	radius, err := strconv.ParseFloat(c.Query("radius"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a number"})
		return
	}
	results, err := h.engine.FindNearby(requesterID, lat, lon, radius)
	if err != nil {
		if errors.Is(err, discovery.ErrInvalidCoordinate) || errors.Is(err, discovery.ErrInvalidRadius) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("nearby query failed", zap.Uint("user_id", requesterID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "discovery failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
