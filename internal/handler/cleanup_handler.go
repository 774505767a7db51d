package handler

import (
	"crypto/subtle"
	"net/http"

	"huddle/config"
	"huddle/internal/clock"
	"huddle/internal/domain"
	"huddle/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CleanupHandler exposes the housekeeping endpoints invoked by an
// external scheduler. Presence correctness deliberately relies on this
// periodic sweep plus the read-side window filter, not on guaranteed
// status transitions.
type CleanupHandler struct {
	presenceRepo *repository.PresenceRepository
	convRepo     *repository.ConversationRepository
	cfg          *config.CleanupConfig
	clk          clock.Clock
}

func NewCleanupHandler(presenceRepo *repository.PresenceRepository, convRepo *repository.ConversationRepository, cfg *config.CleanupConfig, clk clock.Clock) *CleanupHandler {
	return &CleanupHandler{presenceRepo: presenceRepo, convRepo: convRepo, cfg: cfg, clk: clk}
}

// InactiveUsers demotes users still flagged ONLINE whose last activity
// is older than the stale window.
func (h *CleanupHandler) InactiveUsers(c *gin.Context) {
	demoted, err := h.presenceRepo.DemoteStale(domain.StaleAfter)
	if err != nil {
		zap.L().Error("stale presence sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed"})
		return
	}
	zap.L().Info("stale presence sweep", zap.Int64("demoted", demoted))
	c.JSON(http.StatusOK, gin.H{"demoted": demoted})
}

// Messages deletes messages older than the retention window. Gated by a
// shared secret in the X-Cleanup-Secret header or the request body.
func (h *CleanupHandler) Messages(c *gin.Context) {
	secret := c.GetHeader("X-Cleanup-Secret")
	if secret == "" {
		var req struct {
			Secret string `json:"secret"`
		}
		_ = c.ShouldBindJSON(&req)
		secret = req.Secret
	}
	if h.cfg.SharedSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.cfg.SharedSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid cleanup secret"})
		return
	}
	cutoff := h.clk.Now().Add(-h.cfg.MessageRetention)
	deleted, err := h.convRepo.DeleteMessagesOlderThan(cutoff)
	if err != nil {
		zap.L().Error("message cleanup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	zap.L().Info("message cleanup", zap.Int64("deleted", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
