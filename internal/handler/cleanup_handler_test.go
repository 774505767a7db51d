package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"huddle/config"
	"huddle/internal/clock"
)

func cleanupRouter(cfg *config.CleanupConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCleanupHandler(nil, nil, cfg, clock.System())
	r.POST("/cleanup/messages", h.Messages)
	return r
}

func TestCleanupMessagesRejectsWrongSecret(t *testing.T) {
	r := cleanupRouter(&config.CleanupConfig{SharedSecret: "s3cret", MessageRetention: 24 * time.Hour})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cleanup/messages", nil)
	req.Header.Set("X-Cleanup-Secret", "wrong")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCleanupMessagesRejectsMissingSecret(t *testing.T) {
	r := cleanupRouter(&config.CleanupConfig{SharedSecret: "s3cret", MessageRetention: 24 * time.Hour})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cleanup/messages", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCleanupMessagesUnconfiguredSecretRefusesAll(t *testing.T) {
	// an empty configured secret must never authorize, even an empty match
	r := cleanupRouter(&config.CleanupConfig{MessageRetention: 24 * time.Hour})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cleanup/messages",
		strings.NewReader(`{"secret":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
