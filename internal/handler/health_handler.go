package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz-api/internal/logging"
)

// PingFunc проверяет доступность одной зависимости
type PingFunc func(ctx context.Context) error

// HealthHandler отвечает на проверки живости сервиса
type HealthHandler struct {
	checks  map[string]PingFunc
	timeout time.Duration
}

// NewHealthHandler создает обработчик проверки зависимостей.
// checks: имя зависимости -> функция проверки (postgres, redis).
func NewHealthHandler(checks map[string]PingFunc) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Health пингует все зависимости
// GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			logging.FromContext(ctx).Error().Err(err).Str("dependency", name).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
