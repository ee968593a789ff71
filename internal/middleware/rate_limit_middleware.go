package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-quiz-api/internal/config"
	"github.com/yourusername/trivia-quiz-api/internal/handler"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests: максимальное количество запросов за Window
	MaxRequests int
	// Window: временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix: префикс для ключей в Redis
	KeyPrefix string
}

// WriteRateLimitConfig строит лимит для изменяющих запросов (создание, удаление, пакет)
func WriteRateLimitConfig(cfg config.RateLimitConfig) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: cfg.MaxRequests,
		Window:      cfg.Window,
		KeyPrefix:   "rl:write",
	}
}

// RateLimiter создаёт middleware для rate limiting на основе Redis
type RateLimiter struct {
	redisClient redis.UniversalClient
	timeout     time.Duration
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient, timeout: 2 * time.Second}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP + шаблона маршрута. При недоступном Redis запрос пропускается.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logging.FromContext(c.Request.Context())
		clientIP := c.ClientIP()
		path := c.FullPath() // шаблон маршрута Gin, например "/v1/questions/:id"
		if path == "" {
			path = c.Request.URL.Path
		}

		key := cfg.KeyPrefix + ":" + clientIP + ":" + path

		ctx, cancel := context.WithTimeout(c.Request.Context(), rl.timeout)
		defer cancel()

		count, ttl, err := rl.hit(ctx, key, cfg.Window)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		// Ключ без TTL (например, оставшийся после сбоя) вечно держал бы 429
		if ttl < 0 {
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to set rate limit ttl")
			}
			ttl = cfg.Window
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		retryAfter := int(ttl.Seconds())

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(retryAfter))

		if int(count) > cfg.MaxRequests {
			log.Info().
				Str("ip", clientIP).
				Str("path", path).
				Int64("count", count).
				Int("limit", cfg.MaxRequests).
				Msg("rate limit exceeded")

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			handler.RespondError(c, http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}

// hit атомарно создает счетчик окна с TTL (SET NX EX), увеличивает его и читает оставшееся время.
// ttl < 0 означает, что у ключа нет срока жизни.
func (rl *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := rl.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return incr.Val(), ttl.Val(), nil
}
