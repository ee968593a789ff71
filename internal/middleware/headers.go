package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz-api/internal/config"
)

// Заголовки, которые старые клиенты ожидают в каждом ответе
const (
	legacyAllowHeaders = "Content-Type,Authorization,true"
	legacyAllowMethods = "GET, POST, DELETE, OPTIONS"
)

// LegacyAllowHeaders добавляет Allow-Control-* заголовки ко всем ответам
func LegacyAllowHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Allow-Control-Allow-Headers", legacyAllowHeaders)
		c.Header("Allow-Control-Allow-Methods", legacyAllowMethods)
		c.Next()
	}
}

// PrefixCORS применяет CORS только к запросам, путь которых начинается с prefix.
// Preflight OPTIONS обрабатывается здесь же, до маршрутизации.
func PrefixCORS(prefix string, cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: cfg.AllowMethods,
		AllowHeaders: cfg.AllowHeaders,
	}
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	corsHandler := cors.New(corsCfg)

	return func(c *gin.Context) {
		if !hasPathPrefix(c.Request.URL.Path, prefix) {
			c.Next()
			return
		}
		corsHandler(c)
	}
}

// hasPathPrefix проверяет префикс по границе сегмента: /v1 подходит для /v1/x, но не для /v10
func hasPathPrefix(path, prefix string) bool {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
