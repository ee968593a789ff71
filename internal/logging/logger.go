package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/trivia-quiz-api/internal/config"
)

type loggerKey struct{}

// New собирает структурированный логгер по настройкам приложения.
// format "json" пишет JSON в stdout, иначе используется ConsoleWriter.
func New(appCfg config.AppConfig, logCfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(os.Stdout, appCfg, logCfg)
}

// NewWithWriter то же, что New, но с произвольным приемником (удобно в тестах)
func NewWithWriter(out io.Writer, appCfg config.AppConfig, logCfg config.LogConfig) zerolog.Logger {
	if !strings.EqualFold(logCfg.Format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
			NoColor:    appCfg.IsProduction(),
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(logCfg.Level)).
		With().
		Timestamp().
		Str("app", appCfg.Name).
		Str("env", appCfg.Env).
		Logger()
}

// ParseLevel разбирает уровень логирования; неизвестное значение -> info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// IntoContext кладет логгер в контекст для нижележащих слоев
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, &logger)
}

// FromContext возвращает логгер из контекста или Nop, если его там нет
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok {
			return logger
		}
	}
	nop := zerolog.Nop()
	return &nop
}
