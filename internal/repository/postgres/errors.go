package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
)

// wrapWriteError помечает нарушения ограничений (класс SQLSTATE 23) как ErrUnprocessable.
// Остальные ошибки возвращаются как есть.
func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if code := sqlState(err); strings.HasPrefix(code, "23") {
		return fmt.Errorf("%w: constraint violation %s: %v", apperrors.ErrUnprocessable, code, err)
	}
	return err
}

// sqlState извлекает код SQLSTATE для pgconn и lib/pq драйверов
func sqlState(err error) string {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
