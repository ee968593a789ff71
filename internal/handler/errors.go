package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz-api/internal/logging"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
)

// Тексты сообщений об ошибках, которые видит клиент
var errorMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Not Found",
	http.StatusMethodNotAllowed:    "Method not Allowed",
	http.StatusUnprocessableEntity: "Cannot be processed",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
}

// ErrorResponse представляет единый формат ответа с ошибкой
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode int    `json:"error_code"`
}

// NewErrorResponse создает тело ответа для HTTP-статуса status
func NewErrorResponse(status int) ErrorResponse {
	msg, ok := errorMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	return ErrorResponse{Success: false, Message: msg, ErrorCode: status}
}

// RespondError прерывает обработку запроса и отправляет ошибку в едином формате
func RespondError(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, NewErrorResponse(status))
}

// respondServiceError переводит ошибку сервиса в HTTP ответ.
// Неизвестные ошибки логируются и отдаются как 500 без подробностей.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound)
	case errors.Is(err, apperrors.ErrValidation):
		RespondError(c, http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrUnprocessable):
		RespondError(c, http.StatusUnprocessableEntity)
	default:
		logging.FromContext(c.Request.Context()).Error().
			Err(err).
			Str("path", c.FullPath()).
			Msg("internal server error")
		RespondError(c, http.StatusInternalServerError)
	}
}

// NotFound обрабатывает запросы к неизвестным путям (gin NoRoute)
func NotFound(c *gin.Context) {
	RespondError(c, http.StatusNotFound)
}

// MethodNotAllowed обрабатывает запросы с неподдерживаемым методом (gin NoMethod)
func MethodNotAllowed(c *gin.Context) {
	RespondError(c, http.StatusMethodNotAllowed)
}
