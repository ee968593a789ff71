package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz-api/internal/handler/dto"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz-api/internal/service"
)

// QuizHandler обрабатывает запросы режима игры
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторины
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// PlayQuiz возвращает случайный вопрос, которого нет в previous_questions
// POST /v1/quizzes
func (h *QuizHandler) PlayQuiz(c *gin.Context) {
	var req dto.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.FromContext(c.Request.Context()).Debug().Err(err).Msg("invalid quiz request body")
		RespondError(c, http.StatusBadRequest)
		return
	}

	question, err := h.quizService.NextQuestion(c.Request.Context(), *req.QuizCategory.ID, req.PreviousQuestions)
	if errors.Is(err, apperrors.ErrNoMoreQuestions) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "No more questions",
		})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"question": dto.NewQuestionResponse(question),
	})
}
