package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz-api/internal/handler/dto"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
	"github.com/yourusername/trivia-quiz-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// GetQuestions возвращает страницу вопросов, их общее количество и все категории
// GET /v1/questions?page=
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, err := h.questionService.GetQuestionsPage(c.Request.Context(), pageParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"questions":       dto.NewListQuestionResponse(page.Questions),
		"total_questions": page.TotalQuestions,
		"categories":      page.Categories,
	})
}

// DeleteQuestion удаляет вопрос по ID
// DELETE /v1/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	if err := h.questionService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"deleted_id": questionID,
	})
}

// CreateOrSearchQuestions создает вопрос или, если передан searchTerm, ищет вопросы
// POST /v1/questions
func (h *QuestionHandler) CreateOrSearchQuestions(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.FromContext(c.Request.Context()).Debug().Err(err).Msg("invalid question request body")
		RespondError(c, http.StatusBadRequest)
		return
	}

	if req.IsSearch() {
		h.searchQuestions(c, *req.SearchTerm)
		return
	}

	if err := req.Validate(); err != nil {
		logging.FromContext(c.Request.Context()).Debug().Err(err).Msg("incomplete question")
		RespondError(c, http.StatusBadRequest)
		return
	}

	createdID, total, err := h.questionService.CreateQuestion(c.Request.Context(), req.ToNewQuestion())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"created_id":      createdID,
		"total_questions": total,
	})
}

// searchQuestions отвечает страницей найденных вопросов.
// total_questions равен размеру возвращенной страницы.
func (h *QuestionHandler) searchQuestions(c *gin.Context, term string) {
	questions, err := h.questionService.SearchQuestions(c.Request.Context(), term, pageParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"questions":       dto.NewListQuestionResponse(questions),
		"total_questions": len(questions),
	})
}

// CreateQuestionsBatch создает несколько вопросов в одной транзакции
// POST /v1/questions/batch
func (h *QuestionHandler) CreateQuestionsBatch(c *gin.Context) {
	var req dto.BatchQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest)
		return
	}

	inputs, err := req.ToNewQuestions()
	if err != nil {
		logging.FromContext(c.Request.Context()).Debug().Err(err).Msg("invalid question batch")
		RespondError(c, http.StatusBadRequest)
		return
	}

	ids, total, err := h.questionService.CreateQuestions(c.Request.Context(), inputs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"created_ids":     ids,
		"total_questions": total,
	})
}
