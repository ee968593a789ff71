package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz-api/internal/handler/dto"
	"github.com/yourusername/trivia-quiz-api/internal/service"
)

// Ключи контекста Gin для параметров пути
const (
	CategoryIDKey = "categoryID"
	QuestionIDKey = "questionID"
)

// CategoryHandler обрабатывает запросы, связанные с категориями
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories возвращает все категории в виде {id: type}
// GET /v1/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// GetCategoryQuestions возвращает страницу вопросов категории
// GET /v1/categories/:id/questions
func (h *CategoryHandler) GetCategoryQuestions(c *gin.Context) {
	categoryID := c.MustGet(CategoryIDKey).(uint) // Получаем из контекста

	result, err := h.categoryService.GetCategoryQuestions(c.Request.Context(), categoryID, pageParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        dto.NewListQuestionResponse(result.Questions),
		"total_questions":  len(result.Questions),
		"current_category": result.CurrentCategory,
	})
}

// pageParam читает номер страницы из query. Нечисловое или отсутствующее значение дает 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
