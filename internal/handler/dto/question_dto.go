package dto

import (
	"fmt"
	"strings"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz-api/internal/service"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewListQuestionResponse создает слайс DTO для списка вопросов.
// Для пустого входа возвращает пустой слайс, а не nil, чтобы в JSON был [].
func NewListQuestionResponse(questions []entity.Question) []QuestionResponse {
	list := make([]QuestionResponse, len(questions))
	for i := range questions {
		list[i] = NewQuestionResponse(&questions[i])
	}
	return list
}

// QuestionInput содержит поля создаваемого вопроса.
// Указатели позволяют отличить отсутствующее или null поле от нулевого значения.
type QuestionInput struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Difficulty *int    `json:"difficulty"`
	Category   *uint   `json:"category"`
}

// Validate проверяет, что все четыре поля переданы и не равны null
func (in QuestionInput) Validate() error {
	var missing []string
	if in.Question == nil {
		missing = append(missing, "question")
	}
	if in.Answer == nil {
		missing = append(missing, "answer")
	}
	if in.Difficulty == nil {
		missing = append(missing, "difficulty")
	}
	if in.Category == nil {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// ToNewQuestion преобразует проверенный ввод в данные для сервиса.
// Вызывать только после успешного Validate.
func (in QuestionInput) ToNewQuestion() service.NewQuestion {
	return service.NewQuestion{
		Question:   *in.Question,
		Answer:     *in.Answer,
		Difficulty: *in.Difficulty,
		Category:   *in.Category,
	}
}

// QuestionRequest представляет тело POST /questions.
// Непустой SearchTerm включает режим поиска, иначе создается вопрос.
type QuestionRequest struct {
	SearchTerm *string `json:"searchTerm"`
	QuestionInput
}

// IsSearch сообщает, выбран ли режим поиска
func (r *QuestionRequest) IsSearch() bool {
	return r.SearchTerm != nil && *r.SearchTerm != ""
}

// BatchQuestionRequest представляет запрос на пакетное создание вопросов
type BatchQuestionRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1"`
}

// ToNewQuestions проверяет каждый элемент пакета и преобразует их для сервиса
func (r *BatchQuestionRequest) ToNewQuestions() ([]service.NewQuestion, error) {
	out := make([]service.NewQuestion, 0, len(r.Questions))
	for i, in := range r.Questions {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("question #%d: %w", i+1, err)
		}
		out = append(out, in.ToNewQuestion())
	}
	return out, nil
}

// QuizCategoryRequest описывает категорию викторины; ID 0 означает любую категорию
type QuizCategoryRequest struct {
	ID   *uint  `json:"id" binding:"required"`
	Type string `json:"type"`
}

// QuizRequest представляет тело POST /quizzes
type QuizRequest struct {
	PreviousQuestions []uint               `json:"previous_questions" binding:"required"`
	QuizCategory      *QuizCategoryRequest `json:"quiz_category" binding:"required"`
}
