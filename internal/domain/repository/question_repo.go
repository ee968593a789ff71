package repository

import (
	"context"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Все выборки списков упорядочены по ID по возрастанию.
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	CreateBatch(ctx context.Context, questions []entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// Постраничные выборки
	ListPage(ctx context.Context, limit, offset int) ([]entity.Question, error)
	ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]entity.Question, error)
	// Search ищет вопросы по подстроке без учета регистра
	Search(ctx context.Context, term string, limit, offset int) ([]entity.Question, error)

	// Полные выборки для пула викторины и экспорта
	ListAll(ctx context.Context) ([]entity.Question, error)
	ListAllByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error)
}
