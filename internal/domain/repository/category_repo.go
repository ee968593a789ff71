package repository

import (
	"context"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
}
