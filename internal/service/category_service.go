package service

import (
	"context"
	"fmt"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	"github.com/yourusername/trivia-quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz-api/internal/service/quizmanager"
)

// CategoryQuestions описывает страницу вопросов одной категории
type CategoryQuestions struct {
	Questions       []entity.Question
	CurrentCategory string
}

// CategoryService предоставляет методы для работы с категориями
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	questionRepo repository.QuestionRepository
	config       *quizmanager.Config
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	questionRepo repository.QuestionRepository,
	config *quizmanager.Config,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
		config:       config,
	}
}

// GetCategories возвращает отображение id -> type для всех категорий.
// Если категорий нет, возвращает ErrNotFound.
func (s *CategoryService) GetCategories(ctx context.Context) (map[uint]string, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories: %w", apperrors.ErrNotFound)
	}
	return entity.CategoryTypes(categories), nil
}

// GetCategoryQuestions возвращает страницу вопросов категории вместе с ее названием
func (s *CategoryService) GetCategoryQuestions(ctx context.Context, categoryID uint, page int) (*CategoryQuestions, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	offset, ok := s.config.Offset(page)
	if !ok {
		return nil, fmt.Errorf("category %d page %d is out of range: %w", categoryID, page, apperrors.ErrNotFound)
	}

	questions, err := s.questionRepo.ListByCategory(ctx, categoryID, s.config.QuestionsPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions of category %d: %w", categoryID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("category %d page %d is empty: %w", categoryID, page, apperrors.ErrNotFound)
	}

	return &CategoryQuestions{
		Questions:       questions,
		CurrentCategory: category.Type,
	}, nil
}
