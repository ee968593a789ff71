package service

import (
	"context"
	"fmt"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	"github.com/yourusername/trivia-quiz-api/internal/domain/repository"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
)

// QuestionSelector выбирает следующий вопрос из пула
type QuestionSelector interface {
	SelectNextQuestion(candidates []entity.Question, previousIDs []uint) (*entity.Question, error)
}

// QuizService реализует режим игры: выдает случайный непоказанный вопрос
type QuizService struct {
	questionRepo repository.QuestionRepository
	selector     QuestionSelector
}

// NewQuizService создает новый сервис викторины
func NewQuizService(questionRepo repository.QuestionRepository, selector QuestionSelector) *QuizService {
	return &QuizService{
		questionRepo: questionRepo,
		selector:     selector,
	}
}

// NextQuestion возвращает случайный вопрос категории categoryID (0: любая категория),
// которого нет в previousIDs.
// Ошибки selector-а (ErrNotFound, ErrNoMoreQuestions) возвращаются без изменений.
func (s *QuizService) NextQuestion(ctx context.Context, categoryID uint, previousIDs []uint) (*entity.Question, error) {
	candidates, err := s.loadPool(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	question, err := s.selector.SelectNextQuestion(candidates, previousIDs)
	if err != nil {
		logging.FromContext(ctx).Debug().
			Err(err).
			Uint("category", categoryID).
			Int("pool_size", len(candidates)).
			Int("previous", len(previousIDs)).
			Msg("quiz question not selected")
		return nil, err
	}
	return question, nil
}

// loadPool загружает пул вопросов викторины
func (s *QuizService) loadPool(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	var (
		candidates []entity.Question
		err        error
	)
	if categoryID == 0 {
		candidates, err = s.questionRepo.ListAll(ctx)
	} else {
		candidates, err = s.questionRepo.ListAllByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz pool for category %d: %w", categoryID, err)
	}
	return candidates, nil
}
