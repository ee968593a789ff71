package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	"github.com/yourusername/trivia-quiz-api/internal/domain/repository"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz-api/internal/service/quizmanager"
)

// QuestionPage описывает страницу вопросов со счетчиком и справочником категорий
type QuestionPage struct {
	Questions      []entity.Question
	TotalQuestions int64
	Categories     map[uint]string
}

// NewQuestion содержит данные для создания вопроса
type NewQuestion struct {
	Question   string
	Answer     string
	Difficulty int
	Category   uint
}

func (n NewQuestion) toEntity() entity.Question {
	return entity.Question{
		Question:   n.Question,
		Answer:     n.Answer,
		Difficulty: n.Difficulty,
		Category:   n.Category,
	}
}

// QuestionService предоставляет методы для работы с вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	config       *quizmanager.Config
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	config *quizmanager.Config,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		config:       config,
	}
}

// GetQuestionsPage возвращает страницу вопросов, общее количество вопросов и все категории.
// ErrNotFound, если нет вопросов, нет категорий или страница пуста.
func (s *QuestionService) GetQuestionsPage(ctx context.Context, page int) (*QuestionPage, error) {
	offset, ok := s.config.Offset(page)
	if !ok {
		return nil, fmt.Errorf("questions page %d is out of range: %w", page, apperrors.ErrNotFound)
	}

	total, err := s.questionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	questions, err := s.questionRepo.ListPage(ctx, s.config.QuestionsPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions page %d: %w", page, err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if total == 0 || len(categories) == 0 || len(questions) == 0 {
		return nil, fmt.Errorf("questions page %d: %w", page, apperrors.ErrNotFound)
	}

	return &QuestionPage{
		Questions:      questions,
		TotalQuestions: total,
		Categories:     entity.CategoryTypes(categories),
	}, nil
}

// DeleteQuestion удаляет вопрос. Любая ошибка хранилища при удалении
// превращается в ErrUnprocessable; исходная ошибка только логируется.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Error().Err(err).Uint("question_id", id).Msg("failed to delete question")
		return fmt.Errorf("delete question %d: %w", id, apperrors.ErrUnprocessable)
	}
	return nil
}

// CreateQuestion сохраняет новый вопрос и возвращает его ID и общее количество вопросов
func (s *QuestionService) CreateQuestion(ctx context.Context, input NewQuestion) (uint, int64, error) {
	question := input.toEntity()
	if err := s.questionRepo.Create(ctx, &question); err != nil {
		logging.FromContext(ctx).Error().Err(err).Uint("category", input.Category).Msg("failed to insert question")
		return 0, 0, fmt.Errorf("create question: %w", apperrors.ErrUnprocessable)
	}

	total, err := s.questionRepo.Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return question.ID, total, nil
}

// CreateQuestions сохраняет пакет вопросов в одной транзакции
func (s *QuestionService) CreateQuestions(ctx context.Context, inputs []NewQuestion) ([]uint, int64, error) {
	if len(inputs) == 0 {
		return nil, 0, fmt.Errorf("empty batch: %w", apperrors.ErrValidation)
	}

	questions := make([]entity.Question, 0, len(inputs))
	for _, in := range inputs {
		questions = append(questions, in.toEntity())
	}

	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		logging.FromContext(ctx).Error().Err(err).Int("batch_size", len(questions)).Msg("failed to insert question batch")
		return nil, 0, fmt.Errorf("create %d questions: %w", len(questions), apperrors.ErrUnprocessable)
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	total, err := s.questionRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return ids, total, nil
}

// SearchQuestions ищет вопросы по подстроке (без учета регистра) постранично.
// ErrNotFound, если на странице нет совпадений.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string, page int) ([]entity.Question, error) {
	if term == "" {
		return nil, fmt.Errorf("empty search term: %w", apperrors.ErrValidation)
	}

	offset, ok := s.config.Offset(page)
	if !ok {
		return nil, fmt.Errorf("search %q page %d is out of range: %w", term, page, apperrors.ErrNotFound)
	}

	questions, err := s.questionRepo.Search(ctx, term, s.config.QuestionsPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("search %q page %d: %w", term, page, apperrors.ErrNotFound)
	}
	return questions, nil
}

// ExportQuestions возвращает все вопросы и справочник категорий для выгрузки.
// Пустой банк вопросов не считается ошибкой.
func (s *QuestionService) ExportQuestions(ctx context.Context) ([]entity.Question, map[uint]string, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list questions: %w", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return questions, entity.CategoryTypes(categories), nil
}
