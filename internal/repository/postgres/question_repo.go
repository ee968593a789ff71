package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос; ID заполняется базой
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return wrapWriteError(r.db.WithContext(ctx).Create(question).Error)
}

// CreateBatch создает пакет вопросов в одной транзакции
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
	return wrapWriteError(err)
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	if result.Error != nil {
		return wrapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count возвращает общее количество вопросов
func (r *QuestionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Question{}).Count(&count).Error
	return count, err
}

// ListPage возвращает страницу вопросов
func (r *QuestionRepo) ListPage(ctx context.Context, limit, offset int) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&questions).Error
	return questions, err
}

// ListByCategory возвращает страницу вопросов категории
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	return questions, err
}

// Search ищет вопросы, текст которых содержит term (ILIKE).
// Спецсимволы LIKE в term экранируются, поэтому term ищется буквально.
func (r *QuestionRepo) Search(ctx context.Context, term string, limit, offset int) ([]entity.Question, error) {
	var questions []entity.Question
	pattern := "%" + escapeLike(term) + "%"
	err := r.db.WithContext(ctx).
		Where("question ILIKE ?", pattern).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	return questions, err
}

// ListAll возвращает все вопросы
func (r *QuestionRepo) ListAll(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id").Find(&questions).Error
	return questions, err
}

// ListAllByCategory возвращает все вопросы категории
func (r *QuestionRepo) ListAllByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Where("category = ?", categoryID).Order("id").Find(&questions).Error
	return questions, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы шаблона LIKE (escape-символ Postgres по умолчанию: '\')
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
