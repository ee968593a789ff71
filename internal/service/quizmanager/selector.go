package quizmanager

import (
	"fmt"
	"math/rand/v2"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
)

// RandomQuestionSelector выбирает случайный непоказанный вопрос из пула.
// Используется выборка с возвращением и отбраковкой уже показанных вопросов,
// число попыток ограничено MaxDrawAttempts.
type RandomQuestionSelector struct {
	maxAttempts int
	intN        func(n int) int
}

// NewRandomQuestionSelector создаёт селектор с глобальным источником math/rand/v2
func NewRandomQuestionSelector(config *Config) *RandomQuestionSelector {
	return NewRandomQuestionSelectorWithSource(config, rand.IntN)
}

// NewRandomQuestionSelectorWithSource создаёт селектор с заданным источником случайных индексов.
// intN должен возвращать число в [0, n).
func NewRandomQuestionSelectorWithSource(config *Config, intN func(n int) int) *RandomQuestionSelector {
	attempts := config.MaxDrawAttempts
	if attempts < 1 {
		attempts = DefaultMaxDrawAttempts
	}
	return &RandomQuestionSelector{
		maxAttempts: attempts,
		intN:        intN,
	}
}

// SelectNextQuestion выбирает вопрос из candidates, которого нет в previousIDs.
// Возвращает:
//
//	ErrNotFound:        пул пуст или лимит попыток исчерпан
//	ErrNoMoreQuestions: показано не меньше вопросов, чем есть в пуле
func (s *RandomQuestionSelector) SelectNextQuestion(candidates []entity.Question, previousIDs []uint) (*entity.Question, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("empty question pool: %w", apperrors.ErrNotFound)
	}
	if len(previousIDs) >= len(candidates) {
		return nil, apperrors.ErrNoMoreQuestions
	}

	seen := entity.QuestionIDSet(previousIDs)
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		chosen := &candidates[s.intN(len(candidates))]
		if _, ok := seen[chosen.ID]; !ok {
			return chosen, nil
		}
	}

	return nil, fmt.Errorf("no unseen question after %d attempts: %w", s.maxAttempts, apperrors.ErrNotFound)
}
