package quizmanager

import "math"

// Constants for default values
const (
	// DefaultQuestionsPerPage задает размер страницы для списков вопросов
	DefaultQuestionsPerPage = 10
	// DefaultMaxDrawAttempts ограничивает, сколько раз selector тянет случайный вопрос
	// прежде чем сдаться (попытки 0..100 включительно)
	DefaultMaxDrawAttempts = 101
)

// Config содержит настройки пагинации и выбора вопросов викторины
type Config struct {
	QuestionsPerPage int // Сколько вопросов возвращается на одну страницу
	MaxDrawAttempts  int // Лимит попыток случайного выбора непоказанного вопроса
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		QuestionsPerPage: DefaultQuestionsPerPage,
		MaxDrawAttempts:  DefaultMaxDrawAttempts,
	}
}

// Offset вычисляет смещение для страницы (1-indexed); page < 1 считается первой страницей.
// ok == false, если смещение не помещается в int: такая страница заведомо пуста.
func (c *Config) Offset(page int) (offset int, ok bool) {
	if page < 1 {
		page = 1
	}
	if c.QuestionsPerPage > 0 && page-1 > math.MaxInt/c.QuestionsPerPage {
		return 0, false
	}
	return (page - 1) * c.QuestionsPerPage, true
}
