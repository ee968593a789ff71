package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись, страница или свободный вопрос не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для некорректного или неполного тела запроса.
	ErrValidation = errors.New("validation failed")

	// ErrUnprocessable используется, когда хранилище отклонило операцию записи
	// (вставку или удаление) для корректно сформированного запроса.
	ErrUnprocessable = errors.New("operation cannot be processed")

	// ErrNoMoreQuestions означает, что все вопросы пула уже были показаны.
	// Это не ошибка для клиента: обработчик отвечает 200 с сообщением.
	ErrNoMoreQuestions = errors.New("no more questions")
)
