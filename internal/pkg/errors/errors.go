package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния. Репозитории
	// маппят на него unique violation (23505): проигравший гонку
	// вставки журнала выдачи обязан перечитать строку победителя.
	ErrConflict = errors.New("resource state conflict")

	// ErrAttemptFinished используется при попытке изменить попытку,
	// уже достигшую терминального статуса (correct/wrong/gave_up).
	ErrAttemptFinished = errors.New("attempt already finished")

	// ErrNotReady используется, когда выдача на сегодня не смогла
	// собрать ни одного вопроса (банк пуст и генерация недоступна).
	ErrNotReady = errors.New("daily assignment not ready")
)
