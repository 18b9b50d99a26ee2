package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками
type AttemptRepository interface {
	// GetForUpdate читает попытку с блокировкой строки (SELECT ... FOR UPDATE).
	// Сериализует конкурирующие переходы по одной и той же попытке.
	// Возвращает apperrors.ErrNotFound, если попытки еще нет.
	GetForUpdate(userID, questionID uint, attemptDate string) (*entity.Attempt, error)

	Get(userID, questionID uint, attemptDate string) (*entity.Attempt, error)

	// GetByUserAndDate возвращает все попытки пользователя за день
	GetByUserAndDate(userID uint, attemptDate string) ([]entity.Attempt, error)

	Create(attempt *entity.Attempt) error
	Update(attempt *entity.Attempt) error

	// WithTx возвращает копию репозитория, работающую в рамках транзакции
	WithTx(tx *gorm.DB) AttemptRepository
}
