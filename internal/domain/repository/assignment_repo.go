package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
)

// AssignmentRepository определяет методы для журнала ежедневной выдачи
type AssignmentRepository interface {
	// Create вставляет строку выдачи. При нарушении уникальности
	// (user_id, challenge_date) возвращает apperrors.ErrConflict —
	// это штатный исход гонки, а не ошибка.
	Create(assignment *entity.DailyAssignment) error

	// GetByUserAndDate возвращает выдачу пользователя за день
	// или apperrors.ErrNotFound
	GetByUserAndDate(userID uint, challengeDate string) (*entity.DailyAssignment, error)

	// WithTx возвращает копию репозитория, работающую в рамках транзакции
	WithTx(tx *gorm.DB) AssignmentRepository
}
