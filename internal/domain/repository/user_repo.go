package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)

	// AddScore атомарно прибавляет delta к очкам (score = score + delta)
	// и возвращает новое значение. Вызывается только внутри транзакции
	// вместе с записью попытки.
	AddScore(userID uint, delta int) (int64, error)

	// UpdateLevel точечно обновляет уровень без полного Save
	UpdateLevel(userID uint, level string) error

	// GetSeenQuestionIDs возвращает все ID вопросов, когда-либо
	// выданных пользователю (история append-only)
	GetSeenQuestionIDs(userID uint) ([]uint, error)

	// MarkQuestionsSeen дописывает вопросы в историю пользователя.
	// Повторная отметка уже виденного вопроса не является ошибкой.
	MarkQuestionsSeen(userID uint, questionIDs []uint) error

	// WithTx возвращает копию репозитория, работающую в рамках транзакции
	WithTx(tx *gorm.DB) UserRepository
}
