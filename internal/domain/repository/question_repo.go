package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с банком вопросов
type QuestionRepository interface {
	// Create вставляет новый вопрос в банк. Каждая вставка получает
	// свежий ID; дедупликация по содержимому не выполняется.
	Create(question *entity.Question) error

	GetByID(id uint) (*entity.Question, error)
	GetByQID(qid string) (*entity.Question, error)

	// GetByIDs возвращает вопросы в порядке переданных ID
	GetByIDs(ids []uint) ([]entity.Question, error)

	// GetRandomByDifficulty возвращает до limit случайных вопросов заданной
	// сложности, исключая уже виденные пользователем и уже выбранные сегодня.
	// Выборка без фиксированного порядка, чтобы разные пользователи
	// получали разные вопросы из банка.
	GetRandomByDifficulty(difficulty string, excludeIDs []uint, limit int) ([]entity.Question, error)

	CountByDifficulty(difficulty string) (int64, error)

	// WithTx возвращает копию репозитория, работающую в рамках транзакции
	WithTx(tx *gorm.DB) QuestionRepository
}
