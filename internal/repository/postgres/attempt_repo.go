package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// WithTx возвращает копию репозитория в рамках транзакции
func (r *AttemptRepo) WithTx(tx *gorm.DB) repository.AttemptRepository {
	return &AttemptRepo{db: tx}
}

// GetForUpdate читает попытку с блокировкой строки.
// Две конкурирующие отправки ответа по одной попытке выстраиваются
// в очередь: вторая увидит терминальный статус первой и будет отклонена.
func (r *AttemptRepo) GetForUpdate(userID, questionID uint, attemptDate string) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND question_id = ? AND attempt_date = ?", userID, questionID, attemptDate).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// Get читает попытку без блокировки
func (r *AttemptRepo) Get(userID, questionID uint, attemptDate string) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.Where("user_id = ? AND question_id = ? AND attempt_date = ?", userID, questionID, attemptDate).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// GetByUserAndDate возвращает все попытки пользователя за день
func (r *AttemptRepo) GetByUserAndDate(userID uint, attemptDate string) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.Where("user_id = ? AND attempt_date = ?", userID, attemptDate).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

// Create создает новую попытку.
// Уникальный индекс (user_id, question_id, attempt_date) защищает от
// двойного создания при гонке: 23505 маппится в ErrConflict.
func (r *AttemptRepo) Create(attempt *entity.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: attempt user=%d question=%d date=%s",
				apperrors.ErrConflict, attempt.UserID, attempt.QuestionID, attempt.AttemptDate)
		}
		return err
	}
	return nil
}

// Update сохраняет изменения попытки
func (r *AttemptRepo) Update(attempt *entity.Attempt) error {
	return r.db.Save(attempt).Error
}
