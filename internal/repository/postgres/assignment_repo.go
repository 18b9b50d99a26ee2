package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
)

// AssignmentRepo реализует repository.AssignmentRepository
type AssignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo создает новый репозиторий журнала выдачи
func NewAssignmentRepo(db *gorm.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// WithTx возвращает копию репозитория в рамках транзакции
func (r *AssignmentRepo) WithTx(tx *gorm.DB) repository.AssignmentRepository {
	return &AssignmentRepo{db: tx}
}

// Create вставляет строку выдачи.
// Уникальный индекс idx_daily_assignments_user_date гарантирует не более
// одной строки на (user, day): нарушение 23505 маппится в ErrConflict,
// вызывающая сторона обязана перечитать строку победителя гонки.
func (r *AssignmentRepo) Create(assignment *entity.DailyAssignment) error {
	if err := r.db.Create(assignment).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: assignment user=%d date=%s",
				apperrors.ErrConflict, assignment.UserID, assignment.ChallengeDate)
		}
		return err
	}
	return nil
}

// GetByUserAndDate возвращает выдачу пользователя за день
func (r *AssignmentRepo) GetByUserAndDate(userID uint, challengeDate string) (*entity.DailyAssignment, error) {
	var assignment entity.DailyAssignment
	err := r.db.Where("user_id = ? AND challenge_date = ?", userID, challengeDate).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}
