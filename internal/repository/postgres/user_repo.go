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

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// WithTx возвращает копию репозитория в рамках транзакции
func (r *UserRepo) WithTx(tx *gorm.DB) repository.UserRepository {
	return &UserRepo{db: tx}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user email=%s", apperrors.ErrConflict, user.Email)
		}
		return err
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddScore атомарно прибавляет delta к очкам через gorm.Expr
// и перечитывает новое значение
func (r *UserRepo) AddScore(userID uint, delta int) (int64, error) {
	result := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Update("score", gorm.Expr("score + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, apperrors.ErrNotFound
	}

	var score int64
	err := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Pluck("score", &score).Error
	return score, err
}

// UpdateLevel точечно обновляет уровень пользователя
func (r *UserRepo) UpdateLevel(userID uint, level string) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Update("level", level).
		Error
}

// GetSeenQuestionIDs возвращает полную историю выданных вопросов
func (r *UserRepo) GetSeenQuestionIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.UserSeenQuestion{}).
		Where("user_id = ?", userID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// MarkQuestionsSeen дописывает вопросы в историю.
// ON CONFLICT DO NOTHING: повторная выдача того же вопроса (например,
// проигранная гонка выдачи) не должна ронять транзакцию.
func (r *UserRepo) MarkQuestionsSeen(userID uint, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}

	rows := make([]entity.UserSeenQuestion, 0, len(questionIDs))
	for _, qid := range questionIDs {
		rows = append(rows, entity.UserSeenQuestion{UserID: userID, QuestionID: qid})
	}

	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
