package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий банка вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// WithTx возвращает копию репозитория в рамках транзакции
func (r *QuestionRepo) WithTx(tx *gorm.DB) repository.QuestionRepository {
	return &QuestionRepo{db: tx}
}

// Create вставляет новый вопрос в банк
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByQID возвращает вопрос по публичному идентификатору
func (r *QuestionRepo) GetByQID(qid string) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Where("qid = ?", qid).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByIDs возвращает вопросы в порядке переданных ID.
// Порядок важен: журнал выдачи хранит вопросы в порядке выбора по тирам.
func (r *QuestionRepo) GetByIDs(ids []uint) ([]entity.Question, error) {
	if len(ids) == 0 {
		return []entity.Question{}, nil
	}

	var questions []entity.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}

	// БД не гарантирует порядок IN-выборки, восстанавливаем его вручную
	byID := make(map[uint]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	ordered := make([]entity.Question, 0, len(questions))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// GetRandomByDifficulty возвращает случайные вопросы заданной сложности,
// исключая переданные ID. ORDER BY RANDOM() приемлем: выборка ограничена
// одним тиром и небольшим limit
func (r *QuestionRepo) GetRandomByDifficulty(difficulty string, excludeIDs []uint, limit int) ([]entity.Question, error) {
	if limit <= 0 {
		return []entity.Question{}, nil
	}

	query := r.db.Where("difficulty = ?", difficulty)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var questions []entity.Question
	err := query.Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

// CountByDifficulty возвращает количество вопросов заданной сложности в банке
func (r *QuestionRepo) CountByDifficulty(difficulty string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).
		Where("difficulty = ?", difficulty).
		Count(&count).Error
	return count, err
}
