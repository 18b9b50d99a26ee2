package dailyquiz

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
	"github.com/yourusername/aptitude-api/internal/service/oracle"
)

// ============================================================================
// Моки репозиториев для тестов оркестратора
// ============================================================================

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) AddScore(userID uint, delta int) (int64, error) {
	args := m.Called(userID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) UpdateLevel(userID uint, level string) error {
	return m.Called(userID, level).Error(0)
}

func (m *MockUserRepo) GetSeenQuestionIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockUserRepo) MarkQuestionsSeen(userID uint, questionIDs []uint) error {
	return m.Called(userID, questionIDs).Error(0)
}

func (m *MockUserRepo) WithTx(tx *gorm.DB) repository.UserRepository {
	return m
}

type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(question *entity.Question) error {
	return m.Called(question).Error(0)
}

func (m *MockQuestionRepo) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByQID(qid string) (*entity.Question, error) {
	args := m.Called(qid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByIDs(ids []uint) ([]entity.Question, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetRandomByDifficulty(difficulty string, excludeIDs []uint, limit int) ([]entity.Question, error) {
	args := m.Called(difficulty, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) CountByDifficulty(difficulty string) (int64, error) {
	args := m.Called(difficulty)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepo) WithTx(tx *gorm.DB) repository.QuestionRepository {
	return m
}

type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(assignment *entity.DailyAssignment) error {
	return m.Called(assignment).Error(0)
}

func (m *MockAssignmentRepo) GetByUserAndDate(userID uint, challengeDate string) (*entity.DailyAssignment, error) {
	args := m.Called(userID, challengeDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailyAssignment), args.Error(1)
}

func (m *MockAssignmentRepo) WithTx(tx *gorm.DB) repository.AssignmentRepository {
	return m
}

type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	return m.Called(key).Error(0)
}

func (m *MockCacheRepo) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	return m.Called(key, dest).Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Generate(ctx context.Context, req oracle.Request) ([]oracle.Candidate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]oracle.Candidate), args.Error(1)
}

// permissiveCache — кеш, который всегда отвечает успехом.
// Удобен для тестов, где прогресс и блокировка не проверяются.
func permissiveCache() *MockCacheRepo {
	cache := new(MockCacheRepo)
	cache.On("SetNX", mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Maybe()
	cache.On("Delete", mock.Anything).Return(nil).Maybe()
	cache.On("SetJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return cache
}
