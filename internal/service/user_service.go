package service

import (
	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUserByID возвращает пользователя по ID
func (s *UserService) GetUserByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// GetSeenCount возвращает размер истории выданных вопросов
func (s *UserService) GetSeenCount(userID uint) (int, error) {
	ids, err := s.userRepo.GetSeenQuestionIDs(userID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
