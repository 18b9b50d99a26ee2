package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
	"github.com/yourusername/aptitude-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и входа
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register регистрирует нового пользователя и возвращает токен доступа
func (s *AuthService) Register(username, email, password string) (*entity.User, string, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password, // хешируется в BeforeSave
		Level:    entity.LevelBeginner,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[Auth] Зарегистрирован новый пользователь ID=%d email=%s", user.ID, user.Email)
	return user, token, nil
}

// Login проверяет учетные данные и возвращает токен доступа
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
