package dto

import "github.com/yourusername/aptitude-api/internal/domain/entity"

// UserResponse представляет публичный профиль пользователя
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Score    int64  `json:"score"`    // Накопленные очки
	Level    string `json:"level"`    // Текущий уровень (Beginner..Expert)
}

// NewUserResponse собирает ответ из сущности пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Score:    user.Score,
		Level:    user.EffectiveLevel(),
	}
}

// AuthResponse представляет ответ на регистрацию или вход
type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
}
