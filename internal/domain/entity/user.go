package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Уровни пользователя от новичка до эксперта
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelPro          = "Pro"
	LevelExpert       = "Expert"
)

// Пороги очков для пересчета уровня (строго возрастающие)
const (
	ScoreThresholdBeginner     = 25000
	ScoreThresholdIntermediate = 50000
	ScoreThresholdAdvanced     = 75000
	ScoreThresholdPro          = 100000
)

// User представляет пользователя в системе
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email    string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`

	// Score — накопленные очки. Меняется только через AttemptService
	// в одной транзакции с записью попытки.
	Score int64  `gorm:"not null;default:0" json:"score"`
	Level string `gorm:"size:20;not null;default:'Beginner'" json:"level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// CalculateLevel пересчитывает уровень по текущим очкам
func CalculateLevel(score int64) string {
	switch {
	case score <= ScoreThresholdBeginner:
		return LevelBeginner
	case score <= ScoreThresholdIntermediate:
		return LevelIntermediate
	case score <= ScoreThresholdAdvanced:
		return LevelAdvanced
	case score <= ScoreThresholdPro:
		return LevelPro
	default:
		return LevelExpert
	}
}

// EffectiveLevel возвращает уровень пользователя, подставляя Beginner
// для пустого или неизвестного значения
func (u *User) EffectiveLevel() string {
	switch u.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelPro, LevelExpert:
		return u.Level
	default:
		return LevelBeginner
	}
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
