package entity

import "time"

// UserSeenQuestion хранит факт выдачи вопроса пользователю.
// Это журнал истории (append-only), а не справочник вопросов: строки
// никогда не удаляются, по ним строится фильтр "без повторов".
type UserSeenQuestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_seen_questions_user_question,priority:1;index" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_user_seen_questions_user_question,priority:2" json:"question_id"`
	SeenAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"seen_at"`
}

// TableName задает имя таблицы для GORM.
func (UserSeenQuestion) TableName() string {
	return "user_seen_questions"
}
