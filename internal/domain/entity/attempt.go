package entity

import "time"

// Статусы попытки. pending и hint_used — промежуточные,
// correct/wrong/gave_up — терминальные (строка после них неизменяема).
const (
	AttemptStatusPending  = "pending"
	AttemptStatusHintUsed = "hint_used"
	AttemptStatusCorrect  = "correct"
	AttemptStatusWrong    = "wrong"
	AttemptStatusGaveUp   = "gave_up"
)

// Attempt представляет попытку пользователя по одному вопросу за один день.
// Уникальный составной индекс (user_id, question_id, attempt_date)
// гарантирует не более одной попытки на вопрос в день.
type Attempt struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"not null;uniqueIndex:idx_attempts_user_question_date,priority:1" json:"user_id"`
	QuestionID    uint   `gorm:"not null;uniqueIndex:idx_attempts_user_question_date,priority:2" json:"question_id"`
	AttemptDate   string `gorm:"size:10;not null;uniqueIndex:idx_attempts_user_question_date,priority:3" json:"attempt_date"` // YYYY-MM-DD
	Status        string `gorm:"size:10;not null;default:'pending'" json:"status"`
	SelectedIndex *int   `gorm:"" json:"selected_index,omitempty"` // NULL пока ответ не дан
	PointsEarned  int    `gorm:"not null;default:0" json:"points_earned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}

// IsTerminal сообщает, достигла ли попытка терминального статуса
func (a *Attempt) IsTerminal() bool {
	return IsTerminalStatus(a.Status)
}

// IsTerminalStatus сообщает, является ли статус терминальным
func IsTerminalStatus(status string) bool {
	switch status {
	case AttemptStatusCorrect, AttemptStatusWrong, AttemptStatusGaveUp:
		return true
	}
	return false
}

// CanAnswer сообщает, допустим ли переход в correct/wrong/gave_up.
// Разрешено только из pending и hint_used.
func (a *Attempt) CanAnswer() bool {
	return a.Status == AttemptStatusPending || a.Status == AttemptStatusHintUsed
}

// HintCharged сообщает, был ли уже списан штраф за подсказку
func (a *Attempt) HintCharged() bool {
	return a.Status == AttemptStatusHintUsed
}
