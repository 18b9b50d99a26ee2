package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// UintArray - пользовательский тип для хранения списка ID в JSONB
type UintArray []uint

// Scan реализует интерфейс sql.Scanner для UintArray
func (o *UintArray) Scan(value interface{}) error {
	if value == nil {
		*o = UintArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = UintArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для UintArray
func (o UintArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// DailyAssignment — журнал выдачи вопросов: одна строка на пару
// (пользователь, календарный день). Уникальный составной индекс является
// якорем идемпотентности: при гонке двух одновременных выдач вставку
// выигрывает ровно одна, проигравшая перечитывает строку победителя.
// Строка создается оркестратором и никогда не обновляется.
type DailyAssignment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_daily_assignments_user_date,priority:1" json:"user_id"`
	ChallengeDate string    `gorm:"size:10;not null;uniqueIndex:idx_daily_assignments_user_date,priority:2;index" json:"challenge_date"` // YYYY-MM-DD
	QuestionIDs   UintArray `gorm:"type:jsonb;not null" json:"question_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (DailyAssignment) TableName() string {
	return "daily_assignments"
}

// ChallengeDateFormat — формат календарного дня в журнале выдачи
const ChallengeDateFormat = "2006-01-02"

// ChallengeDay форматирует момент времени в календарный день выдачи (UTC)
func ChallengeDay(t time.Time) string {
	return t.UTC().Format(ChallengeDateFormat)
}
