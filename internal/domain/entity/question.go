package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Уровни сложности вопросов
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Difficulties перечисляет уровни сложности в порядке возрастания.
// Порядок важен: оркестратор обходит тиры именно в этой последовательности.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValidDifficulty проверяет, является ли строка известным уровнем сложности
func IsValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос из банка.
// Строка неизменяема после создания: ядро никогда не редактирует и не
// удаляет вопросы, только добавляет новые.
type Question struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	QID          string      `gorm:"column:qid;size:40;not null;uniqueIndex" json:"qid"` // Публичный идентификатор
	Text         string      `gorm:"type:text;not null" json:"text"`
	Options      StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectIndex int         `gorm:"not null" json:"-"` // Скрыто от клиента
	Difficulty   string      `gorm:"size:10;not null;index" json:"difficulty"`
	Category     string      `gorm:"size:50;not null" json:"category"`
	Hint         string      `gorm:"type:text;not null;default:''" json:"-"`
	Explanation  string      `gorm:"type:text;not null;default:''" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedIndex int) bool {
	return selectedIndex == q.CorrectIndex
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedIndex int) bool {
	return selectedIndex >= 0 && selectedIndex < len(q.Options)
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
