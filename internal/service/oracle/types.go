package oracle

import "time"

// Request описывает запрос к генератору на одну партию вопросов
type Request struct {
	// Difficulty — уровень сложности партии (Easy/Medium/Hard)
	Difficulty string
	// Count — сколько вопросов запрошено
	Count int
	// SubTopics — подсказки по темам для разнообразия генерации
	SubTopics []string
}

// Candidate — сырой вопрос-кандидат от генератора.
// Ничего в нем не считается корректным до валидации: correct_answer
// может быть числом, буквой, текстом варианта или произвольной фразой.
type Candidate struct {
	Text          string      `json:"question_text"`
	Options       []string    `json:"options"`
	CorrectAnswer interface{} `json:"correct_answer"`
	Explanation   string      `json:"explanation"`
	Hint          string      `json:"hint"`
	Category      string      `json:"category"`
}

// Config содержит настройки клиента генератора
type Config struct {
	// APIKey — ключ OpenAI-совместимого API
	APIKey string
	// BaseURL — адрес API (OpenRouter или другой совместимый провайдер)
	BaseURL string
	// Model — идентификатор модели
	Model string
	// Timeout — предельное время одного запроса генерации.
	// Вызов может занимать секунды, поэтому он всегда выполняется
	// вне транзакций БД.
	Timeout time.Duration
}

// DefaultConfig возвращает конфигурацию генератора по умолчанию
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "google/gemini-2.0-flash-001",
		Timeout: 60 * time.Second,
	}
}
