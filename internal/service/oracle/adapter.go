package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Adapter запрашивает вопросы-кандидаты у внешнего генератора.
// Контракт: ответ, который не удалось разобрать, — полный провал запроса
// (пустой результат с ошибкой), а не частичный; политика ретраев живет
// у вызывающей стороны.
type Adapter interface {
	Generate(ctx context.Context, req Request) ([]Candidate, error)
}

// OpenAIOracle реализует Adapter поверх OpenAI-совместимого API
type OpenAIOracle struct {
	client *openai.Client
	config Config
}

// NewOpenAIOracle создает новый адаптер генератора
func NewOpenAIOracle(cfg Config) (*OpenAIOracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIOracle{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// batchEnvelope — ожидаемая структура ответа генератора
type batchEnvelope struct {
	Questions []Candidate `json:"questions"`
}

// Generate запрашивает req.Count вопросов-кандидатов одной партией.
// Сетевые ошибки и неразобранный ответ возвращаются как ошибка всей партии.
func (o *OpenAIOracle) Generate(ctx context.Context, req Request) ([]Candidate, error) {
	if req.Count <= 0 {
		return []Candidate{}, nil
	}

	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("oracle returned no choices")
	}

	candidates, err := ParseBatch(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	if len(candidates) > req.Count {
		// Генератор иногда возвращает больше запрошенного — лишнее отбрасываем
		candidates = candidates[:req.Count]
	}

	log.Printf("[Oracle] Получено %d/%d кандидатов уровня %s", len(candidates), req.Count, req.Difficulty)
	return candidates, nil
}

// ParseBatch разбирает сырой текст ответа генератора.
// Терпимо относится к markdown-обертке, но структурно неверный JSON —
// провал всей партии.
func ParseBatch(raw string) ([]Candidate, error) {
	clean := StripFences(raw)

	var envelope batchEnvelope
	if err := json.Unmarshal([]byte(clean), &envelope); err != nil {
		return nil, fmt.Errorf("oracle response is not valid JSON: %w", err)
	}

	valid := make([]Candidate, 0, len(envelope.Questions))
	for i, c := range envelope.Questions {
		if err := ValidateCandidate(&c); err != nil {
			log.Printf("[Oracle] Кандидат #%d отброшен: %v", i, err)
			continue
		}
		valid = append(valid, c)
	}
	return valid, nil
}

// StripFences убирает markdown-ограждения (```json ... ```), которыми
// генератор может обернуть вывод несмотря на инструкции
func StripFences(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

// ValidateCandidate проверяет обязательную форму кандидата:
// непустой текст, ровно 4 непустых варианта, непустое объяснение
func ValidateCandidate(c *Candidate) error {
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(c.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(c.Options))
	}
	for i, opt := range c.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if c.CorrectAnswer == nil {
		return fmt.Errorf("missing correct_answer")
	}
	return nil
}
