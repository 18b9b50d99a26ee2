package dailyquiz

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/aptitude-api/internal/domain/repository"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
)

// Фазы выдачи для опроса прогресса клиентом
const (
	PhasePreparing  = "preparing"
	PhaseBank       = "bank"
	PhaseGenerating = "generating"
	PhaseReady      = "ready"
	PhaseError      = "error"
)

// ProgressStatus — снимок прогресса выдачи для одного пользователя
type ProgressStatus struct {
	Phase     string    `json:"phase"`
	Done      int       `json:"done"`
	Total     int       `json:"total"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressTracker публикует прогресс выдачи в кеш с TTL.
// Это side-channel для UI, а не требование корректности: любая ошибка
// кеша логируется и глотается, основной поток не блокируется. Записи
// истекают сами, замена глобальной in-memory карты исходной системы.
type ProgressTracker struct {
	cache repository.CacheRepository
	ttl   time.Duration
}

// NewProgressTracker создает новый трекер прогресса
func NewProgressTracker(cache repository.CacheRepository, ttl time.Duration) *ProgressTracker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProgressTracker{cache: cache, ttl: ttl}
}

func progressKey(userID uint) string {
	return fmt.Sprintf("daily:progress:%d", userID)
}

// Publish сохраняет снимок прогресса. Никогда не возвращает ошибку.
func (t *ProgressTracker) Publish(userID uint, phase string, done, total int, message string) {
	if t == nil || t.cache == nil {
		return
	}

	status := ProgressStatus{
		Phase:     phase,
		Done:      done,
		Total:     total,
		Message:   message,
		UpdatedAt: time.Now().UTC(),
	}

	if err := t.cache.SetJSON(progressKey(userID), status, t.ttl); err != nil {
		log.Printf("[Progress] Не удалось опубликовать прогресс user=%d: %v", userID, err)
	}
}

// Get возвращает текущий снимок прогресса пользователя
// или apperrors.ErrNotFound, если записи нет (или она истекла)
func (t *ProgressTracker) Get(userID uint) (*ProgressStatus, error) {
	if t == nil || t.cache == nil {
		return nil, apperrors.ErrNotFound
	}

	var status ProgressStatus
	if err := t.cache.GetJSON(progressKey(userID), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
