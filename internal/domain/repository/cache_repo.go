package repository

import "time"

// CacheRepository определяет методы для работы с кешем (Redis).
// Кеш — best-effort хранилище: прогресс выдачи и счетчики rate limiter.
// Недоступность кеша никогда не должна ломать основной поток.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	Increment(key string) (int64, error)

	// SetJSON сохраняет структуру JSON в кеше
	SetJSON(key string, value interface{}, expiration time.Duration) error

	// GetJSON получает структуру JSON из кеша
	GetJSON(key string, dest interface{}) error

	Exists(key string) (bool, error)

	// SetNX устанавливает значение ключа, только если ключ не существует.
	// Возвращает true, если ключ был установлен.
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
