package dailyquiz

import (
	"time"

	"github.com/yourusername/aptitude-api/internal/domain/repository"
	"github.com/yourusername/aptitude-api/internal/service/oracle"
)

// Constants for default values
const (
	DefaultDailyQuestionCount = 10
	DefaultSubTopicsPerPrompt = 3
)

// Config содержит настройки ежедневной выдачи
type Config struct {
	// DailyQuestionCount — размер ежедневного набора вопросов
	DailyQuestionCount int

	// SubTopicsPerPrompt — сколько случайных подтем передавать генератору
	SubTopicsPerPrompt int

	// OracleAttempts — сколько раз пробовать генерацию на один тир.
	// Провал партии (сеть/парсинг) не частичен: повтор запрашивает слот целиком.
	OracleAttempts int

	// ProgressTTL — время жизни записей прогресса в кеше
	ProgressTTL time.Duration

	// AssignLockTTL — время жизни best-effort блокировки от параллельной
	// генерации для одного пользователя. Корректность обеспечивает
	// уникальный индекс в БД, блокировка лишь экономит вызовы генератора.
	AssignLockTTL time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		DailyQuestionCount: DefaultDailyQuestionCount,
		SubTopicsPerPrompt: DefaultSubTopicsPerPrompt,
		OracleAttempts:     2,
		ProgressTTL:        5 * time.Minute,
		AssignLockTTL:      2 * time.Minute,
	}
}

// Dependencies группирует зависимости оркестратора
type Dependencies struct {
	UserRepo       repository.UserRepository
	QuestionRepo   repository.QuestionRepository
	AssignmentRepo repository.AssignmentRepository
	CacheRepo      repository.CacheRepository
	Oracle         oracle.Adapter
	Progress       *ProgressTracker
}
