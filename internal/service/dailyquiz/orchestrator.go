package dailyquiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
	"github.com/yourusername/aptitude-api/internal/service/oracle"
)

// Orchestrator собирает ежедневный набор вопросов для пользователя:
// сначала переиспользует невиданные вопросы из банка, затем догенерирует
// недостающее через внешний генератор, и фиксирует выдачу одной
// идемпотентной записью журнала на (пользователь, день).
type Orchestrator struct {
	config *Config
	deps   *Dependencies
}

// NewOrchestrator создает новый оркестратор выдачи
func NewOrchestrator(config *Config, deps *Dependencies) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{config: config, deps: deps}
}

// EnsureAssigned гарантирует, что у пользователя есть выдача на сегодня,
// и возвращает ее. Повторный вызов в тот же день возвращает существующую
// строку без генерации и мутаций. Безопасен при конкурирующих вызовах:
// не более одной строки на (user, day) обеспечивает уникальный индекс БД.
func (o *Orchestrator) EnsureAssigned(ctx context.Context, userID uint) (*entity.DailyAssignment, error) {
	today := entity.ChallengeDay(time.Now())

	// Идемпотентность: выдача уже существует — возвращаем как есть
	existing, err := o.deps.AssignmentRepo.GetByUserAndDate(userID, today)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}

	// Best-effort блокировка: гасит параллельную дорогую генерацию для
	// одного пользователя. Корректность от нее не зависит — при
	// недоступности кеша продолжаем (fail-open).
	lockKey := fmt.Sprintf("daily:assign:lock:%d", userID)
	acquired, lockErr := o.deps.CacheRepo.SetNX(lockKey, 1, o.config.AssignLockTTL)
	if lockErr == nil && !acquired {
		// Другой обработчик уже собирает выдачу — клиенту остается опрос
		return nil, fmt.Errorf("%w: assignment in progress for user %d", apperrors.ErrNotReady, userID)
	}
	if lockErr == nil {
		defer func() {
			if delErr := o.deps.CacheRepo.Delete(lockKey); delErr != nil {
				log.Printf("[DailyQuiz] Не удалось снять блокировку user=%d: %v", userID, delErr)
			}
		}()
	}

	user, err := o.deps.UserRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	distribution := ResolveDistribution(user.EffectiveLevel(), o.config.DailyQuestionCount)
	total := o.config.DailyQuestionCount

	o.deps.Progress.Publish(userID, PhasePreparing, 0, total,
		fmt.Sprintf("Preparing %s questions...", user.EffectiveLevel()))

	seenIDs, err := o.deps.UserRepo.GetSeenQuestionIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen questions for user %d: %w", userID, err)
	}
	log.Printf("[DailyQuiz] Пользователь %d видел %d вопросов", userID, len(seenIDs))

	assignedIDs := o.fillTiers(ctx, userID, distribution, seenIDs, total)

	if len(assignedIDs) == 0 {
		// Банк пуст и генерация недоступна: строку не пишем, чтобы
		// повторный запрос мог попробовать снова
		o.deps.Progress.Publish(userID, PhaseError, 0, total, "Could not prepare any questions.")
		return nil, fmt.Errorf("%w: no questions produced for user %d", apperrors.ErrNotReady, userID)
	}

	assignment := &entity.DailyAssignment{
		UserID:        userID,
		ChallengeDate: today,
		QuestionIDs:   assignedIDs,
	}

	if err := o.deps.AssignmentRepo.Create(assignment); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Проиграли гонку: отбрасываем свою работу и перечитываем
			// строку победителя. Сгенерированные вопросы остаются в банке.
			log.Printf("[DailyQuiz] Гонка выдачи user=%d date=%s, перечитываю строку победителя", userID, today)
			winner, readErr := o.deps.AssignmentRepo.GetByUserAndDate(userID, today)
			if readErr != nil {
				return nil, fmt.Errorf("failed to re-read winning assignment: %w", readErr)
			}
			o.deps.Progress.Publish(userID, PhaseReady, total, total, "Questions already exist for today!")
			return winner, nil
		}
		return nil, fmt.Errorf("failed to persist assignment: %w", err)
	}

	// История append-only; повторная отметка вопроса безвредна
	if err := o.deps.UserRepo.MarkQuestionsSeen(userID, assignedIDs); err != nil {
		log.Printf("[DailyQuiz] Не удалось дописать историю user=%d: %v", userID, err)
	}

	log.Printf("[DailyQuiz] Пользователю %d выдано %d вопросов на %s", userID, len(assignedIDs), today)
	o.deps.Progress.Publish(userID, PhaseReady, len(assignedIDs), total,
		fmt.Sprintf("All %d questions ready!", len(assignedIDs)))
	return assignment, nil
}

// fillTiers наполняет каждый тир распределения: сначала банк, затем
// генератор. Провал тира не прерывает выдачу — частичный набор лучше
// полного отказа.
func (o *Orchestrator) fillTiers(ctx context.Context, userID uint, distribution map[string]int, seenIDs []uint, total int) entity.UintArray {
	assignedIDs := make(entity.UintArray, 0, total)
	done := 0

	for _, difficulty := range entity.Difficulties {
		needed := distribution[difficulty]
		if needed == 0 {
			continue
		}

		o.deps.Progress.Publish(userID, PhaseBank, done, total,
			fmt.Sprintf("Fetching %s questions from bank...", difficulty))

		// Исключаем всю историю пользователя и уже выбранное сегодня
		// (защита от межтировых дублей в рамках одного дня)
		excludeIDs := make([]uint, 0, len(seenIDs)+len(assignedIDs))
		excludeIDs = append(excludeIDs, seenIDs...)
		excludeIDs = append(excludeIDs, assignedIDs...)

		reused, err := o.deps.QuestionRepo.GetRandomByDifficulty(difficulty, excludeIDs, needed)
		if err != nil {
			log.Printf("[DailyQuiz] Ошибка чтения банка (%s) user=%d: %v", difficulty, userID, err)
			reused = nil
		}
		for _, q := range reused {
			assignedIDs = append(assignedIDs, q.ID)
		}
		done += len(reused)

		stillNeeded := needed - len(reused)
		log.Printf("[DailyQuiz] %s: %d/%d из банка, %d нужно сгенерировать",
			difficulty, len(reused), needed, stillNeeded)

		if stillNeeded > 0 {
			o.deps.Progress.Publish(userID, PhaseGenerating, done, total,
				fmt.Sprintf("Generating %d new %s questions...", stillNeeded, difficulty))

			newIDs := o.generateForTier(ctx, userID, difficulty, stillNeeded, done, total)
			assignedIDs = append(assignedIDs, newIDs...)
			done += len(newIDs)
		}
	}

	return assignedIDs
}

// generateForTier запрашивает недостающие вопросы тира у генератора
// и сохраняет валидные в банк. Провал партии повторяется целиком
// (до OracleAttempts раз); окончательный провал оставляет тир неполным.
func (o *Orchestrator) generateForTier(ctx context.Context, userID uint, difficulty string, count, done, total int) []uint {
	if o.deps.Oracle == nil {
		// Генератор не сконфигурирован — работаем только от банка
		log.Printf("[DailyQuiz] Генератор недоступен, тир %s останется неполным (нужно %d)", difficulty, count)
		return nil
	}

	attempts := o.config.OracleAttempts
	if attempts < 1 {
		attempts = 1
	}

	var candidates []oracle.Candidate
	for attempt := 1; attempt <= attempts; attempt++ {
		var err error
		candidates, err = o.deps.Oracle.Generate(ctx, oracle.Request{
			Difficulty: difficulty,
			Count:      count,
			SubTopics:  oracle.RandomSubTopics(o.config.SubTopicsPerPrompt),
		})
		if err == nil {
			break
		}
		// Провал партии не фатален для выдачи: тир останется неполным
		log.Printf("[DailyQuiz] Генерация %s провалилась (попытка %d/%d) user=%d: %v",
			difficulty, attempt, attempts, userID, err)
		candidates = nil
	}

	newIDs := make([]uint, 0, len(candidates))
	for _, candidate := range candidates {
		id, err := o.persistCandidate(candidate, difficulty)
		if err != nil {
			log.Printf("[DailyQuiz] Не удалось сохранить кандидата (%s): %v", difficulty, err)
			continue
		}
		newIDs = append(newIDs, id)
		o.deps.Progress.Publish(userID, PhaseGenerating, done+len(newIDs), total,
			fmt.Sprintf("Saved question %d/%d...", done+len(newIDs), total))
	}

	if len(newIDs) > 0 {
		log.Printf("[DailyQuiz] Сохранено %d новых вопросов уровня %s", len(newIDs), difficulty)
	}
	return newIDs
}

// persistCandidate нормализует кандидата и вставляет его в банк как
// неизменяемый вопрос со свежим публичным идентификатором
func (o *Orchestrator) persistCandidate(candidate oracle.Candidate, difficulty string) (uint, error) {
	if err := oracle.ValidateCandidate(&candidate); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	correctIndex, matched := oracle.NormalizeAnswerIndex(candidate.CorrectAnswer, candidate.Options)
	if !matched {
		// Осознанный lossy-fallback на индекс 0: вопрос сохраняется, но
		// попадает в аудит-лог как подозрительный (может быть мис-грейд)
		log.Printf("[DailyQuiz] audit: неразрешимый correct_answer %q, применен индекс 0 (текст: %.60s)",
			fmt.Sprintf("%v", candidate.CorrectAnswer), candidate.Text)
	}

	category := candidate.Category
	if !oracle.IsValidCategory(category) {
		category = oracle.DefaultCategory
	}

	question := &entity.Question{
		QID:          newQID(),
		Text:         candidate.Text,
		Options:      entity.StringArray(candidate.Options),
		CorrectIndex: correctIndex,
		Difficulty:   difficulty,
		Category:     category,
		Hint:         candidate.Hint,
		Explanation:  candidate.Explanation,
	}

	if err := o.deps.QuestionRepo.Create(question); err != nil {
		return 0, err
	}
	return question.ID, nil
}

// newQID выдает свежий публичный идентификатор вопроса
func newQID() string {
	return "Q" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
