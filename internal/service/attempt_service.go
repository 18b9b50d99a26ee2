package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
)

// Очки за игровые действия. Штраф за подсказку переносится в итог ответа
// аддитивно: он не списывается второй раз, но и не возвращается.
const (
	PointsCorrect = 100
	PointsWrong   = -20
	PointsHint    = -10
	PointsGiveUp  = 10
)

// HintResult — результат запроса подсказки
type HintResult struct {
	Hint         string `json:"hint"`
	PointsEarned int    `json:"points_earned"`
	Status       string `json:"status"`
}

// AnswerResult — результат терминального перехода попытки
type AnswerResult struct {
	Status       string `json:"status"`
	PointsEarned int    `json:"points_earned"`
	CorrectIndex int    `json:"correct_answer_index"`
	Explanation  string `json:"explanation"`
	Hint         string `json:"hint"`
}

// AttemptService ведет машину состояний попыток и начисление очков.
// Каждый переход — одна короткая транзакция: чтение попытки с блокировкой
// строки, проверка легальности перехода, запись попытки, начисление очков
// и пересчет уровня. Все или ничего.
type AttemptService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
) *AttemptService {
	return &AttemptService{
		db:           db,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
	}
}

// computeAnswerPoints считает очки за ответ с учетом ранее списанного
// штрафа за подсказку (prior.PointsEarned равен PointsHint для hint_used)
func computeAnswerPoints(prior *entity.Attempt, isCorrect bool) int {
	points := PointsWrong
	if isCorrect {
		points = PointsCorrect
	}
	if prior != nil && prior.HintCharged() {
		points += prior.PointsEarned
	}
	return points
}

// computeGiveUpPoints считает очки за отказ от вопроса:
// небольшое поощрение за участие плюс перенесенный штраф за подсказку
func computeGiveUpPoints(prior *entity.Attempt) int {
	points := PointsGiveUp
	if prior != nil && prior.HintCharged() {
		points += prior.PointsEarned
	}
	return points
}

// UseHint выдает подсказку по вопросу. Штраф списывается ровно один раз:
// повторный вызов на hint_used (или терминальной) попытке возвращает
// подсказку без повторного списания.
func (s *AttemptService) UseHint(userID, questionID uint) (*HintResult, error) {
	today := entity.ChallengeDay(time.Now())

	var result *HintResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempts := s.attemptRepo.WithTx(tx)
		users := s.userRepo.WithTx(tx)

		question, err := s.questionRepo.WithTx(tx).GetByID(questionID)
		if err != nil {
			return err
		}

		attempt, err := attempts.GetForUpdate(userID, questionID, today)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		// Идемпотентный повтор: подсказка уже выдавалась или попытка
		// завершена — возвращаем сохраненную подсказку без списания
		if attempt != nil && attempt.Status != entity.AttemptStatusPending {
			result = &HintResult{Hint: question.Hint, PointsEarned: 0, Status: attempt.Status}
			return nil
		}

		if attempt == nil {
			attempt = &entity.Attempt{
				UserID:      userID,
				QuestionID:  questionID,
				AttemptDate: today,
			}
			attempt.Status = entity.AttemptStatusHintUsed
			attempt.PointsEarned = PointsHint
			if err := attempts.Create(attempt); err != nil {
				return err
			}
		} else {
			attempt.Status = entity.AttemptStatusHintUsed
			attempt.PointsEarned = PointsHint
			if err := attempts.Update(attempt); err != nil {
				return err
			}
		}

		if err := s.applyScoreDelta(users, userID, PointsHint); err != nil {
			return err
		}

		result = &HintResult{Hint: question.Hint, PointsEarned: PointsHint, Status: entity.AttemptStatusHintUsed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitAnswer фиксирует ответ пользователя. Допустим только из pending
// или hint_used; попытка в терминальном статусе отклоняется без мутаций.
func (s *AttemptService) SubmitAnswer(userID, questionID uint, selectedIndex int) (*AnswerResult, error) {
	today := entity.ChallengeDay(time.Now())

	var result *AnswerResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempts := s.attemptRepo.WithTx(tx)
		users := s.userRepo.WithTx(tx)

		question, err := s.questionRepo.WithTx(tx).GetByID(questionID)
		if err != nil {
			return err
		}
		if !question.IsValidOption(selectedIndex) {
			return fmt.Errorf("%w: selected index %d out of range", apperrors.ErrValidation, selectedIndex)
		}

		attempt, err := attempts.GetForUpdate(userID, questionID, today)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if attempt != nil && !attempt.CanAnswer() {
			return fmt.Errorf("%w: question %d already %s", apperrors.ErrAttemptFinished, questionID, attempt.Status)
		}

		isCorrect := question.IsCorrect(selectedIndex)
		points := computeAnswerPoints(attempt, isCorrect)
		// Штраф за подсказку уже списан со счета при выдаче подсказки;
		// в счет идет только разница с уже начисленным
		delta := points
		if attempt != nil {
			delta = points - attempt.PointsEarned
		}

		status := entity.AttemptStatusWrong
		if isCorrect {
			status = entity.AttemptStatusCorrect
		}

		selected := selectedIndex
		if attempt == nil {
			attempt = &entity.Attempt{
				UserID:      userID,
				QuestionID:  questionID,
				AttemptDate: today,
			}
			attempt.Status = status
			attempt.SelectedIndex = &selected
			attempt.PointsEarned = points
			if err := attempts.Create(attempt); err != nil {
				return err
			}
		} else {
			attempt.Status = status
			attempt.SelectedIndex = &selected
			attempt.PointsEarned = points
			if err := attempts.Update(attempt); err != nil {
				return err
			}
		}

		if err := s.applyScoreDelta(users, userID, delta); err != nil {
			return err
		}

		// Отвеченный вопрос попадает в историю (страховка: обычно он уже
		// отмечен оркестратором при выдаче)
		if err := users.MarkQuestionsSeen(userID, []uint{questionID}); err != nil {
			return err
		}

		result = &AnswerResult{
			Status:       status,
			PointsEarned: points,
			CorrectIndex: question.CorrectIndex,
			Explanation:  question.Explanation,
			Hint:         question.Hint,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GiveUp фиксирует отказ от вопроса. Допустим только из pending или
// hint_used; терминальная попытка отклоняется без мутаций.
func (s *AttemptService) GiveUp(userID, questionID uint) (*AnswerResult, error) {
	today := entity.ChallengeDay(time.Now())

	var result *AnswerResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempts := s.attemptRepo.WithTx(tx)
		users := s.userRepo.WithTx(tx)

		question, err := s.questionRepo.WithTx(tx).GetByID(questionID)
		if err != nil {
			return err
		}

		attempt, err := attempts.GetForUpdate(userID, questionID, today)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if attempt != nil && !attempt.CanAnswer() {
			return fmt.Errorf("%w: question %d already %s", apperrors.ErrAttemptFinished, questionID, attempt.Status)
		}

		points := computeGiveUpPoints(attempt)
		delta := points
		if attempt != nil {
			delta = points - attempt.PointsEarned
		}

		if attempt == nil {
			attempt = &entity.Attempt{
				UserID:      userID,
				QuestionID:  questionID,
				AttemptDate: today,
			}
			attempt.Status = entity.AttemptStatusGaveUp
			attempt.PointsEarned = points
			if err := attempts.Create(attempt); err != nil {
				return err
			}
		} else {
			attempt.Status = entity.AttemptStatusGaveUp
			attempt.SelectedIndex = nil
			attempt.PointsEarned = points
			if err := attempts.Update(attempt); err != nil {
				return err
			}
		}

		if err := s.applyScoreDelta(users, userID, delta); err != nil {
			return err
		}

		if err := users.MarkQuestionsSeen(userID, []uint{questionID}); err != nil {
			return err
		}

		result = &AnswerResult{
			Status:       entity.AttemptStatusGaveUp,
			PointsEarned: points,
			CorrectIndex: question.CorrectIndex,
			Explanation:  question.Explanation,
			Hint:         question.Hint,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyScoreDelta атомарно прибавляет очки и пересчитывает уровень.
// Вызывается только внутри транзакции перехода попытки: падение между
// записью попытки и очками невозможно по построению.
func (s *AttemptService) applyScoreDelta(users repository.UserRepository, userID uint, delta int) error {
	newScore, err := users.AddScore(userID, delta)
	if err != nil {
		return fmt.Errorf("failed to apply score delta: %w", err)
	}

	newLevel := entity.CalculateLevel(newScore)
	if err := users.UpdateLevel(userID, newLevel); err != nil {
		return fmt.Errorf("failed to update level: %w", err)
	}

	log.Printf("[Scoring] user=%d delta=%+d score=%d level=%s", userID, delta, newScore, newLevel)
	return nil
}
