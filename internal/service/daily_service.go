package service

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	"github.com/yourusername/aptitude-api/internal/domain/repository"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
	"github.com/yourusername/aptitude-api/internal/service/dailyquiz"
)

// Assigner — граница оркестратора выдачи для потребителей
type Assigner interface {
	EnsureAssigned(ctx context.Context, userID uint) (*entity.DailyAssignment, error)
}

// DailyQuestionView — вопрос дневного набора, обогащенный состоянием
// попытки. Правильный ответ и объяснение раскрываются только после
// терминального статуса; подсказка — после hint_used.
type DailyQuestionView struct {
	QuestionID uint     `json:"question_id"`
	QID        string   `json:"qid"`
	Text       string   `json:"question_text"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
	Status     string   `json:"status"`

	Hint          string `json:"hint,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
	CorrectIndex  *int   `json:"correct_answer_index,omitempty"`
	SelectedIndex *int   `json:"selected_answer_index,omitempty"`
	PointsEarned  *int   `json:"points_earned,omitempty"`
}

// DailyQuestionsResult — дневной набор пользователя
type DailyQuestionsResult struct {
	AssignmentID uint                `json:"assignment_id"`
	Date         string              `json:"date"`
	Questions    []DailyQuestionView `json:"questions"`
}

// DailyService собирает дневной набор для чтения: гарантирует выдачу
// через оркестратор и склеивает вопросы с попытками пользователя
type DailyService struct {
	assigner     Assigner
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	progress     *dailyquiz.ProgressTracker
}

// NewDailyService создает новый сервис дневного набора
func NewDailyService(
	assigner Assigner,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	progress *dailyquiz.ProgressTracker,
) *DailyService {
	return &DailyService{
		assigner:     assigner,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		progress:     progress,
	}
}

// GetDailyQuestions возвращает сегодняшний набор пользователя,
// при необходимости инициируя выдачу (идемпотентно)
func (s *DailyService) GetDailyQuestions(ctx context.Context, userID uint) (*DailyQuestionsResult, error) {
	assignment, err := s.assigner.EnsureAssigned(ctx, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByIDs(assignment.QuestionIDs)
	if err != nil {
		return nil, err
	}

	today := entity.ChallengeDay(time.Now())
	attempts, err := s.attemptRepo.GetByUserAndDate(userID, today)
	if err != nil {
		return nil, err
	}

	attemptByQuestion := make(map[uint]entity.Attempt, len(attempts))
	for _, a := range attempts {
		attemptByQuestion[a.QuestionID] = a
	}

	views := make([]DailyQuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, buildQuestionView(q, attemptByQuestion))
	}

	return &DailyQuestionsResult{
		AssignmentID: assignment.ID,
		Date:         assignment.ChallengeDate,
		Questions:    views,
	}, nil
}

// buildQuestionView применяет правила видимости к одному вопросу
func buildQuestionView(q entity.Question, attempts map[uint]entity.Attempt) DailyQuestionView {
	view := DailyQuestionView{
		QuestionID: q.ID,
		QID:        q.QID,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Category:   q.Category,
		Status:     entity.AttemptStatusPending,
	}

	attempt, ok := attempts[q.ID]
	if !ok {
		return view
	}

	view.Status = attempt.Status
	switch {
	case attempt.IsTerminal():
		correct := q.CorrectIndex
		points := attempt.PointsEarned
		view.Hint = q.Hint
		view.Explanation = q.Explanation
		view.CorrectIndex = &correct
		view.SelectedIndex = attempt.SelectedIndex
		view.PointsEarned = &points
	case attempt.Status == entity.AttemptStatusHintUsed:
		points := attempt.PointsEarned
		view.Hint = q.Hint
		view.PointsEarned = &points
	}
	return view
}

// GetStatus возвращает снимок прогресса выдачи для опроса клиентом.
// Отсутствие записи — не ошибка: выдача либо не начиналась, либо
// запись истекла; возвращается idle-снимок.
func (s *DailyService) GetStatus(userID uint) (*dailyquiz.ProgressStatus, error) {
	status, err := s.progress.Get(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dailyquiz.ProgressStatus{Phase: "idle"}, nil
		}
		return nil, err
	}
	return status, nil
}
