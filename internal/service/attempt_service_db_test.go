package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
	pgrepo "github.com/yourusername/aptitude-api/internal/repository/postgres"
)

// Тесты транзакционного пути машины состояний: сервис собирается на
// настоящих gorm-репозиториях поверх подмененного *sql.DB. Ожидания
// упорядочены, поэтому ExpectationsWereMet доказывает не только то, что
// нужные запросы были, но и то, что лишних записей НЕ было.

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newDBAttemptService(db *gorm.DB) *AttemptService {
	return NewAttemptService(db,
		pgrepo.NewUserRepo(db),
		pgrepo.NewQuestionRepo(db),
		pgrepo.NewAttemptRepo(db),
	)
}

func questionRow(correctIndex int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "qid", "text", "options", "correct_index",
		"difficulty", "category", "hint", "explanation", "created_at",
	}).AddRow(
		7, "q-7", "2+2?", []byte(`["3","4","5","6"]`), correctIndex,
		entity.DifficultyEasy, "Quantitative Aptitude", "сложите", "арифметика", time.Now(),
	)
}

func attemptRow(status string, points int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "question_id", "attempt_date",
		"status", "selected_index", "points_earned", "created_at", "updated_at",
	}).AddRow(
		3, 1, 7, entity.ChallengeDay(time.Now()),
		status, nil, points, time.Now(), time.Now(),
	)
}

func TestSubmitAnswerRejectsFinishedAttempt(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "questions"`).WillReturnRows(questionRow(1))
	mock.ExpectQuery(`SELECT \* FROM "attempts"(.+)FOR UPDATE`).
		WillReturnRows(attemptRow(entity.AttemptStatusCorrect, PointsCorrect))
	mock.ExpectRollback()

	svc := newDBAttemptService(db)
	result, err := svc.SubmitAnswer(1, 7, 2)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrAttemptFinished)
	// Ни UPDATE попытки, ни начисления очков не ожидалось — только откат
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiveUpRejectsFinishedAttempt(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "questions"`).WillReturnRows(questionRow(1))
	mock.ExpectQuery(`SELECT \* FROM "attempts"(.+)FOR UPDATE`).
		WillReturnRows(attemptRow(entity.AttemptStatusWrong, PointsWrong))
	mock.ExpectRollback()

	svc := newDBAttemptService(db)
	result, err := svc.GiveUp(1, 7)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrAttemptFinished)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUseHintReplayDoesNotRecharge(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "questions"`).WillReturnRows(questionRow(1))
	mock.ExpectQuery(`SELECT \* FROM "attempts"(.+)FOR UPDATE`).
		WillReturnRows(attemptRow(entity.AttemptStatusHintUsed, PointsHint))
	mock.ExpectCommit()

	svc := newDBAttemptService(db)
	result, err := svc.UseHint(1, 7)

	require.NoError(t, err)
	assert.Equal(t, "сложите", result.Hint)
	assert.Equal(t, 0, result.PointsEarned)
	assert.Equal(t, entity.AttemptStatusHintUsed, result.Status)
	// Повтор подсказки — чистое чтение: ни записи попытки, ни списания
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerAfterHintChargesDifferenceOnly(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "questions"`).WillReturnRows(questionRow(1))
	mock.ExpectQuery(`SELECT \* FROM "attempts"(.+)FOR UPDATE`).
		WillReturnRows(attemptRow(entity.AttemptStatusHintUsed, PointsHint))
	// Попытка хранит итог сессии за вычетом штрафа за подсказку (+90),
	// а в счет идет разница с уже списанным (+100)
	mock.ExpectExec(`UPDATE "attempts" SET`).
		WithArgs(1, 7, sqlmock.AnyArg(), entity.AttemptStatusCorrect, 1,
			PointsCorrect+PointsHint, sqlmock.AnyArg(), sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "score"=score \+ \$1`).
		WithArgs(PointsCorrect, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "score" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"score"}).AddRow(90))
	mock.ExpectExec(`UPDATE "users" SET "level"=\$1`).
		WithArgs(entity.LevelBeginner, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "user_seen_questions"(.+)ON CONFLICT DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"seen_at", "id"}).AddRow(time.Now(), 1))
	mock.ExpectCommit()

	svc := newDBAttemptService(db)
	result, err := svc.SubmitAnswer(1, 7, 1)

	require.NoError(t, err)
	assert.Equal(t, entity.AttemptStatusCorrect, result.Status)
	assert.Equal(t, PointsCorrect+PointsHint, result.PointsEarned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
