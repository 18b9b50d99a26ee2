package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestAttempt_IsTerminal(t *testing.T) {
	assert.False(t, (&Attempt{Status: AttemptStatusPending}).IsTerminal())
	assert.False(t, (&Attempt{Status: AttemptStatusHintUsed}).IsTerminal())
	assert.True(t, (&Attempt{Status: AttemptStatusCorrect}).IsTerminal())
	assert.True(t, (&Attempt{Status: AttemptStatusWrong}).IsTerminal())
	assert.True(t, (&Attempt{Status: AttemptStatusGaveUp}).IsTerminal())
}

func TestAttempt_CanAnswer(t *testing.T) {
	// Отвечать можно только из pending и hint_used
	assert.True(t, (&Attempt{Status: AttemptStatusPending}).CanAnswer())
	assert.True(t, (&Attempt{Status: AttemptStatusHintUsed}).CanAnswer())

	// Терминальные статусы неизменяемы
	assert.False(t, (&Attempt{Status: AttemptStatusCorrect}).CanAnswer())
	assert.False(t, (&Attempt{Status: AttemptStatusWrong}).CanAnswer())
	assert.False(t, (&Attempt{Status: AttemptStatusGaveUp}).CanAnswer())
}

func TestAttempt_HintCharged(t *testing.T) {
	assert.False(t, (&Attempt{Status: AttemptStatusPending}).HintCharged())
	assert.True(t, (&Attempt{Status: AttemptStatusHintUsed}).HintCharged())
}

func TestChallengeDay_FormatsUTC(t *testing.T) {
	day := ChallengeDay(mustParseTime(t, "2025-03-01T23:30:00+05:00"))
	// 23:30 +05:00 — это 18:30 UTC того же дня
	assert.Equal(t, "2025-03-01", day)
}
