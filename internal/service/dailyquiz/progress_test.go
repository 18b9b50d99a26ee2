package dailyquiz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProgressTracker_PublishStoresSnapshotWithTTL(t *testing.T) {
	cache := new(MockCacheRepo)
	cache.On("SetJSON", "daily:progress:42", mock.MatchedBy(func(v interface{}) bool {
		status, ok := v.(ProgressStatus)
		return ok && status.Phase == PhaseGenerating && status.Done == 3 && status.Total == 10
	}), 5*time.Minute).Return(nil)

	tracker := NewProgressTracker(cache, 5*time.Minute)
	tracker.Publish(42, PhaseGenerating, 3, 10, "Generating 2 new Medium questions...")

	cache.AssertExpectations(t)
}

func TestProgressTracker_PublishSwallowsCacheErrors(t *testing.T) {
	// Прогресс — best-effort канал: ошибка кеша не должна ломать выдачу
	cache := new(MockCacheRepo)
	cache.On("SetJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	tracker := NewProgressTracker(cache, time.Minute)
	assert.NotPanics(t, func() {
		tracker.Publish(1, PhaseBank, 0, 10, "Fetching Easy questions from bank...")
	})
}

func TestProgressTracker_NilTrackerIsSafe(t *testing.T) {
	var tracker *ProgressTracker
	assert.NotPanics(t, func() {
		tracker.Publish(1, PhaseReady, 10, 10, "done")
	})
}

func TestProgressTracker_Get(t *testing.T) {
	cache := new(MockCacheRepo)
	cache.On("GetJSON", "daily:progress:7", mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(1).(*ProgressStatus)
		*dest = ProgressStatus{Phase: PhaseReady, Done: 10, Total: 10, Message: "All 10 questions ready!"}
	}).Return(nil)

	tracker := NewProgressTracker(cache, time.Minute)
	status, err := tracker.Get(7)

	assert.NoError(t, err)
	assert.Equal(t, PhaseReady, status.Phase)
	assert.Equal(t, 10, status.Done)
}
