package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTask struct {
	Task
	runs     *atomic.Int32
	failures int32
}

func (t *countingTask) Execute(ctx context.Context) error {
	if n := t.runs.Add(1); n <= t.failures {
		return errors.New("upstream unavailable")
	}
	return nil
}

func TestNewTask(t *testing.T) {
	a := NewTask(TaskTypeTrackPublications, "sheet-1")
	b := NewTask(TaskTypeTrackPublications, "sheet-1")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, DefaultMaxRetries, a.MaxRetries)
	assert.True(t, a.CanRetry())
	assert.Zero(t, a.GetDuration())

	a.RetryCount = DefaultMaxRetries
	assert.False(t, a.CanRetry())
}

func TestScheduler_RunsTaskAtStartupAndOnTick(t *testing.T) {
	var runs atomic.Int32
	scheduler := NewScheduler(func() TaskInterface {
		return &countingTask{Task: NewTask(TaskTypeTrackPublications, "sheet-1"), runs: &runs}
	}, 20*time.Millisecond, 2)

	scheduler.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	scheduler.Stop()
}

func TestScheduler_RetriesFailedTask(t *testing.T) {
	var runs atomic.Int32
	task := &countingTask{Task: NewTask(TaskTypeTrackPublications, "sheet-1"), runs: &runs, failures: 2}

	scheduler := NewScheduler(func() TaskInterface { return task }, time.Hour, 1)
	scheduler.retryBase = time.Millisecond

	scheduler.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	scheduler.Stop()

	assert.Equal(t, 2, task.GetRetryCount())
}

func TestScheduler_GivesUpAfterMaxRetries(t *testing.T) {
	var runs atomic.Int32
	task := &countingTask{Task: NewTask(TaskTypeTrackPublications, "sheet-1"), runs: &runs, failures: 100}
	task.MaxRetries = 1

	scheduler := NewScheduler(func() TaskInterface { return task }, time.Hour, 1)
	scheduler.retryBase = time.Millisecond

	scheduler.Start()
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	scheduler.Stop()

	assert.Equal(t, int32(2), runs.Load())
}

func TestScheduler_EnqueueAfterStop(t *testing.T) {
	var runs atomic.Int32
	scheduler := NewScheduler(func() TaskInterface {
		return &countingTask{Task: NewTask(TaskTypeTrackPublications, "sheet-1"), runs: &runs}
	}, time.Hour, 1)

	scheduler.Start()
	scheduler.Stop()

	err := scheduler.EnqueueTask(&countingTask{Task: NewTask(TaskTypeTrackPublications, "sheet-1"), runs: &runs})
	assert.ErrorIs(t, err, context.Canceled)
}
