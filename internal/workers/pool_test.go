package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func TestPoolExecutesSubmittedTasks(t *testing.T) {
	pool := NewPool(2, 8, testLogger(t))
	pool.Start()

	var ran atomic.Int64

	for i := 0; i < 5; i++ {
		err := pool.Submit(Task{
			ID:   "run-" + string(rune('a'+i)),
			Name: "immediate",
			Run: func(ctx context.Context) error {
				ran.Add(1)
				return nil
			},
		})
		require.NoError(t, err)
	}

	pool.Stop()
	assert.Equal(t, int64(5), ran.Load())

	m := pool.Metrics()
	assert.Equal(t, int64(5), m.TasksSubmitted)
	assert.Equal(t, int64(5), m.TasksCompleted)
	assert.Equal(t, int64(0), m.TasksFailed)
}

func TestPoolCountsFailures(t *testing.T) {
	pool := NewPool(1, 4, testLogger(t))
	pool.Start()

	require.NoError(t, pool.Submit(Task{
		ID:   "fail",
		Name: "queued",
		Run: func(ctx context.Context) error {
			return errors.New("copy failed")
		},
	}))

	pool.Stop()

	m := pool.Metrics()
	assert.Equal(t, int64(1), m.TasksFailed)
	assert.Equal(t, int64(0), m.TasksCompleted)
}

func TestPoolRejectsWhenQueueFull(t *testing.T) {
	pool := NewPool(1, 1, testLogger(t))
	// Pool not started: nothing consumes the queue.

	block := Task{ID: "a", Name: "queued", Run: func(ctx context.Context) error { return nil }}
	require.NoError(t, pool.Submit(block))

	err := pool.Submit(Task{ID: "b", Name: "queued", Run: func(ctx context.Context) error { return nil }})
	assert.Error(t, err, "submit must not block when the queue is full")

	pool.Start()
	pool.Stop()
}

func TestPoolRecoversFromPanic(t *testing.T) {
	pool := NewPool(1, 4, testLogger(t))
	pool.Start()

	require.NoError(t, pool.Submit(Task{
		ID:   "panic",
		Name: "immediate",
		Run: func(ctx context.Context) error {
			panic("boom")
		},
	}))
	require.NoError(t, pool.Submit(Task{
		ID:   "after",
		Name: "immediate",
		Run: func(ctx context.Context) error {
			return nil
		},
	}))

	pool.Stop()

	m := pool.Metrics()
	assert.Equal(t, int64(1), m.TasksFailed)
	assert.Equal(t, int64(1), m.TasksCompleted)
}

func TestPoolStopWaitsForInFlight(t *testing.T) {
	pool := NewPool(1, 1, testLogger(t))
	pool.Start()

	finished := make(chan struct{})
	require.NoError(t, pool.Submit(Task{
		ID:   "slow",
		Name: "queued",
		Run: func(ctx context.Context) error {
			time.Sleep(100 * time.Millisecond)
			close(finished)
			return nil
		},
	}))

	pool.Stop()

	select {
	case <-finished:
	default:
		t.Error("Stop() returned before in-flight task finished")
	}
}
