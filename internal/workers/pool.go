// Package workers provides an async worker pool for background launcher runs.
// The serve daemon submits one task per scheduled firing; the pool bounds how
// many launcher runs execute concurrently.
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/logger"
)

// Task is a single unit of work submitted to the pool.
type Task struct {
	ID   string                          // Unique run identifier
	Name string                          // Launcher name for logging
	Run  func(ctx context.Context) error // Work to execute
}

// Pool manages a fixed set of goroutine workers consuming a bounded queue.
type Pool struct {
	taskQueue chan Task
	workers   int
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *logger.Logger

	mu      sync.RWMutex
	metrics PoolMetrics
}

// PoolMetrics tracks cumulative pool counters.
type PoolMetrics struct {
	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64
	TotalDuration  time.Duration
}

// NewPool creates a worker pool with the given size and queue capacity.
func NewPool(workers int, bufferSize int, log *logger.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		taskQueue: make(chan Task, bufferSize),
		workers:   workers,
		ctx:       ctx,
		cancel:    cancel,
		logger:    log,
	}
}

// Start launches all worker goroutines.
func (p *Pool) Start() {
	p.logger.Info("starting worker pool",
		logger.Field{Key: "workers", Value: p.workers},
		logger.Field{Key: "buffer_size", Value: cap(p.taskQueue)})

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Submit queues a task for execution. It returns an error instead of blocking
// when the queue is full: a launcher firing that cannot be queued is dropped,
// the next scheduled firing covers the same data.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	p.metrics.TasksSubmitted++
	p.mu.Unlock()

	select {
	case p.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("worker pool queue is full (%d pending)", cap(p.taskQueue))
	}
}

// Stop drains in-flight work and shuts the pool down.
func (p *Pool) Stop() {
	p.cancel()
	close(p.taskQueue)
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}

// Metrics returns a snapshot of the pool counters.
func (p *Pool) Metrics() PoolMetrics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.metrics
}

// worker consumes the task queue until it is closed.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.taskQueue {
		p.execute(id, task)
	}
}

// execute runs one task, recording duration and outcome.
func (p *Pool) execute(workerID int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panic recovered", fmt.Errorf("panic: %v", r),
				logger.Field{Key: "task_id", Value: task.ID},
				logger.Field{Key: "task", Value: task.Name})
			p.mu.Lock()
			p.metrics.TasksFailed++
			p.mu.Unlock()
		}
	}()

	p.logger.Debug("worker picked up task",
		logger.Field{Key: "worker", Value: workerID},
		logger.Field{Key: "task_id", Value: task.ID},
		logger.Field{Key: "task", Value: task.Name})

	start := time.Now()
	err := task.Run(p.ctx)
	elapsed := time.Since(start)

	p.mu.Lock()
	p.metrics.TotalDuration += elapsed
	if err != nil {
		p.metrics.TasksFailed++
	} else {
		p.metrics.TasksCompleted++
	}
	p.mu.Unlock()

	if err != nil {
		// No retry: a failed launcher run is only visible in its logs.
		p.logger.Error("task failed", err,
			logger.Field{Key: "task_id", Value: task.ID},
			logger.Field{Key: "task", Value: task.Name},
			logger.Field{Key: "duration", Value: elapsed.String()})
		return
	}

	p.logger.Info("task completed",
		logger.Field{Key: "task_id", Value: task.ID},
		logger.Field{Key: "task", Value: task.Name},
		logger.Field{Key: "duration", Value: elapsed.String()})
}
