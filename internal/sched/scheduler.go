package sched

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/logger"
	"github.com/aatumaykin/wxlaunch/internal/workers"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// LaunchFunc runs one launcher invocation.
type LaunchFunc func(ctx context.Context) error

// Scheduler fires registered launchers on cron schedules. Each firing becomes
// one task on the worker pool, identified by a fresh run ID.
type Scheduler struct {
	cron      *cron.Cron
	pool      *workers.Pool
	logger    *logger.Logger
	metrics   *Metrics
	launchers map[string]LaunchFunc

	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler using standard 5-field cron expressions.
func NewScheduler(log *logger.Logger, pool *workers.Pool, metrics *Metrics) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		pool:      pool,
		logger:    log,
		metrics:   metrics,
		launchers: make(map[string]LaunchFunc),
	}
}

// Register makes a launcher available to jobs under the given name.
func (s *Scheduler) Register(name string, fn LaunchFunc) {
	s.launchers[name] = fn
}

// AddJobs wires the given job specs into the cron schedule. Every spec must
// reference a registered launcher.
func (s *Scheduler) AddJobs(specs []JobSpec) error {
	for _, spec := range specs {
		fn, ok := s.launchers[spec.Launcher]
		if !ok {
			return fmt.Errorf("job %q: launcher %q is not registered", spec.ID, spec.Launcher)
		}

		spec := spec
		_, err := s.cron.AddFunc(spec.Schedule, func() {
			s.fire(spec, fn)
		})
		if err != nil {
			return fmt.Errorf("job %q: invalid schedule %q: %w", spec.ID, spec.Schedule, err)
		}

		s.logger.Info("scheduled launcher job",
			logger.Field{Key: "job_id", Value: spec.ID},
			logger.Field{Key: "schedule", Value: spec.Schedule},
			logger.Field{Key: "launcher", Value: spec.Launcher})
	}

	return nil
}

// fire submits one launcher run to the worker pool.
func (s *Scheduler) fire(spec JobSpec, fn LaunchFunc) {
	runID := uuid.NewString()

	err := s.pool.Submit(workers.Task{
		ID:   runID,
		Name: spec.Launcher,
		Run: func(ctx context.Context) error {
			start := time.Now()
			err := fn(ctx)
			s.metrics.observe(spec.Launcher, err, time.Since(start))
			return err
		},
	})
	if err != nil {
		// Dropped firing: the next schedule tick covers the same data.
		s.logger.Warn("dropped launcher firing",
			logger.Field{Key: "job_id", Value: spec.ID},
			logger.Field{Key: "run_id", Value: runID},
			logger.Field{Key: "reason", Value: err.Error()})
		return
	}

	s.logger.Info("launcher firing submitted",
		logger.Field{Key: "job_id", Value: spec.ID},
		logger.Field{Key: "run_id", Value: runID},
		logger.Field{Key: "launcher", Value: spec.Launcher})
}

// Start begins firing schedules.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	s.started = true

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		logger.Field{Key: "entries", Value: len(s.cron.Entries())})
	return nil
}

// Stop halts schedule firing and waits for running cron callbacks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false

	<-s.cron.Stop().Done()
	s.logger.Info("cron scheduler stopped")
}
