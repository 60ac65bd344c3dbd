package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/launch"
	"github.com/aatumaykin/wxlaunch/internal/logger"
	"github.com/aatumaykin/wxlaunch/internal/sched"
	"github.com/aatumaykin/wxlaunch/internal/workers"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	serveDebug      bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the periodic launch trigger daemon",
	Long: `Start the cron scheduler that fires launcher runs on the schedules
declared in the jobs file. Each firing runs on a bounded worker pool; failed
runs are logged, never retried. The daemon shuts down gracefully on
SIGINT/SIGTERM.`,
	Run: runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, log := setup(serveConfigPath, serveDebug)

	log.Info("starting wxlaunch serve",
		logger.Field{Key: "version", Value: Version},
		logger.Field{Key: "git_commit", Value: GitCommit},
		logger.Field{Key: "jobs_file", Value: cfg.Serve.JobsFile})

	jobs, err := sched.LoadJobs(cfg.Serve.JobsFile)
	if err != nil {
		log.Error("failed to load jobs file", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		log.Warn("jobs file declares no schedules, nothing will fire")
	}

	pool := workers.NewPool(cfg.Serve.Workers, cfg.Serve.QueueSize, log)
	pool.Start()

	metrics := sched.InitMetrics("wxlaunch", nil)
	scheduler := sched.NewScheduler(log, pool, metrics)

	immediate := launch.NewImmediate(cfg, log)
	queued := launch.NewQueued(cfg, log)

	scheduler.Register(sched.LauncherImmediate, func(ctx context.Context) error {
		return immediate.Run(time.Now())
	})
	scheduler.Register(sched.LauncherQueued, func(ctx context.Context) error {
		return queued.Run(ctx, time.Now())
	})
	scheduler.Register(sched.LauncherSubmit, func(ctx context.Context) error {
		_, err := submitQueuedJob(ctx, cfg, serveConfigPath, log)
		return err
	})

	if err := scheduler.AddJobs(jobs); err != nil {
		log.Error("failed to schedule jobs", err)
		os.Exit(1)
	}

	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler", err)
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("received shutdown signal",
		logger.Field{Key: "signal", Value: sig.String()})

	scheduler.Stop()
	pool.Stop()
	log.Info("wxlaunch serve stopped")
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	serveCmd.Flags().BoolVarP(&serveDebug, "debug", "d", false, "Enable debug logging")
}
