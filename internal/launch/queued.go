package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/config"
	"github.com/aatumaykin/wxlaunch/internal/cycle"
	"github.com/aatumaykin/wxlaunch/internal/logger"
)

// Queued runs the MOGREPS-UK cross-section program to completion and then
// relocates the batch scheduler's default output/error files into
// cycle-named copies under the web log directory.
//
// The program's exit status is logged but deliberately not acted on: the
// copy step always runs, and only its outcome becomes the launcher's error.
type Queued struct {
	cfg    *config.Config
	logger *logger.Logger
}

// NewQueued creates a queued launcher.
func NewQueued(cfg *config.Config, log *logger.Logger) *Queued {
	return &Queued{
		cfg:    cfg,
		logger: log,
	}
}

// OutPath returns the destination for the scheduler's default stdout file.
func (l *Queued) OutPath(c cycle.Cycle) string {
	return filepath.Join(l.cfg.LogDir(), fmt.Sprintf("%s_%s.out", l.cfg.Queued.LogPrefix, c.DateTime()))
}

// ErrPath returns the destination for the scheduler's default stderr file.
func (l *Queued) ErrPath(c cycle.Cycle) string {
	return filepath.Join(l.cfg.LogDir(), fmt.Sprintf("%s_%s.err", l.cfg.Queued.LogPrefix, c.DateTime()))
}

// Run executes the cross-section program synchronously with its single fixed
// argument, then copies the scheduler default logs. The cycle derived from
// now names the copies only; it is not exported to the program.
func (l *Queued) Run(ctx context.Context, now time.Time) error {
	c := cycle.At(now, l.cfg.Queued.LagHours)
	env := QueuedEnv(l.cfg)

	cmd := exec.CommandContext(ctx, l.cfg.Queued.Program, l.cfg.Queued.Argument)
	cmd.Dir = l.cfg.Paths.CodeDir
	cmd.Env = env.Environ()
	// Inherit the launcher's own streams so the batch scheduler's default
	// output/error redirection captures the program output.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	l.logger.Info("running cross-section program",
		logger.Field{Key: "program", Value: l.cfg.Queued.Program},
		logger.Field{Key: "argument", Value: l.cfg.Queued.Argument},
		logger.Field{Key: "cycle", Value: c.DateTime()})

	if err := cmd.Run(); err != nil {
		// Best effort: the run's own failure is visible only in the
		// copied logs. The copy step below still runs.
		l.logger.Warn("cross-section program exited with error",
			logger.Field{Key: "program", Value: l.cfg.Queued.Program},
			logger.Field{Key: "error", Value: err.Error()})
	}

	return l.copyBatchLogs(c)
}

// copyBatchLogs copies the scheduler default stdout/stderr files to their
// cycle-named destinations. Both copies are attempted even if the first
// fails; the originals are left untouched.
func (l *Queued) copyBatchLogs(c cycle.Cycle) error {
	if err := os.MkdirAll(l.cfg.LogDir(), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	outErr := copyFile(l.cfg.Batch.Output, l.OutPath(c))
	if outErr != nil {
		l.logger.Error("failed to copy batch stdout file", outErr,
			logger.Field{Key: "src", Value: l.cfg.Batch.Output})
	}

	errErr := copyFile(l.cfg.Batch.Error, l.ErrPath(c))
	if errErr != nil {
		l.logger.Error("failed to copy batch stderr file", errErr,
			logger.Field{Key: "src", Value: l.cfg.Batch.Error})
	}

	return errors.Join(outErr, errErr)
}
