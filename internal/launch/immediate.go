package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/config"
	"github.com/aatumaykin/wxlaunch/internal/cycle"
	"github.com/aatumaykin/wxlaunch/internal/logger"
)

// Immediate launches the best-data forecast program as a detached background
// process. The program's combined stdout/stderr goes into a cycle-named log
// file under the web log directory; the launcher returns as soon as the
// process has started and never waits for it.
type Immediate struct {
	cfg    *config.Config
	logger *logger.Logger
}

// NewImmediate creates an immediate launcher.
func NewImmediate(cfg *config.Config, log *logger.Logger) *Immediate {
	return &Immediate{
		cfg:    cfg,
		logger: log,
	}
}

// LogPath returns the combined output log file for a cycle. Re-running within
// the same hour yields the same path; the file is truncated on each start.
func (l *Immediate) LogPath(c cycle.Cycle) string {
	return filepath.Join(l.cfg.LogDir(), c.DateTime()+".txt")
}

// Run derives the launch cycle from now, builds the environment, and starts
// the forecast program in the code directory. The child is intentionally not
// awaited: it historically outlives the launcher by a wide margin, and its
// failures are observable only in the redirected log file.
func (l *Immediate) Run(now time.Time) error {
	c := cycle.At(now, l.cfg.Immediate.LagHours)
	env := ImmediateEnv(l.cfg, c)

	if err := os.MkdirAll(l.cfg.LogDir(), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := l.LogPath(c)
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to open forecast log file: %w", err)
	}

	cmd := exec.Command(l.cfg.Immediate.Program)
	cmd.Dir = l.cfg.Paths.CodeDir
	cmd.Env = env.Environ()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return fmt.Errorf("failed to start forecast program: %w", err)
	}

	// The child holds its own handle to the log file after fork; the
	// parent's copy is no longer needed.
	logFile.Close()

	pid := cmd.Process.Pid

	// Reap the child whenever it eventually exits. Nothing consumes the
	// outcome: the run itself stays fire-and-forget.
	go func() {
		_ = cmd.Wait()
	}()

	l.logger.Info("forecast program started",
		logger.Field{Key: "program", Value: l.cfg.Immediate.Program},
		logger.Field{Key: "cycle", Value: c.DateTime()},
		logger.Field{Key: "pid", Value: pid},
		logger.Field{Key: "log", Value: logPath})

	return nil
}
