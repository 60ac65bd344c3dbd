package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aatumaykin/wxlaunch/internal/batch"
	"github.com/aatumaykin/wxlaunch/internal/config"
	"github.com/aatumaykin/wxlaunch/internal/logger"
	"github.com/spf13/cobra"
)

var (
	submitConfigPath string
	submitDebug      bool
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the queued launcher to the batch scheduler",
	Long: `Render the batch submission script from the declared resource directives
(queue class, memory, task count, wall-clock limit, default output/error
paths) and hand it to the scheduler's submit command. The script body runs
"wxlaunch queued" inside the allocated job.`,
	Run: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) {
	cfg, log := setup(submitConfigPath, submitDebug)

	jobID, err := submitQueuedJob(context.Background(), cfg, submitConfigPath, log)
	if err != nil {
		log.Error("job submission failed", err)
		os.Exit(1)
	}

	fmt.Println(jobID)
}

// submitQueuedJob renders the submission script and hands it to the batch
// scheduler; the queued launcher then runs inside the allocated job.
func submitQueuedJob(ctx context.Context, cfg *config.Config, cfgPath string, log *logger.Logger) (string, error) {
	scriptDir := cfg.Paths.ScratchDir
	if scriptDir == "" {
		scriptDir = os.TempDir()
	}

	// The job re-invokes this binary inside the allocation.
	exe, err := os.Executable()
	if err != nil {
		exe = "wxlaunch"
	}
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	if abs, err := filepath.Abs(cfgPath); err == nil {
		cfgPath = abs
	}
	command := fmt.Sprintf("%s queued --config %s", exe, cfgPath)

	scriptPath, err := batch.FromConfig(cfg).WriteScript(scriptDir, command)
	if err != nil {
		return "", err
	}

	jobID, err := batch.Submit(ctx, cfg.Batch.SubmitCommand, scriptPath)
	if err != nil {
		return "", err
	}

	log.Info("job submitted",
		logger.Field{Key: "job_id", Value: jobID},
		logger.Field{Key: "script", Value: scriptPath})
	return jobID, nil
}

func init() {
	submitCmd.Flags().StringVarP(&submitConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	submitCmd.Flags().BoolVarP(&submitDebug, "debug", "d", false, "Enable debug logging")
}
