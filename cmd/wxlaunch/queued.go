package main

import (
	"context"
	"os"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/launch"
	"github.com/spf13/cobra"
)

var (
	queuedConfigPath string
	queuedDebug      bool
)

// queuedCmd represents the queued command
var queuedCmd = &cobra.Command{
	Use:   "queued",
	Short: "Run the MOGREPS-UK cross-section program and relocate its logs",
	Long: `Run the cross-section program to completion under the batch scheduler,
then copy the scheduler's default stdout/stderr files into cycle-named copies
under the web log directory. The program's exit status is not inspected; only
the copy step's outcome becomes this command's exit status.`,
	Run: runQueued,
}

func runQueued(cmd *cobra.Command, args []string) {
	cfg, log := setup(queuedConfigPath, queuedDebug)

	l := launch.NewQueued(cfg, log)
	if err := l.Run(context.Background(), time.Now()); err != nil {
		log.Error("queued launch failed", err)
		os.Exit(1)
	}
}

func init() {
	queuedCmd.Flags().StringVarP(&queuedConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	queuedCmd.Flags().BoolVarP(&queuedDebug, "debug", "d", false, "Enable debug logging")
}
