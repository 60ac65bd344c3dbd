package main

import (
	"os"
	"time"

	"github.com/aatumaykin/wxlaunch/internal/launch"
	"github.com/spf13/cobra"
)

var (
	immediateConfigPath string
	immediateDebug      bool
)

// immediateCmd represents the immediate command
var immediateCmd = &cobra.Command{
	Use:   "immediate",
	Short: "Launch the best-data forecast program (fire-and-forget)",
	Long: `Derive the launch cycle (one hour behind UTC by default), export the
forecast environment, and start the forecast program in the background with
its combined output redirected to a cycle-named log file. The command returns
as soon as the program has started; program failures are visible only in the
redirected log.`,
	Run: runImmediate,
}

func runImmediate(cmd *cobra.Command, args []string) {
	cfg, log := setup(immediateConfigPath, immediateDebug)

	l := launch.NewImmediate(cfg, log)
	if err := l.Run(time.Now()); err != nil {
		log.Error("immediate launch failed", err)
		os.Exit(1)
	}
}

func init() {
	immediateCmd.Flags().StringVarP(&immediateConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	immediateCmd.Flags().BoolVarP(&immediateDebug, "debug", "d", false, "Enable debug logging")
}
