package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wxlaunch",
	Short: "wxlaunch - trial forecast launch orchestrator",
	Long: `wxlaunch prepares the environment for and launches the weather trial
forecast programs: the best-data UAS forecast (immediate, fire-and-forget)
and the MOGREPS-UK cross-section run (through the batch scheduler).`,
	Version: Version,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(immediateCmd)
	rootCmd.AddCommand(queuedCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(serveCmd)
}
