package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configPath string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Load, validate and print the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _ := setup(configPath, false)

		fmt.Println("Configuration OK")
		fmt.Printf("  code dir:       %s\n", cfg.Paths.CodeDir)
		fmt.Printf("  best data dir:  %s\n", cfg.Paths.BestDataDir)
		fmt.Printf("  mog uk dir:     %s\n", cfg.Paths.MogUKDir)
		fmt.Printf("  scratch dir:    %s\n", cfg.Paths.ScratchDir)
		fmt.Printf("  html dir:       %s\n", cfg.Paths.HTMLDir)
		fmt.Printf("  mass dir:       %s\n", cfg.Paths.MassDir)
		fmt.Printf("  log dir:        %s\n", cfg.LogDir())
		fmt.Printf("  data file:      %s\n", cfg.DataFilePath())
		fmt.Printf("  sidebar:        %s\n", cfg.SidebarPath())
		fmt.Printf("  url start:      %s\n", cfg.Site.URLStart)
		fmt.Printf("  user:           %s\n", cfg.Site.User)
		fmt.Printf("  immediate:      %s (lag %dh)\n", cfg.Immediate.Program, cfg.Immediate.LagHours)
		fmt.Printf("  queued:         %s %s (lag %dh)\n", cfg.Queued.Program, cfg.Queued.Argument, cfg.Queued.LagHours)
		fmt.Printf("  batch:          queue=%s mem=%dG tasks=%d walltime=%dm\n",
			cfg.Batch.Queue, cfg.Batch.MemoryGB, cfg.Batch.Tasks, cfg.Batch.WalltimeMinutes)
	},
}

func init() {
	configCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
}
