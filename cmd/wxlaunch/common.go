package main

import (
	"fmt"
	"os"

	"github.com/aatumaykin/wxlaunch/internal/config"
	"github.com/aatumaykin/wxlaunch/internal/logger"
)

const defaultConfigPath = "config.toml"

// setup loads and validates configuration, then initializes the logger.
// Any failure terminates the process: there is no caller to report to.
func setup(configPath string, debug bool) (*config.Config, *logger.Logger) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Pick up a local .env first so ${VAR} references in the config resolve.
	if err := config.LoadEnvOptional(".env"); err != nil {
		fmt.Printf("❌ Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if errors := cfg.Validate(); len(errors) > 0 {
		fmt.Printf("❌ Configuration validation failed:\n")
		for _, e := range errors {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	if debug {
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	return cfg, log
}
