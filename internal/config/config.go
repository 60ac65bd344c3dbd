package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads the configuration from a TOML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := expandEnvVars(&cfg); err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity and returns all problems found.
func (c *Config) Validate() []error {
	var errors []error

	// Directory layout
	if c.Paths.CodeDir == "" {
		errors = append(errors, fmt.Errorf("paths.code_dir is required"))
	} else if err := validatePath(c.Paths.CodeDir, "paths.code_dir"); err != nil {
		errors = append(errors, err)
	}
	if c.Paths.HTMLDir == "" {
		errors = append(errors, fmt.Errorf("paths.html_dir is required"))
	} else if err := validatePath(c.Paths.HTMLDir, "paths.html_dir"); err != nil {
		errors = append(errors, err)
	}
	if c.Paths.ScratchDir != "" {
		if err := validatePath(c.Paths.ScratchDir, "paths.scratch_dir"); err != nil {
			errors = append(errors, err)
		}
	}

	// Launcher programs
	if c.Immediate.Program == "" {
		errors = append(errors, fmt.Errorf("immediate.program is required"))
	}
	if c.Queued.Program == "" {
		errors = append(errors, fmt.Errorf("queued.program is required"))
	}

	// Cycle lags must stay positive; zero means "current hour" which the
	// upstream data never supports.
	if c.Immediate.LagHours < 1 {
		errors = append(errors, fmt.Errorf("immediate.lag_hours must be >= 1 (got %d)", c.Immediate.LagHours))
	}
	if c.Queued.LagHours < 1 {
		errors = append(errors, fmt.Errorf("queued.lag_hours must be >= 1 (got %d)", c.Queued.LagHours))
	}

	// Batch directives
	if c.Batch.MemoryGB <= 0 {
		errors = append(errors, fmt.Errorf("batch.memory_gb must be positive (got %d)", c.Batch.MemoryGB))
	}
	if c.Batch.Tasks <= 0 {
		errors = append(errors, fmt.Errorf("batch.tasks must be positive (got %d)", c.Batch.Tasks))
	}
	if c.Batch.WalltimeMinutes <= 0 {
		errors = append(errors, fmt.Errorf("batch.walltime_minutes must be positive (got %d)", c.Batch.WalltimeMinutes))
	}

	// Serve settings
	if c.Serve.Workers <= 0 {
		errors = append(errors, fmt.Errorf("serve.workers must be positive (got %d)", c.Serve.Workers))
	}
	if c.Serve.QueueSize <= 0 {
		errors = append(errors, fmt.Errorf("serve.queue_size must be positive (got %d)", c.Serve.QueueSize))
	}

	// Logging config
	if c.Logging.Level == "" {
		errors = append(errors, fmt.Errorf("logging.level is required"))
	} else {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format == "" {
		errors = append(errors, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	return errors
}

func validatePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.HasPrefix(path, "~") {
		return nil
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("%s contains potentially dangerous path traversal sequence", fieldName)
	}

	return nil
}

// applyDefaults fills in default values for unset fields.
func applyDefaults(c *Config) {
	if c.Site.User == "" {
		c.Site.User = os.Getenv("USER")
	}

	if c.Paths.DataFile == "" {
		c.Paths.DataFile = "bd_sites.csv"
	}
	if c.Paths.SidebarFile == "" {
		c.Paths.SidebarFile = "sidebar.html"
	}

	if c.Immediate.LagHours == 0 {
		c.Immediate.LagHours = 1
	}

	if c.Queued.LagHours == 0 {
		c.Queued.LagHours = 3
	}
	if c.Queued.Argument == "" {
		c.Queued.Argument = "yes"
	}
	if c.Queued.LogPrefix == "" {
		c.Queued.LogPrefix = "mog_uk"
	}

	if c.Batch.Queue == "" {
		c.Batch.Queue = "normal"
	}
	if c.Batch.MemoryGB == 0 {
		c.Batch.MemoryGB = 20
	}
	if c.Batch.Tasks == 0 {
		c.Batch.Tasks = 8
	}
	if c.Batch.WalltimeMinutes == 0 {
		c.Batch.WalltimeMinutes = 120
	}
	if c.Batch.JobName == "" {
		c.Batch.JobName = "mog_uk"
	}
	if c.Batch.SubmitCommand == "" {
		c.Batch.SubmitCommand = "sbatch"
	}
	if c.Batch.Output == "" {
		c.Batch.Output = filepath.Join(c.Paths.CodeDir, c.Batch.JobName+".out")
	}
	if c.Batch.Error == "" {
		c.Batch.Error = filepath.Join(c.Paths.CodeDir, c.Batch.JobName+".err")
	}

	if c.Serve.JobsFile == "" {
		c.Serve.JobsFile = "jobs.yaml"
	}
	if c.Serve.Workers == 0 {
		c.Serve.Workers = 2
	}
	if c.Serve.QueueSize == 0 {
		c.Serve.QueueSize = 8
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

// expandEnvVars expands environment references in configured paths and URLs.
func expandEnvVars(c *Config) error {
	for _, field := range []*string{
		&c.Paths.CodeDir,
		&c.Paths.BestDataDir,
		&c.Paths.MogUKDir,
		&c.Paths.ScratchDir,
		&c.Paths.HTMLDir,
		&c.Paths.MassDir,
		&c.Site.URLStart,
		&c.Batch.Output,
		&c.Batch.Error,
		&c.Serve.JobsFile,
	} {
		if strings.HasPrefix(*field, "${") {
			*field = expandEnv(*field)
		}
		*field = expandHome(*field)
	}

	return nil
}

// expandEnv expands an environment reference of the form ${VAR:default}.
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		key := parts[0]
		defaultVal := parts[1]
		if val := os.Getenv(key); val != "" {
			return val + s[end+1:]
		}
		return defaultVal + s[end+1:]
	}

	// No default value
	return os.Getenv(s[2:end]) + s[end+1:]
}

// expandHome expands ~ in a path.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
