// Package config provides configuration loading and validation for wxlaunch.
// It supports TOML configuration files with environment variable expansion,
// default values, and comprehensive validation.
//
// Configuration structure:
//   - [paths]: Directory layout shared by both launchers
//   - [site]: Operating user and base URL handed to the invoked programs
//   - [immediate]: Best-data forecast launcher settings
//   - [queued]: MOGREPS-UK cross-section launcher settings
//   - [batch]: Batch scheduler resource directives and submit command
//   - [serve]: Periodic trigger daemon settings
//   - [logging]: Logging level, format, and output
//
// Environment variables:
// String values can reference environment variables using ${VAR} or
// ${VAR:default} syntax. For example: scratch_dir = "${SCRATCH:/tmp/scratch}"
package config

import "path/filepath"

// Config represents the main application configuration.
type Config struct {
	Paths     PathsConfig     `toml:"paths"`
	Site      SiteConfig      `toml:"site"`
	Immediate ImmediateConfig `toml:"immediate"`
	Queued    QueuedConfig    `toml:"queued"`
	Batch     BatchConfig     `toml:"batch"`
	Serve     ServeConfig     `toml:"serve"`
	Logging   LoggingConfig   `toml:"logging"`
}

// PathsConfig holds the directory layout both launchers operate in.
type PathsConfig struct {
	CodeDir     string `toml:"code_dir"`     // Directory the invoked programs live in
	BestDataDir string `toml:"best_data_dir"` // Upstream best-data input directory
	MogUKDir    string `toml:"mog_uk_dir"`   // Upstream MOGREPS-UK model output directory
	ScratchDir  string `toml:"scratch_dir"`  // Scratch working directory
	HTMLDir     string `toml:"html_dir"`     // Web-accessible output directory
	MassDir     string `toml:"mass_dir"`     // Archive directory reference
	DataFile    string `toml:"data_file"`    // Best-data site file name, joined onto code_dir
	SidebarFile string `toml:"sidebar_file"` // Sidebar file name, joined onto html_dir
}

// SiteConfig holds identity values exported to the invoked programs.
type SiteConfig struct {
	User     string `toml:"user"`      // Operating user name, defaults to $USER
	URLStart string `toml:"url_start"` // Base URL of the web output
}

// ImmediateConfig holds the best-data forecast launcher settings.
type ImmediateConfig struct {
	Program  string `toml:"program"`   // Forecast program to launch
	LagHours int    `toml:"lag_hours"` // Cycle lag behind wall clock, default 1
}

// QueuedConfig holds the MOGREPS-UK cross-section launcher settings.
type QueuedConfig struct {
	Program   string `toml:"program"`    // Program to run synchronously
	Argument  string `toml:"argument"`   // Single fixed argument, default "yes"
	LagHours  int    `toml:"lag_hours"`  // Cycle lag behind wall clock, default 3
	LogPrefix string `toml:"log_prefix"` // Prefix for the copied log files, default "mog_uk"
}

// BatchConfig holds the resource directives declared to the batch scheduler
// and the default output/error file locations it writes.
type BatchConfig struct {
	Queue           string `toml:"queue"`            // Queue/priority class
	MemoryGB        int    `toml:"memory_gb"`        // Memory reservation in GB
	Tasks           int    `toml:"tasks"`            // Parallel task slots
	WalltimeMinutes int    `toml:"walltime_minutes"` // Wall-clock limit in minutes
	JobName         string `toml:"job_name"`         // Scheduler job name
	Output          string `toml:"output"`           // Scheduler default stdout path
	Error           string `toml:"error"`            // Scheduler default stderr path
	SubmitCommand   string `toml:"submit_command"`   // Submit command, default "sbatch"
}

// ServeConfig holds the periodic trigger daemon settings.
type ServeConfig struct {
	JobsFile  string `toml:"jobs_file"`  // YAML file with launch schedules
	Workers   int    `toml:"workers"`    // Worker pool size
	QueueSize int    `toml:"queue_size"` // Worker pool queue capacity
}

// LoggingConfig holds the launcher's own operational logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// LogDir returns the web-accessible log directory both launchers write into.
func (c *Config) LogDir() string {
	return filepath.Join(c.Paths.HTMLDir, "logs")
}

// DataFilePath returns the best-data site file path (code_dir + data_file).
func (c *Config) DataFilePath() string {
	return filepath.Join(c.Paths.CodeDir, c.Paths.DataFile)
}

// SidebarPath returns the sidebar file path (html_dir + sidebar_file).
func (c *Config) SidebarPath() string {
	return filepath.Join(c.Paths.HTMLDir, c.Paths.SidebarFile)
}
