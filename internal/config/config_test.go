package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	tests := []struct {
		name  string
		field string
		want  string
		got   string
	}{
		{"data file", "paths.data_file", "bd_sites.csv", cfg.Paths.DataFile},
		{"sidebar file", "paths.sidebar_file", "sidebar.html", cfg.Paths.SidebarFile},
		{"queued argument", "queued.argument", "yes", cfg.Queued.Argument},
		{"queued log prefix", "queued.log_prefix", "mog_uk", cfg.Queued.LogPrefix},
		{"batch queue", "batch.queue", "normal", cfg.Batch.Queue},
		{"batch job name", "batch.job_name", "mog_uk", cfg.Batch.JobName},
		{"submit command", "batch.submit_command", "sbatch", cfg.Batch.SubmitCommand},
		{"logging level", "logging.level", "info", cfg.Logging.Level},
		{"logging format", "logging.format", "text", cfg.Logging.Format},
		{"logging output", "logging.output", "stderr", cfg.Logging.Output},
		{"immediate lag", "immediate.lag_hours", "1", strconv.Itoa(cfg.Immediate.LagHours)},
		{"queued lag", "queued.lag_hours", "3", strconv.Itoa(cfg.Queued.LagHours)},
		{"batch memory", "batch.memory_gb", "20", strconv.Itoa(cfg.Batch.MemoryGB)},
		{"batch tasks", "batch.tasks", "8", strconv.Itoa(cfg.Batch.Tasks)},
		{"batch walltime", "batch.walltime_minutes", "120", strconv.Itoa(cfg.Batch.WalltimeMinutes)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %s = %s, got %s", tt.field, tt.want, tt.got)
			}
		})
	}
}

func validTestConfig() *Config {
	cfg := &Config{
		Paths: PathsConfig{
			CodeDir: "/opt/trials/code",
			HTMLDir: "/var/www/trials",
		},
		Immediate: ImmediateConfig{Program: "bd_uas_forecast"},
		Queued:    QueuedConfig{Program: "m_uk_leeming"},
	}
	applyDefaults(cfg)
	return cfg
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing code dir", func(c *Config) { c.Paths.CodeDir = "" }, true},
		{"missing html dir", func(c *Config) { c.Paths.HTMLDir = "" }, true},
		{"missing immediate program", func(c *Config) { c.Immediate.Program = "" }, true},
		{"missing queued program", func(c *Config) { c.Queued.Program = "" }, true},
		{"zero lag", func(c *Config) { c.Immediate.LagHours = 0 }, true},
		{"negative lag", func(c *Config) { c.Queued.LagHours = -3 }, true},
		{"zero batch memory", func(c *Config) { c.Batch.MemoryGB = -1 }, true},
		{"path traversal", func(c *Config) { c.Paths.CodeDir = "/opt/../etc" }, true},
		{"invalid logging level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"invalid logging format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if tt.wantErr && len(errs) == 0 {
				t.Error("expected validation errors, got none")
			}
			if !tt.wantErr && len(errs) > 0 {
				t.Errorf("expected no validation errors, got %v", errs)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	content := `
[paths]
code_dir = "/opt/trials/code"
best_data_dir = "/data/best_data"
mog_uk_dir = "/data/mog_uk"
scratch_dir = "/scratch/trials"
html_dir = "/var/www/trials"
mass_dir = "moose:/adhoc/projects/trials"

[site]
url_start = "http://trials.example.org/forecasts"

[immediate]
program = "bd_uas_forecast"

[queued]
program = "m_uk_leeming"

[logging]
level = "debug"
format = "json"
output = "stdout"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Paths.CodeDir != "/opt/trials/code" {
		t.Errorf("code_dir = %q, want /opt/trials/code", cfg.Paths.CodeDir)
	}
	if cfg.Paths.MassDir != "moose:/adhoc/projects/trials" {
		t.Errorf("mass_dir = %q, want moose path", cfg.Paths.MassDir)
	}
	// Defaults kick in for omitted sections
	if cfg.Queued.Argument != "yes" {
		t.Errorf("queued.argument default = %q, want yes", cfg.Queued.Argument)
	}
	if cfg.Batch.Output != "/opt/trials/code/mog_uk.out" {
		t.Errorf("batch.output default = %q, want /opt/trials/code/mog_uk.out", cfg.Batch.Output)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("valid file failed validation: %v", errs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("WXLAUNCH_TEST_DIR", "/mnt/scratch")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "${WXLAUNCH_TEST_DIR}", "/mnt/scratch"},
		{"set variable with suffix", "${WXLAUNCH_TEST_DIR}/trials", "/mnt/scratch/trials"},
		{"unset with default", "${WXLAUNCH_TEST_UNSET:/fallback}", "/fallback"},
		{"plain string", "/plain/path", "/plain/path"},
		{"unterminated", "${WXLAUNCH_TEST_DIR", "${WXLAUNCH_TEST_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.in); got != tt.want {
				t.Errorf("expandEnv(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogDirAndJoins(t *testing.T) {
	cfg := validTestConfig()

	if got := cfg.LogDir(); got != "/var/www/trials/logs" {
		t.Errorf("LogDir() = %q, want /var/www/trials/logs", got)
	}
	if got := cfg.DataFilePath(); got != "/opt/trials/code/bd_sites.csv" {
		t.Errorf("DataFilePath() = %q, want /opt/trials/code/bd_sites.csv", got)
	}
	if got := cfg.SidebarPath(); got != "/var/www/trials/sidebar.html" {
		t.Errorf("SidebarPath() = %q, want /var/www/trials/sidebar.html", got)
	}
}
