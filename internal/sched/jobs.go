// Package sched provides the periodic trigger for launcher runs. Launch
// schedules come from a YAML jobs file; robfig/cron fires them and each
// firing is handed to the worker pool as a background task.
package sched

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Launcher names accepted in the jobs file.
const (
	LauncherImmediate = "immediate"
	LauncherQueued    = "queued"
	LauncherSubmit    = "submit"
)

// JobSpec is one scheduled launch entry.
type JobSpec struct {
	ID       string `yaml:"id"`       // Unique job identifier
	Schedule string `yaml:"schedule"` // Standard 5-field cron expression
	Launcher string `yaml:"launcher"` // immediate, queued, or submit
}

type jobsFile struct {
	Jobs []JobSpec `yaml:"jobs"`
}

// LoadJobs reads and validates the jobs file.
func LoadJobs(path string) ([]JobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var file jobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file: %w", err)
	}

	seen := make(map[string]bool)
	for i, job := range file.Jobs {
		if job.ID == "" {
			return nil, fmt.Errorf("job %d: id is required", i)
		}
		if seen[job.ID] {
			return nil, fmt.Errorf("job %q: duplicate id", job.ID)
		}
		seen[job.ID] = true

		if job.Schedule == "" {
			return nil, fmt.Errorf("job %q: schedule is required", job.ID)
		}

		switch job.Launcher {
		case LauncherImmediate, LauncherQueued, LauncherSubmit:
		default:
			return nil, fmt.Errorf("job %q: unknown launcher %q (expected: immediate, queued, submit)", job.ID, job.Launcher)
		}
	}

	return file.Jobs, nil
}
