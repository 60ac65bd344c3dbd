package sched

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJobsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJobs(t *testing.T) {
	path := writeJobsFile(t, `
jobs:
  - id: bd-forecast
    schedule: "15 * * * *"
    launcher: immediate
  - id: mog-uk-xsect
    schedule: "30 */3 * * *"
    launcher: submit
`)

	jobs, err := LoadJobs(path)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "bd-forecast", jobs[0].ID)
	assert.Equal(t, "15 * * * *", jobs[0].Schedule)
	assert.Equal(t, LauncherImmediate, jobs[0].Launcher)
	assert.Equal(t, LauncherSubmit, jobs[1].Launcher)
}

func TestLoadJobsValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing id",
			"jobs:\n  - schedule: \"* * * * *\"\n    launcher: immediate\n",
		},
		{
			"duplicate id",
			"jobs:\n  - {id: a, schedule: \"* * * * *\", launcher: immediate}\n  - {id: a, schedule: \"* * * * *\", launcher: queued}\n",
		},
		{
			"missing schedule",
			"jobs:\n  - {id: a, launcher: immediate}\n",
		},
		{
			"unknown launcher",
			"jobs:\n  - {id: a, schedule: \"* * * * *\", launcher: hourly}\n",
		},
		{
			"not yaml",
			"{jobs: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJobs(writeJobsFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadJobsMissingFile(t *testing.T) {
	_, err := LoadJobs("/nonexistent/jobs.yaml")
	assert.Error(t, err)
}

func TestLoadJobsEmptyFile(t *testing.T) {
	jobs, err := LoadJobs(writeJobsFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
