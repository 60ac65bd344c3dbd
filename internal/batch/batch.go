// Package batch renders the resource directives the queued launcher declares
// to the batch scheduler and submits the resulting job script.
package batch

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/aatumaykin/wxlaunch/internal/config"
)

//go:embed submit.sh.tmpl
var templates embed.FS

// Directives is the static resource declaration consumed by the scheduler.
type Directives struct {
	JobName         string
	Queue           string
	MemoryGB        int
	Tasks           int
	WalltimeMinutes int
	Output          string
	Error           string
}

// FromConfig builds the directive set from configuration.
func FromConfig(cfg *config.Config) Directives {
	return Directives{
		JobName:         cfg.Batch.JobName,
		Queue:           cfg.Batch.Queue,
		MemoryGB:        cfg.Batch.MemoryGB,
		Tasks:           cfg.Batch.Tasks,
		WalltimeMinutes: cfg.Batch.WalltimeMinutes,
		Output:          cfg.Batch.Output,
		Error:           cfg.Batch.Error,
	}
}

// Walltime formats the wall-clock limit as HH:MM:SS.
func (d Directives) Walltime() string {
	return fmt.Sprintf("%02d:%02d:00", d.WalltimeMinutes/60, d.WalltimeMinutes%60)
}

type scriptData struct {
	Directives
	Command string
}

// Render writes the submission script, directives header plus the command to
// run, to w.
func (d Directives) Render(w io.Writer, command string) error {
	tmpl, err := template.ParseFS(templates, "submit.sh.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse submit template: %w", err)
	}

	if err := tmpl.Execute(w, scriptData{Directives: d, Command: command}); err != nil {
		return fmt.Errorf("failed to render submit script: %w", err)
	}

	return nil
}

// WriteScript renders the submission script into dir and returns its path.
func (d Directives) WriteScript(dir, command string) (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf, command); err != nil {
		return "", err
	}

	path := filepath.Join(dir, d.JobName+".sh")
	if err := os.WriteFile(path, buf.Bytes(), 0755); err != nil {
		return "", fmt.Errorf("failed to write submit script: %w", err)
	}

	return path, nil
}

// Submit hands the script to the scheduler's submit command and returns the
// job ID parsed from its output (e.g. "Submitted batch job 49229449").
func Submit(ctx context.Context, submitCommand, scriptPath string) (string, error) {
	out, err := exec.CommandContext(ctx, submitCommand, scriptPath).Output()
	if err != nil {
		return "", fmt.Errorf("failed to submit job script %s: %w", scriptPath, err)
	}

	jobID, err := parseJobID(string(out))
	if err != nil {
		return "", err
	}

	return jobID, nil
}

// parseJobID extracts the trailing numeric job ID from the submit output.
func parseJobID(out string) (string, error) {
	fields := strings.Fields(out)
	for i := len(fields) - 1; i >= 0; i-- {
		if _, err := strconv.Atoi(fields[i]); err == nil {
			return fields[i], nil
		}
	}
	return "", fmt.Errorf("no job ID in submit output: %q", strings.TrimSpace(out))
}
