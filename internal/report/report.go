package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/adaptgrid/internal/domain"
	"github.com/specialistvlad/adaptgrid/internal/params"
	"github.com/specialistvlad/adaptgrid/internal/runner"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document describing a finished sweep.
type Report struct {
	RunID      string    `yaml:"run_id"`
	Experiment string    `yaml:"experiment,omitempty"`
	Started    time.Time `yaml:"started"`
	Finished   time.Time `yaml:"finished"`
	Summary    Summary   `yaml:"summary"`
	Cells      []Cell    `yaml:"cells"`
}

// Summary counts cells by status.
type Summary struct {
	Total     int `yaml:"total"`
	Succeeded int `yaml:"succeeded"`
	Failed    int `yaml:"failed"`
	Skipped   int `yaml:"skipped"`
	Filtered  int `yaml:"filtered"`
}

// Cell is one row of the report.
type Cell struct {
	Model           string          `yaml:"model"`
	Domain          string          `yaml:"domain"`
	TrainingDomains string          `yaml:"training_domains,omitempty"`
	Validity        domain.Validity `yaml:"validity"`
	Status          runner.Status   `yaml:"status"`
	InstanceFile    string          `yaml:"instance_file,omitempty"`
	Error           string          `yaml:"error,omitempty"`
	Duration        time.Duration   `yaml:"duration,omitempty"`
}

// NewRunID returns a fresh sweep identifier.
func NewRunID() string {
	return uuid.NewString()
}

// FromResult converts a runner result into a Report.
func FromResult(runID, experiment string, res *runner.Result) *Report {
	r := &Report{
		RunID:      runID,
		Experiment: experiment,
		Started:    res.Started,
		Finished:   res.Finished,
		Summary: Summary{
			Total:     len(res.Cells),
			Succeeded: res.Count(runner.StatusSucceeded),
			Failed:    res.Count(runner.StatusFailed),
			Skipped:   res.Count(runner.StatusSkipped),
			Filtered:  res.Count(runner.StatusFiltered),
		},
		Cells: make([]Cell, 0, len(res.Cells)),
	}
	for _, c := range res.Cells {
		cell := Cell{
			Model:           c.Pair.Model.Path(),
			Domain:          c.Pair.Domain.Name,
			TrainingDomains: flagValue(c.Params, params.FlagTrainDir),
			Validity:        c.Pair.Validity,
			Status:          c.Status,
			InstanceFile:    flagValue(c.Params, params.FlagPrintInstances),
			Duration:        c.Duration,
		}
		if c.Err != nil {
			cell.Error = c.Err.Error()
		}
		r.Cells = append(r.Cells, cell)
	}
	return r
}

// flagValue returns the token following flag, or "".
func flagValue(tokens domain.RunParameters, flag string) string {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i] == flag {
			return tokens[i+1]
		}
	}
	return ""
}

// Write stores the report at path as YAML, creating parent directories.
func Write(path string, r *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return f.Close()
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &r, nil
}

// FileName returns the report name for a sweep started at t, matching the
// audit log name with a ".yaml" extension.
func FileName(prefix string, t time.Time) string {
	return prefix + t.Format("20060102T150405") + ".yaml"
}
