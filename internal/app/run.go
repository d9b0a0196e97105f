package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/adaptgrid/internal/ctxlog"
	"github.com/specialistvlad/adaptgrid/internal/evaluator"
	"github.com/specialistvlad/adaptgrid/internal/fsutil"
	"github.com/specialistvlad/adaptgrid/internal/report"
	"github.com/specialistvlad/adaptgrid/internal/runner"
)

// ErrEvaluationsFailed is returned by Run when FailOnError is set and at
// least one evaluation failed.
var ErrEvaluationsFailed = errors.New("evaluations failed")

// Run executes the sweep, writes the audit log and the report, and returns
// the per-pair result.
func (a *App) Run(ctx context.Context) (*runner.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	eval, err := a.resolveEvaluator()
	if err != nil {
		return nil, err
	}

	outDir, err := fsutil.EnsureDir(a.config.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("preparing output directory: %w", err)
	}

	started := a.now()
	runID := report.NewRunID()
	auditPath := filepath.Join(outDir, report.AuditFileName(a.runPrefix(), started))
	auditFile, err := os.Create(auditPath)
	if err != nil {
		return nil, fmt.Errorf("creating audit log: %w", err)
	}
	defer auditFile.Close()
	audit := report.NewAuditLog(auditFile)
	a.logger.Info("🚀 Starting sweep.", "run_id", runID, "pairs", len(a.pairs), "audit_log", auditPath)

	r := runner.New(a.builder, eval, runner.Options{
		SkipTagged: a.model.Grid.SkipTagged,
		Audit:      audit,
		Progress:   a.progress,
		Now:        a.now,
	})
	result := r.Run(ctx, a.pairs)

	if err := audit.Err(); err != nil {
		a.logger.Warn("Audit log is incomplete.", "error", err)
	}

	reportPath := a.config.ReportPath
	if reportPath == "" {
		reportPath = filepath.Join(outDir, report.FileName(a.runPrefix(), started))
	}
	if err := report.Write(reportPath, report.FromResult(runID, a.model.Experiment.Name, result)); err != nil {
		return result, fmt.Errorf("writing report: %w", err)
	}
	a.logger.Info("🏁 Sweep finished.", "report", reportPath)

	if failed := result.Count(runner.StatusFailed); failed > 0 && a.config.FailOnError {
		return result, fmt.Errorf("%w: %d of %d", ErrEvaluationsFailed, failed, len(result.Cells))
	}
	return result, nil
}

// resolveEvaluator picks the evaluator: an injected one, the dry-run
// evaluator, or the configured command.
func (a *App) resolveEvaluator() (runner.Evaluator, error) {
	switch {
	case a.evaluator != nil:
		return a.evaluator, nil
	case a.config.DryRun:
		return evaluator.DryRun{}, nil
	case a.model.Evaluator == nil:
		return nil, errors.New("experiment has no evaluator block; add one or use dry-run mode")
	}

	env := make([]string, 0, len(a.model.Evaluator.Env))
	for k, v := range a.model.Evaluator.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)

	cmd, err := evaluator.NewCommand(a.model.Evaluator.Command,
		evaluator.WithOutput(a.outW, a.outW),
		evaluator.WithEnv(env...),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid evaluator: %w", err)
	}
	a.logger.Debug("Using evaluator command.", "command", strings.Join(a.model.Evaluator.Command, " "))
	return cmd, nil
}
