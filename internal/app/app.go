package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/specialistvlad/adaptgrid/internal/catalog"
	"github.com/specialistvlad/adaptgrid/internal/config"
	"github.com/specialistvlad/adaptgrid/internal/ctxlog"
	"github.com/specialistvlad/adaptgrid/internal/domain"
	"github.com/specialistvlad/adaptgrid/internal/params"
	"github.com/specialistvlad/adaptgrid/internal/runner"
)

// DefaultRunPrefix names audit logs and reports when the experiment does
// not set run_prefix.
const DefaultRunPrefix = "feda_"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	model     *config.Model
	domains   *catalog.Domains
	training  *catalog.Training
	builder   *params.Builder
	pairs     []domain.EvaluationPair
	evaluator runner.Evaluator
	progress  *runner.Progress
	now       func() time.Time

	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithEvaluator replaces the evaluator derived from configuration.
func WithEvaluator(e runner.Evaluator) Option {
	return func(a *App) { a.evaluator = e }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp loads the experiment and builds everything a sweep needs. Any
// configuration error, including ambiguous provenance, is returned here so
// that no pair is evaluated against an inconsistent setup.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		progress: &runner.Progress{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	model, err := loader.Load(ctx, cfg.Vars, cfg.ExperimentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load experiment: %w", err)
	}
	a.model = model
	logger.Debug("Experiment loaded.", "experiment", model.Experiment.Name)

	if err := a.build(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Pairs returns the enumerated grid.
func (a *App) Pairs() []domain.EvaluationPair { return a.pairs }

// Training returns the provenance registry. This is primarily for testing.
func (a *App) Training() *catalog.Training { return a.training }

// Domains returns the test domain registry. This is primarily for testing.
func (a *App) Domains() *catalog.Domains { return a.domains }

// Progress returns the live counters of the sweep.
func (a *App) Progress() *runner.Progress { return a.progress }

func (a *App) runPrefix() string {
	if a.model.Experiment.RunPrefix != "" {
		return a.model.Experiment.RunPrefix
	}
	return DefaultRunPrefix
}

func (a *App) instancesDir() (string, error) {
	abs, err := filepath.Abs(a.config.OutputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	return abs, nil
}
