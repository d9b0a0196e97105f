package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/adaptgrid/internal/ctxlog"
	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Options configures a Runner.
type Options struct {
	// SkipTagged skips pairs whose validity is not domain.Valid.
	SkipTagged bool
	// Audit receives a record per pair. Optional.
	Audit AuditSink
	// Progress is updated as pairs complete. Optional.
	Progress *Progress
	// Now is the clock used for timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Runner executes a sequence of pairs against an Evaluator.
type Runner struct {
	builder   ParamBuilder
	evaluator Evaluator
	opts      Options
}

// New creates a Runner.
func New(builder ParamBuilder, evaluator Evaluator, opts Options) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Progress == nil {
		opts.Progress = &Progress{}
	}
	return &Runner{builder: builder, evaluator: evaluator, opts: opts}
}

// Progress returns the live counters of the runner.
func (r *Runner) Progress() *Progress { return r.opts.Progress }

// Run processes every pair in order and returns one cell per pair. It never
// stops early: unrunnable pairs and evaluator failures are recorded and the
// next pair is processed.
func (r *Runner) Run(ctx context.Context, pairs []domain.EvaluationPair) *Result {
	logger := ctxlog.FromContext(ctx)
	r.opts.Progress.reset(len(pairs))

	result := &Result{Started: r.opts.Now(), Cells: make([]Cell, 0, len(pairs))}
	logger.Info("Sweep started.", "pairs", len(pairs))

	for i, pair := range pairs {
		cell := r.runPair(ctxlog.With(ctx,
			"pair", i+1,
			"model", pair.Model.Path(),
			"domain", pair.Domain.Name,
			"validity", pair.Validity.String(),
		), i, pair)
		r.opts.Progress.record(cell.Status)
		result.Cells = append(result.Cells, cell)
	}

	result.Finished = r.opts.Now()
	logger.Info("Sweep finished.",
		"succeeded", result.Count(StatusSucceeded),
		"failed", result.Count(StatusFailed),
		"skipped", result.Count(StatusSkipped),
		"filtered", result.Count(StatusFiltered),
		"elapsed", result.Finished.Sub(result.Started),
	)
	return result
}

func (r *Runner) runPair(ctx context.Context, index int, pair domain.EvaluationPair) Cell {
	logger := ctxlog.FromContext(ctx)
	cell := Cell{Index: index, Pair: pair}

	if r.opts.SkipTagged && pair.Validity != domain.Valid {
		logger.Info("Pair filtered by validity.")
		cell.Status = StatusFiltered
		return cell
	}

	params, err := r.builder.Build(pair)
	if err != nil {
		logger.Warn("Pair skipped.", "reason", err)
		if r.opts.Audit != nil {
			r.opts.Audit.Skip(pair, err)
		}
		cell.Status = StatusSkipped
		cell.Err = err
		return cell
	}
	cell.Params = params

	logger.Info("Evaluating pair.", "params", []string(params))
	if r.opts.Audit != nil {
		r.opts.Audit.Params(pair, params)
	}

	start := r.opts.Now()
	err = r.evaluate(ctx, params)
	cell.Duration = r.opts.Now().Sub(start)

	if err != nil {
		logger.Error("Evaluation failed.", "error", err, "duration", cell.Duration)
		if r.opts.Audit != nil {
			r.opts.Audit.Failure(pair, err)
		}
		cell.Status = StatusFailed
		cell.Err = err
		return cell
	}

	logger.Debug("Evaluation finished.", "duration", cell.Duration)
	cell.Status = StatusSucceeded
	return cell
}

// errEvaluatorPanic wraps a recovered evaluator panic.
var errEvaluatorPanic = errors.New("evaluator panicked")

func (r *Runner) evaluate(ctx context.Context, params domain.RunParameters) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", errEvaluatorPanic, rec)
		}
	}()
	return r.evaluator.Evaluate(ctx, params)
}
