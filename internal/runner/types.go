package runner

import (
	"context"
	"time"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Evaluator runs one evaluation with the given parameters. It is expected to
// block until the evaluation is finished.
type Evaluator interface {
	Evaluate(ctx context.Context, params domain.RunParameters) error
}

// ParamBuilder builds the parameters of a pair. *params.Builder satisfies it.
type ParamBuilder interface {
	Build(pair domain.EvaluationPair) (domain.RunParameters, error)
}

// AuditSink receives one record per processed pair.
type AuditSink interface {
	Params(pair domain.EvaluationPair, params domain.RunParameters)
	Skip(pair domain.EvaluationPair, reason error)
	Failure(pair domain.EvaluationPair, err error)
}

// Status is the outcome of one pair.
type Status string

const (
	// StatusSucceeded means the evaluator returned without error.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means the evaluator returned an error or panicked.
	StatusFailed Status = "failed"
	// StatusSkipped means the pair was unrunnable.
	StatusSkipped Status = "skipped"
	// StatusFiltered means the pair was tagged and the sweep skips tagged pairs.
	StatusFiltered Status = "filtered"
)

// Cell is the record of one processed pair.
type Cell struct {
	Index    int
	Pair     domain.EvaluationPair
	Status   Status
	Params   domain.RunParameters
	Err      error
	Duration time.Duration
}

// Result collects the cells of a sweep in enumeration order.
type Result struct {
	Started  time.Time
	Finished time.Time
	Cells    []Cell
}

// Count returns the number of cells with status s.
func (r *Result) Count(s Status) int {
	n := 0
	for _, c := range r.Cells {
		if c.Status == s {
			n++
		}
	}
	return n
}
