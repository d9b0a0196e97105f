package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// RecordingEvaluator records every parameter list it receives. Fail decides
// the outcome of a call; a nil Fail makes every call succeed.
type RecordingEvaluator struct {
	Fail func(params domain.RunParameters) error

	mu    sync.Mutex
	calls []domain.RunParameters
}

// Evaluate records params and returns the outcome chosen by Fail.
func (e *RecordingEvaluator) Evaluate(_ context.Context, params domain.RunParameters) error {
	e.mu.Lock()
	e.calls = append(e.calls, slices.Clone(params))
	e.mu.Unlock()

	if e.Fail != nil {
		return e.Fail(params)
	}
	return nil
}

// Calls returns a copy of the recorded parameter lists in call order.
func (e *RecordingEvaluator) Calls() []domain.RunParameters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.calls)
}
