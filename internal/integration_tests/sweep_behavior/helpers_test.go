package integration_tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/adaptgrid/internal/app"
	"github.com/specialistvlad/adaptgrid/internal/hcl_adapter"
	"github.com/specialistvlad/adaptgrid/internal/runner"
	"github.com/specialistvlad/adaptgrid/internal/testutil"
)

// harnessResult holds the outcomes of an end-to-end sweep.
type harnessResult struct {
	LogOutput string
	OutputDir string
	Err       error
	App       *app.App
	Result    *runner.Result
}

// runSweep writes files to a temporary experiment directory, builds the app
// and, when that succeeds, runs the sweep with eval.
func runSweep(t *testing.T, files map[string]string, eval runner.Evaluator) *harnessResult {
	t.Helper()

	dir := testutil.WriteFiles(t, files)
	logs := &testutil.SafeBuffer{}

	cfg := app.DefaultConfig()
	cfg.ExperimentPath = dir
	cfg.OutputDir = filepath.Join(dir, ".out")
	cfg.LogLevel = "debug"

	res := &harnessResult{OutputDir: cfg.OutputDir}
	a, err := app.NewApp(logs, &cfg, hcl_adapter.NewLoader(), app.WithEvaluator(eval))
	if err != nil {
		res.Err = err
		res.LogOutput = logs.String()
		return res
	}
	res.App = a
	res.Result, res.Err = a.Run(context.Background())
	res.LogOutput = logs.String()
	return res
}
