package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/adaptgrid/internal/app"
	"github.com/specialistvlad/adaptgrid/internal/domain"
	"github.com/specialistvlad/adaptgrid/internal/grid"
	"github.com/specialistvlad/adaptgrid/internal/hcl_adapter"
	"github.com/specialistvlad/adaptgrid/internal/params"
	"github.com/specialistvlad/adaptgrid/internal/report"
	"github.com/specialistvlad/adaptgrid/internal/runner"
	"github.com/specialistvlad/adaptgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heldOutExperiment = `
experiment "polarity" {
  run_prefix = "test_"
}

domain "sharp" {
  path     = "/data/sharp/test"
  held_out = true
}

domain "negex" {
  path = "/data/negex"
}

training "sharp" {
  domains = ["sharp"]
  model   = "/models/sharp_feda"
}

training "sharp_negex" {
  domains = ["sharp", "negex"]
  model   = "/models/sharp_negex_feda"
}

grid {
  policy      = "held_out"
  skip_tagged = %s
}
`

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestApp(t *testing.T, hcl string, mutate func(*app.Config), opts ...app.Option) (*app.App, *app.Config) {
	t.Helper()

	dir := testutil.WriteFiles(t, map[string]string{"experiment/main.hcl": hcl})
	cfg := app.DefaultConfig()
	cfg.ExperimentPath = filepath.Join(dir, "experiment")
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.LogLevel = "debug"
	if mutate != nil {
		mutate(&cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	opts = append([]app.Option{app.WithClock(func() time.Time { return fixedNow })}, opts...)
	a, err := app.NewApp(&testutil.SafeBuffer{}, validated, hcl_adapter.NewLoader(), opts...)
	require.NoError(t, err)
	return a, validated
}

func TestNewApp_EnumeratesHeldOutGrid(t *testing.T) {
	a, _ := newTestApp(t, strings.Replace(heldOutExperiment, "%s", "true", 1), nil)

	pairs := a.Pairs()
	require.Len(t, pairs, 4)

	got := make([]string, 0, len(pairs))
	for _, p := range pairs {
		got = append(got, p.String()+" "+p.Validity.String())
	}
	assert.Equal(t, []string{
		"/models/sharp_feda x sharp valid",
		"/models/sharp_feda x negex valid",
		"/models/sharp_negex_feda x sharp valid",
		"/models/sharp_negex_feda x negex not_valid",
	}, got)

	descriptor, ok := a.Training().ResolveTrainingDescriptor("/models/sharp_negex_feda")
	require.True(t, ok)
	assert.Equal(t, "negex+sharp", descriptor)
	assert.Equal(t, 2, a.Domains().Len())
}

func TestRun_WritesAuditLogAndReport(t *testing.T) {
	eval := &testutil.RecordingEvaluator{
		Fail: func(p domain.RunParameters) error {
			if p[1] == "/data/negex" {
				return errors.New("exit status 1")
			}
			return nil
		},
	}
	a, cfg := newTestApp(t, strings.Replace(heldOutExperiment, "%s", "true", 1), nil, app.WithEvaluator(eval))

	res, err := a.Run(context.Background())
	require.NoError(t, err, "failures do not fail the sweep unless requested")

	assert.Len(t, eval.Calls(), 3)
	assert.Equal(t, 2, res.Count(runner.StatusSucceeded))
	assert.Equal(t, 1, res.Count(runner.StatusFailed))
	assert.Equal(t, 1, res.Count(runner.StatusFiltered))

	for _, call := range eval.Calls() {
		assert.Equal(t, params.FlagTestDir, call[0])
		assert.True(t, strings.HasPrefix(call[9], filepath.Join(cfg.OutputDir, "instances_")), "instance file lives in the output directory: %s", call[9])
	}

	audit, err := os.ReadFile(filepath.Join(cfg.OutputDir, "test_20250304T050607.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(audit)), "\n")
	require.Len(t, lines, 4, "three parameter lines and one failure line")
	assert.True(t, strings.HasPrefix(lines[0], "[--test-dir, /data/sharp/test, --models-dir, /models/sharp_feda"))
	assert.True(t, strings.HasPrefix(lines[2], "FAIL"))

	rep, err := report.Read(filepath.Join(cfg.OutputDir, "test_20250304T050607.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "polarity", rep.Experiment)
	assert.Equal(t, report.Summary{Total: 4, Succeeded: 2, Failed: 1, Filtered: 1}, rep.Summary)
	assert.Equal(t, "sharp", rep.Cells[0].TrainingDomains)
	assert.Equal(t, "exit status 1", rep.Cells[1].Error)

	snap := a.Progress().Snapshot()
	assert.Equal(t, int64(4), snap.Total)
	assert.Equal(t, int64(4), snap.Done)
}

func TestRun_TaggedPairsRunByDefault(t *testing.T) {
	eval := &testutil.RecordingEvaluator{}
	a, _ := newTestApp(t, strings.Replace(heldOutExperiment, "%s", "false", 1), nil, app.WithEvaluator(eval))

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, eval.Calls(), 4)
	assert.Equal(t, 4, res.Count(runner.StatusSucceeded))
}

func TestRun_FailOnError(t *testing.T) {
	eval := &testutil.RecordingEvaluator{Fail: func(domain.RunParameters) error { return errors.New("boom") }}
	a, _ := newTestApp(t, strings.Replace(heldOutExperiment, "%s", "true", 1),
		func(c *app.Config) { c.FailOnError = true },
		app.WithEvaluator(eval),
	)

	res, err := a.Run(context.Background())
	require.ErrorIs(t, err, app.ErrEvaluationsFailed)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Count(runner.StatusFailed))
}

func TestRun_CustomReportPath(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "nested", "report.yaml")
	a, _ := newTestApp(t, strings.Replace(heldOutExperiment, "%s", "true", 1),
		func(c *app.Config) { c.ReportPath = reportPath },
		app.WithEvaluator(&testutil.RecordingEvaluator{}),
	)

	_, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, reportPath)
}

func TestRun_DryRun(t *testing.T) {
	a, _ := newTestApp(t, strings.Replace(heldOutExperiment, "%s", "true", 1),
		func(c *app.Config) { c.DryRun = true },
	)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count(runner.StatusSucceeded))
}

func TestRun_MissingEvaluator(t *testing.T) {
	a, _ := newTestApp(t, strings.Replace(heldOutExperiment, "%s", "true", 1), nil)

	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no evaluator block")
}

func TestRun_CommandEvaluator(t *testing.T) {
	hcl := strings.Replace(heldOutExperiment, "%s", "true", 1) + `
evaluator {
  command = ["sh", "-c", "test \"$MODE\" = feda", "evaluate"]
  env     = { MODE = "feda" }
}
`
	a, _ := newTestApp(t, hcl, nil)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count(runner.StatusSucceeded))
}

func TestNewApp_ConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		hcl     string
		wantErr error
		wantMsg string
	}{
		{
			name: "model shared by two combinations",
			hcl: `
domain "a" { path = "/a" }
domain "b" { path = "/b" }
training "a" {
  domains = ["a"]
  model   = "/models/m"
}
training "b" {
  domains = ["b"]
  model   = "/models/m"
}
grid {}
`,
			wantErr: domain.ErrAmbiguousProvenance,
		},
		{
			name: "combination served by two models",
			hcl: `
domain "a" { path = "/a" }
training "one" {
  domains = ["a"]
  model   = "/models/one"
}
training "two" {
  domains = ["a"]
  model   = "/models/two"
}
grid {}
`,
			wantErr: domain.ErrAmbiguousProvenance,
		},
		{
			name: "duplicate domain in combination",
			hcl: `
domain "a" { path = "/a" }
training "aa" {
  domains = ["a", "a"]
  model   = "/models/aa"
}
grid {}
`,
			wantErr: domain.ErrInvalidCombination,
		},
		{
			name: "unknown grid domain",
			hcl: `
domain "a" { path = "/a" }
grid {
  domains = ["b"]
}
`,
			wantErr: domain.ErrUnknownDomain,
		},
		{
			name: "unknown policy",
			hcl: `
domain "a" { path = "/a" }
grid {
  policy = "sometimes"
}
`,
			wantMsg: "unknown validity policy",
		},
		{
			name: "target attribute not known",
			hcl: `
experiment "x" {
  target_attribute = "temporality"
}
grid {}
`,
			wantMsg: "invalid experiment",
		},
		{
			name: "bad validity tag",
			hcl: `
domain "a" { path = "/a" }
validity "maybe" {
  model   = "/models/m"
  domains = ["a"]
}
grid {}
`,
			wantMsg: "validity rule",
		},
		{
			name: "validity rule names unknown domain",
			hcl: `
domain "sharp" { path = "/sharp" }
training "sharp" {
  domains = ["sharp"]
  model   = "/models/sharp"
}
validity "not_meaningful" {
  model   = "/models/sharp"
  domains = ["shrp"]
}
grid {}
`,
			wantErr: domain.ErrUnknownDomain,
		},
		{
			name: "validity rule names unknown model",
			hcl: `
domain "sharp" { path = "/sharp" }
training "sharp" {
  domains = ["sharp"]
  model   = "/models/sharp"
}
validity "not_meaningful" {
  model   = "/models/typo"
  domains = ["sharp"]
}
grid {}
`,
			wantErr: domain.ErrUnknownModel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, map[string]string{"main.hcl": tc.hcl})
			cfg := app.DefaultConfig()
			cfg.ExperimentPath = dir
			cfg.OutputDir = filepath.Join(dir, "out")

			_, err := app.NewApp(&testutil.SafeBuffer{}, &cfg, hcl_adapter.NewLoader())
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestNewApp_ValidityRulesOverridePolicy(t *testing.T) {
	hcl := `
domain "a" { path = "/a" }
domain "b" { path = "/b" }
training "a" {
  domains = ["a"]
  model   = "/models/a"
}
grid {
  models = ["/models/a", "/models/unregistered"]
}
validity "not_meaningful" {
  model   = "/models/a"
  domains = ["b"]
}
validity "not_valid" {
  model   = "/models/unregistered"
  domains = ["b"]
}
`
	a, _ := newTestApp(t, hcl, nil)

	pairs := a.Pairs()
	require.Len(t, pairs, 4)
	assert.Equal(t, domain.Valid, pairs[0].Validity)
	assert.Equal(t, domain.NotMeaningful, pairs[1].Validity)
	assert.Equal(t, domain.Valid, pairs[2].Validity)
	assert.Equal(t, domain.ModelArtifact("/models/unregistered"), pairs[3].Model)
	assert.Equal(t, domain.NotValid, pairs[3].Validity, "rules may tag models that are only listed in the grid")
}

func TestPlan(t *testing.T) {
	hcl := `
domain "a" { path = "/a" }
training "a" {
  domains = ["a"]
  model   = "/models/a"
}
grid {
  models = ["/models/a", "/models/orphan"]
}
`
	a, _ := newTestApp(t, hcl, nil)

	var out strings.Builder
	require.NoError(t, a.Plan(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TRAINED ON")
	assert.Contains(t, lines[1], "--train-dir a")
	assert.Contains(t, lines[2], "unrunnable")
}

func TestExampleExperiment(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.ExperimentPath = filepath.Join("..", "..", "examples", "polarity_feda")
	cfg.OutputDir = t.TempDir()

	a, err := app.NewApp(&testutil.SafeBuffer{}, &cfg, hcl_adapter.NewLoader())
	require.NoError(t, err)

	counts := grid.Count(a.Pairs())
	assert.Len(t, a.Pairs(), 48)
	assert.Equal(t, 6, counts[domain.NotValid])
	assert.Equal(t, 6, counts[domain.NotMeaningful])
	assert.Equal(t, 36, counts[domain.Valid])
}
