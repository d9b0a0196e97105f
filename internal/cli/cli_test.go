package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/adaptgrid/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const experiment = `
variable "root" {
  default = "/data"
}

domain "sharp" {
  path = "${var.root}/sharp"
}

training "sharp" {
  domains = ["sharp"]
  model   = "/models/sharp_feda"
}

grid {}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &testutil.SafeBuffer{}
	err := Execute(context.Background(), out, args)
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	return exitErr.Code
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "adaptgrid dev\n", out)
}

func TestHelpIsNotAnError(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "plan")
}

func TestPlan(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": experiment})

	out, err := execute(t, "plan", dir, "--var", "root=/mnt", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "/models/sharp_feda")
	assert.Contains(t, out, "--test-dir /mnt/sharp")
}

func TestRunDryRun(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": experiment})
	outDir := filepath.Join(dir, "out")
	reportPath := filepath.Join(dir, "report.yaml")

	out, err := execute(t, "run", "-e", dir, "--dry-run", "--output-dir", outDir, "--report", reportPath, "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"msg":"Dry run, evaluator not invoked."`)
	assert.FileExists(t, reportPath)
}

func TestUsageErrors(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": experiment})

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "no experiment", args: []string{"run"}, wantMsg: "no experiment given"},
		{name: "unknown flag", args: []string{"run", "--bogus"}, wantMsg: "bogus"},
		{name: "too many args", args: []string{"plan", "a", "b"}, wantMsg: "at most one"},
		{name: "bad log level", args: []string{"plan", dir, "--log-level", "loud"}, wantMsg: "LogLevel"},
		{name: "both argument and flag", args: []string{"plan", dir, "-e", dir}, wantMsg: "both"},
		{name: "missing experiment file", args: []string{"plan", filepath.Join(dir, "nope")}, wantMsg: "failed to load experiment"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsage, exitCode(t, err))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestRunWithoutEvaluatorIsRuntimeError(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": experiment})

	_, err := execute(t, "run", dir, "--output-dir", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Equal(t, ExitRuntime, exitCode(t, err))
}

func TestResolveConfigPrecedence(t *testing.T) {
	t.Setenv("ADAPTGRID_LOG_LEVEL", "debug")
	t.Setenv("ADAPTGRID_OUTPUT_DIR", "/from/env")
	t.Setenv("ADAPTGRID_EXPERIMENT", "/env/experiment")

	var got struct {
		level, output, experiment string
	}
	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			got.level, got.output, got.experiment = cfg.LogLevel, cfg.OutputDir, cfg.ExperimentPath
			return nil
		},
	}
	cmd.Flags().String(flagLogLevel, "info", "")
	cmd.Flags().String(flagLogFormat, "text", "")
	addExperimentFlags(cmd)
	cmd.SetArgs([]string{"--output-dir", "/from/flag"})
	cmd.SetOut(&strings.Builder{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "debug", got.level, "environment overrides defaults")
	assert.Equal(t, "/from/flag", got.output, "flags override environment")
	assert.Equal(t, "/env/experiment", got.experiment)
}
