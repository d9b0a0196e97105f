// Package evaluator provides runner.Evaluator implementations: a subprocess
// evaluator that appends the run parameters to a configured command line,
// and a dry-run evaluator that only logs them.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/specialistvlad/adaptgrid/internal/ctxlog"
	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// ErrNoCommand is returned when a Command evaluator has nothing to execute.
var ErrNoCommand = errors.New("evaluator command is empty")

// Command runs an external evaluation process once per pair. The run
// parameters are appended to Argv.
type Command struct {
	argv   []string
	env    []string
	stdout io.Writer
	stderr io.Writer
}

// CommandOption configures a Command.
type CommandOption func(*Command)

// WithOutput sends the process output to the given writers.
func WithOutput(stdout, stderr io.Writer) CommandOption {
	return func(c *Command) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithEnv appends KEY=VALUE entries to the inherited environment.
func WithEnv(env ...string) CommandOption {
	return func(c *Command) {
		c.env = append(c.env, env...)
	}
}

// NewCommand returns an evaluator running argv followed by the run
// parameters.
func NewCommand(argv []string, opts ...CommandOption) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrNoCommand
	}
	c := &Command{argv: append([]string(nil), argv...)}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Evaluate runs the process and waits for it. A non-zero exit status is an
// error.
func (c *Command) Evaluate(ctx context.Context, params domain.RunParameters) error {
	logger := ctxlog.FromContext(ctx)

	args := make([]string, 0, len(c.argv)-1+len(params))
	args = append(args, c.argv[1:]...)
	args = append(args, params...)

	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	if len(c.env) > 0 {
		cmd.Env = append(cmd.Environ(), c.env...)
	}

	logger.Debug("Starting evaluator process.", "path", c.argv[0], "args", len(args))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("evaluator process %s: %w", c.argv[0], err)
	}
	return nil
}

// DryRun logs the parameters it would have evaluated and always succeeds.
type DryRun struct{}

// Evaluate implements runner.Evaluator.
func (DryRun) Evaluate(ctx context.Context, params domain.RunParameters) error {
	ctxlog.FromContext(ctx).Info("Dry run, evaluator not invoked.", "tokens", len(params))
	return nil
}
