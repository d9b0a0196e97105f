package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is the release reported by the version command. It is set at
// build time with -ldflags "-X".
var Version = "dev"

// Exit codes returned through ExitError.
const (
	ExitRuntime = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Execute parses args and runs the selected command, writing all output
// to outW.
func Execute(ctx context.Context, outW io.Writer, args []string) error {
	root := NewRootCommand(outW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the adaptgrid command tree.
func NewRootCommand(outW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "adaptgrid",
		Short: "AdaptGrid - a cross-domain evaluation grid orchestrator.",
		Long: `AdaptGrid evaluates every model trained on a combination of source
domains against every test domain, tags pairs that test on training data,
and drives an external evaluator once per runnable pair.

Every flag can also be set through an ADAPTGRID_* environment variable,
e.g. ADAPTGRID_LOG_LEVEL=debug. Flags take precedence over the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	root.PersistentFlags().String(flagLogLevel, "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	root.PersistentFlags().String(flagLogFormat, "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(newRunCommand(), newPlanCommand(), newVersionCommand())
	slog.Debug("CLI command tree built.")
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "adaptgrid %s\n", Version)
		},
	}
}
