package cli

import (
	"github.com/specialistvlad/adaptgrid/internal/app"
	"github.com/specialistvlad/adaptgrid/internal/hcl_adapter"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [EXPERIMENT_PATH]",
		Short: "Evaluate every runnable pair of the experiment grid",
		Long: `Run loads the experiment, builds the grid and invokes the evaluator once
per runnable pair. Failed evaluations are recorded and the sweep continues.

EXPERIMENT_PATH is a single .hcl file or a directory of .hcl files.`,
		Args: maxOneArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			a, err := app.NewApp(cmd.OutOrStdout(), cfg, hcl_adapter.NewLoader())
			if err != nil {
				return usageError("%v", err)
			}
			if _, err := a.Run(cmd.Context()); err != nil {
				return &ExitError{Code: ExitRuntime, Message: err.Error()}
			}
			return nil
		},
	}
	addExperimentFlags(cmd)
	cmd.Flags().String(flagReport, "", "Path of the YAML report. Defaults to a timestamped file in --output-dir.")
	cmd.Flags().Bool(flagDryRun, false, "Log the parameters of every pair without invoking the evaluator.")
	cmd.Flags().Bool(flagFailOnError, false, "Exit non-zero when any evaluation fails.")
	cmd.Flags().Int(flagHealthcheckPort, 0, "Port for the HTTP health check and progress server. 0 is disabled.")
	return cmd
}

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [EXPERIMENT_PATH]",
		Short: "Print the experiment grid without evaluating it",
		Args:  maxOneArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			a, err := app.NewApp(cmd.ErrOrStderr(), cfg, hcl_adapter.NewLoader())
			if err != nil {
				return usageError("%v", err)
			}
			return a.Plan(cmd.OutOrStdout())
		},
	}
	addExperimentFlags(cmd)
	return cmd
}

func maxOneArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return usageError("expected at most one EXPERIMENT_PATH, got %d", len(args))
	}
	return nil
}
