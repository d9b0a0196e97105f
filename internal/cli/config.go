package cli

import (
	"strings"

	"github.com/specialistvlad/adaptgrid/internal/app"
	"github.com/spf13/cobra"
)

const (
	flagExperiment      = "experiment"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
	flagOutputDir       = "output-dir"
	flagReport          = "report"
	flagVar             = "var"
	flagDryRun          = "dry-run"
	flagFailOnError     = "fail-on-error"
	flagHealthcheckPort = "healthcheck-port"
)

// addExperimentFlags registers the flags shared by run and plan.
func addExperimentFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagExperiment, "e", "", "Path to the experiment file or directory.")
	cmd.Flags().String(flagOutputDir, "eval", "Directory for instance files, the audit log and the report.")
	cmd.Flags().StringToString(flagVar, nil, "Override an experiment variable, e.g. --var data_dir=/data. Repeatable.")
}

// resolveConfig layers defaults, ADAPTGRID_* environment variables and the
// flags the user actually set, then validates the result.
func resolveConfig(cmd *cobra.Command, args []string) (*app.Config, error) {
	cfg := app.DefaultConfig()
	if err := app.LoadEnv(&cfg); err != nil {
		return nil, usageError("%v", err)
	}

	flags := cmd.Flags()
	var err error
	setString := func(name string, dst *string) {
		if err == nil && flags.Changed(name) {
			*dst, err = flags.GetString(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if err == nil && flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, err = flags.GetBool(name)
		}
	}

	setString(flagExperiment, &cfg.ExperimentPath)
	setString(flagLogLevel, &cfg.LogLevel)
	setString(flagLogFormat, &cfg.LogFormat)
	setString(flagOutputDir, &cfg.OutputDir)
	if flags.Lookup(flagReport) != nil {
		setString(flagReport, &cfg.ReportPath)
	}
	setBool(flagDryRun, &cfg.DryRun)
	setBool(flagFailOnError, &cfg.FailOnError)
	if err == nil && flags.Lookup(flagHealthcheckPort) != nil && flags.Changed(flagHealthcheckPort) {
		cfg.HealthcheckPort, err = flags.GetInt(flagHealthcheckPort)
	}
	if err == nil && flags.Changed(flagVar) {
		cfg.Vars, err = flags.GetStringToString(flagVar)
	}
	if err != nil {
		return nil, usageError("%v", err)
	}

	if len(args) > 0 {
		if cfg.ExperimentPath != "" && flags.Changed(flagExperiment) {
			return nil, usageError("experiment path given both as argument and --%s", flagExperiment)
		}
		cfg.ExperimentPath = args[0]
	}
	if cfg.ExperimentPath == "" {
		return nil, usageError("no experiment given: pass EXPERIMENT_PATH, --%s or set %s_EXPERIMENT", flagExperiment, app.EnvPrefix)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError("%v", err)
	}
	return validated, nil
}
