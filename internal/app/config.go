package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment variables read by LoadEnv.
const EnvPrefix = "ADAPTGRID"

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ExperimentPath string            `envconfig:"EXPERIMENT" validate:"required"`
	Vars           map[string]string `ignored:"true"`

	OutputDir  string `envconfig:"OUTPUT_DIR" validate:"required"`
	ReportPath string `envconfig:"REPORT"`

	LogFormat       string `envconfig:"LOG_FORMAT" validate:"oneof=text json"`
	LogLevel        string `envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	HealthcheckPort int    `envconfig:"HEALTHCHECK_PORT" validate:"gte=0,lte=65535"`

	DryRun      bool `envconfig:"DRY_RUN"`
	FailOnError bool `envconfig:"FAIL_ON_ERROR"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		OutputDir: "eval",
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// LoadEnv overrides fields of cfg from ADAPTGRID_* environment variables.
// Unset variables leave the field untouched.
func LoadEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}
	return nil
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
