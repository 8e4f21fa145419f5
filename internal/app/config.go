package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// BlueprintPaths are .hcl files or directories searched for them.
	BlueprintPaths []string `validate:"required,min=1,dive,required"`
	// WorkspacePath is the YAML workspace model.
	WorkspacePath string `validate:"required"`
	// ProjectDir overrides the workspace's project_dir.
	ProjectDir string

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	OverrideKinds  []string `validate:"dive,required"`
	Only           string
	DryRun         bool
	KeepUnreadable bool
	ReportFormat   string `validate:"oneof=text json"`
}

var validate = validator.New()

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "text"
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
