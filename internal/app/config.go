package app

import (
	"fmt"
	"slices"
)

// Output formats understood by the plan command.
const (
	OutputText = "text"
	OutputJSON = "json"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	outputs    = []string{OutputText, OutputJSON}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModulesPaths []string // directories of extra module type manifests
	NoBuiltins   bool     // skip the embedded module catalog

	LogFormat string
	LogLevel  string
	Output    string
}

// NewConfig validates cfg and fills in defaults for empty fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}

	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level '%s': must be one of %v", cfg.LogLevel, logLevels)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format '%s': must be one of %v", cfg.LogFormat, logFormats)
	}
	if !slices.Contains(outputs, cfg.Output) {
		return nil, fmt.Errorf("invalid output '%s': must be one of %v", cfg.Output, outputs)
	}
	if cfg.NoBuiltins && len(cfg.ModulesPaths) == 0 {
		return nil, fmt.Errorf("no-builtins requires at least one modules-path")
	}

	return &cfg, nil
}
