package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/psetgo/internal/ctxlog"
	"github.com/specialistvlad/psetgo/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW. The registry is built from the embedded catalog
// (unless disabled) and every configured manifest directory; a broken
// manifest is a startup error.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if !cfg.NoBuiltins {
		if err := reg.LoadBuiltins(ctx); err != nil {
			return nil, fmt.Errorf("failed to load builtin module types: %w", err)
		}
	}
	for _, dir := range cfg.ModulesPaths {
		if err := reg.LoadManifests(ctx, dir); err != nil {
			return nil, err
		}
	}
	logger.Debug("Module registry ready.", "types", reg.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// withLogger attaches the application logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
