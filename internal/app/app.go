package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/registry"
	"github.com/lm2s/tuist/internal/system"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	system   system.Runner
}

// New is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Every run gets a fresh identifier attached to all of its log records.
func New(outW io.Writer, config *Config, modules ...registry.Module) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW).With("run_id", uuid.NewString())
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	sys := system.NewExecRunner()

	// Create and populate the registry with the compiled-in backends.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(sys)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All backend modules registered.", "count", len(modules))

	// Validate the integrity of the registry. A mismatch between code and
	// the supported manager set is a programmer error.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   config,
		system:   sys,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
