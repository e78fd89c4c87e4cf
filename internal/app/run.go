package app

import (
	"context"
	"fmt"

	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/graph"
	"github.com/lm2s/tuist/internal/installer"
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/runner"
	"github.com/lm2s/tuist/internal/simulator"
	"github.com/lm2s/tuist/internal/xcodebuild"
)

// Run executes the main application logic based on the provided
// configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandInstall:
		err = a.runInstall(ctx)
	case CommandTest:
		err = a.runTest(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

func (a *App) runInstall(ctx context.Context) error {
	a.logger.Info("🚀 Installing dependencies.", "path", a.config.ProjectPath)

	method := installer.MethodAll()
	if a.config.Manager != "" {
		manager, err := manifest.ParseManager(a.config.Manager)
		if err != nil {
			return err
		}
		method = installer.MethodOnly(manager)
	}

	inst := installer.New(manifest.NewLoader(), a.registry)
	if err := inst.Install(ctx, a.config.ProjectPath, installer.Options{
		Method: method,
		Update: a.config.Update,
	}); err != nil {
		return fmt.Errorf("installation failed: %w", err)
	}

	a.logger.Info("🏁 Dependencies installed.")
	return nil
}

func (a *App) runTest(ctx context.Context) error {
	a.logger.Info("🚀 Running tests.", "path", a.config.ProjectPath)

	testRunner := runner.New(
		nil, // project generation is delegated to external tooling
		graph.NewWorkspaceLoader(),
		graph.NewInspector(),
		simulator.NewLocator(a.system),
		xcodebuild.NewClient(a.system),
	)
	if err := testRunner.Run(ctx, runner.Options{
		Path:          a.config.ProjectPath,
		Scheme:        a.config.Scheme,
		Generate:      a.config.Generate,
		Configuration: a.config.Configuration,
	}); err != nil {
		return fmt.Errorf("test run failed: %w", err)
	}

	return nil
}
