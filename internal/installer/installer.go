package installer

import (
	"context"
	"fmt"

	"github.com/lm2s/tuist/internal/artifact"
	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
)

// Options carries the per-invocation knobs for an install run.
type Options struct {
	// Method selects which backends run.
	Method Method
	// Update forces backends to re-resolve dependencies, ignoring any
	// previously resolved state.
	Update bool
}

// Installer orchestrates a project's dependency installation end to end.
// It owns no state across runs; every Install call is self-contained.
type Installer struct {
	loader   manifest.Loader
	registry *registry.Registry
}

// New constructs an Installer from its collaborators.
func New(loader manifest.Loader, reg *registry.Registry) *Installer {
	return &Installer{loader: loader, registry: reg}
}

// Install loads the project's dependency declarations, dispatches each
// covered backend strictly in sequence, and persists the built artifacts in
// the project's dependencies cache.
//
// The first backend failure aborts the run: a built artifact sitting next to
// a half-installed backend's output is unsafe to use, so there is no
// partial-success continuation. Before any backend runs, every manager the
// method covers must have a registered backend; otherwise the run fails with
// ErrUnimplemented and the cache is left untouched.
func (i *Installer) Install(ctx context.Context, projectPath string, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Install started.", "path", projectPath, "method", opts.Method.String(), "update", opts.Update)

	m, err := i.loader.Load(ctx, projectPath)
	if err != nil {
		return err
	}

	partitions := m.ByManager()

	// Resolve every required backend up front so an unsupported method
	// fails before any side effects.
	type dispatch struct {
		manager manifest.Manager
		deps    []manifest.Dependency
		backend *registry.RegisteredBackend
	}
	var dispatches []dispatch
	for _, manager := range manifest.AllManagers {
		deps := partitions[manager]
		if len(deps) == 0 || !opts.Method.Covers(manager) {
			continue
		}
		backend, ok := i.registry.Backend(manager)
		if !ok {
			return fmt.Errorf("%w: no backend registered for %s (method %s)", ErrUnimplemented, manager, opts.Method.String())
		}
		dispatches = append(dispatches, dispatch{manager: manager, deps: deps, backend: backend})
	}

	if len(dispatches) == 0 {
		logger.Info("No dependencies to install for the requested method.", "method", opts.Method.String())
		return nil
	}

	cache := artifact.NewCache(projectPath)
	for _, d := range dispatches {
		logger.Info("⚙️ Fetching and building dependencies.", "manager", d.manager, "count", len(d.deps))

		artifacts, err := d.backend.FetchBuild(ctx, d.deps, registry.FetchBuildOptions{
			ProjectPath: projectPath,
			Update:      opts.Update,
		})
		if err != nil {
			return &BackendError{Manager: d.manager, Err: err}
		}

		if err := cache.Store(ctx, artifacts); err != nil {
			return &BackendError{Manager: d.manager, Err: err}
		}
		logger.Info("✅ Dependencies installed.", "manager", d.manager, "artifacts", len(artifacts))
	}

	logger.Debug("Install finished.", "backends_run", len(dispatches))
	return nil
}
