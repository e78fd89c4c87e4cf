package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lm2s/tuist/internal/artifact"
	"github.com/lm2s/tuist/internal/manifest"
)

// FetchBuildOptions carries per-invocation knobs into a backend's
// fetch-and-build step.
type FetchBuildOptions struct {
	// ProjectPath is the root of the project being installed.
	ProjectPath string
	// Update forces the backend to re-resolve dependencies instead of
	// honoring any previously resolved state (lockfiles, checkouts).
	Update bool
}

// FetchBuildFn fetches and builds a manager's declared dependencies and
// returns the resulting artifacts. A returned error aborts the whole
// install run.
type FetchBuildFn func(ctx context.Context, deps []manifest.Dependency, opts FetchBuildOptions) ([]artifact.Artifact, error)

// RegisteredBackend holds the compiled Go parts of a package-manager backend.
type RegisteredBackend struct {
	Manager    manifest.Manager
	FetchBuild FetchBuildFn
}

// RegisterBackend registers a backend for a manager. Registering the same
// manager twice is a programmer error.
func (r *Registry) RegisterBackend(backend *RegisteredBackend) {
	if backend.Manager == "" || backend.FetchBuild == nil {
		panic("backend registration requires a manager and a fetch-build handler")
	}
	if _, exists := r.BackendRegistry[backend.Manager]; exists {
		panic(fmt.Sprintf("backend for manager '%s' already registered", backend.Manager))
	}
	slog.Debug("Registering backend.", "manager", backend.Manager)
	r.BackendRegistry[backend.Manager] = backend
}
