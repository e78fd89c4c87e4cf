// Package carthage implements the Carthage package-manager backend. It
// writes a Cartfile for the declared dependencies, runs a bootstrap build
// with xcframework output, and maps the build products to cacheable
// artifacts.
package carthage

import (
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
	"github.com/lm2s/tuist/internal/system"
)

// Module implements the registry.Module interface for the Carthage backend.
type Module struct {
	Runner system.Runner
}

// Register registers the backend's fetch-and-build handler with the central
// registry.
func (m *Module) Register(r *registry.Registry) {
	backend := &Backend{runner: m.Runner}
	r.RegisterBackend(&registry.RegisteredBackend{
		Manager:    manifest.ManagerCarthage,
		FetchBuild: backend.FetchBuild,
	})
}
