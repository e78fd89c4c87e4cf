// Package swiftpm implements the Swift Package Manager backend. It writes a
// package manifest covering the declared dependencies, resolves and builds
// them in release configuration, and maps the build products to cacheable
// artifacts.
package swiftpm

import (
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
	"github.com/lm2s/tuist/internal/system"
)

// Module implements the registry.Module interface for the SwiftPM backend.
type Module struct {
	Runner system.Runner
}

// Register registers the backend's fetch-and-build handler with the central
// registry.
func (m *Module) Register(r *registry.Registry) {
	backend := &Backend{runner: m.Runner}
	r.RegisterBackend(&registry.RegisteredBackend{
		Manager:    manifest.ManagerSwiftPM,
		FetchBuild: backend.FetchBuild,
	})
}
