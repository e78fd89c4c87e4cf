// Package cocoapods implements the CocoaPods package-manager backend. It
// writes a Podfile for the declared dependencies, runs `pod install`, and
// maps the resolved pods to cacheable artifacts. Resolution is verified
// against the Podfile.lock the tool leaves behind.
package cocoapods

import (
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
	"github.com/lm2s/tuist/internal/system"
)

// Module implements the registry.Module interface. It is the entrypoint for
// the CocoaPods backend.
type Module struct {
	Runner system.Runner
}

// Register registers the backend's fetch-and-build handler with the central
// registry.
func (m *Module) Register(r *registry.Registry) {
	backend := &Backend{runner: m.Runner}
	r.RegisterBackend(&registry.RegisteredBackend{
		Manager:    manifest.ManagerCocoaPods,
		FetchBuild: backend.FetchBuild,
	})
}
