// Package artifact defines built dependency artifacts and the project-local
// cache they are persisted in.
package artifact

import (
	"fmt"
	"path/filepath"
)

// Artifact is a compiled binary module produced from one dependency
// declaration for one platform. It is created by a successful install run,
// replaced wholesale on re-install, and never mutated in place.
type Artifact struct {
	// Name of the dependency the artifact was built from.
	Name string
	// Platform the artifact targets, e.g. "ios" or "macos".
	Platform string
	// Path is the build product on disk, a framework-style directory.
	Path string
}

// Validate checks that the artifact carries everything the cache needs to
// key it deterministically.
func (a Artifact) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("artifact has no name")
	}
	if a.Platform == "" {
		return fmt.Errorf("artifact %q has no platform", a.Name)
	}
	if a.Path == "" {
		return fmt.Errorf("artifact %q has no build product path", a.Name)
	}
	return nil
}

// CachedName is the artifact's directory name inside its cache slot,
// preserving the bundle extension of the build product.
func (a Artifact) CachedName() string {
	return filepath.Base(a.Path)
}
