// Package manifest loads and validates a project's dependency manifest.
//
// A project declares its external dependencies in a Dependencies.hcl file at
// the project root. Each declaration names the package, the manager that owns
// it, where to fetch it from, and a version requirement. Declarations are
// immutable after parse; the installer consumes them as-is.
package manifest

import (
	"fmt"
)

// Manager identifies the package-manager backend a dependency belongs to.
type Manager string

const (
	ManagerCocoaPods Manager = "cocoapods"
	ManagerCarthage  Manager = "carthage"
	ManagerSwiftPM   Manager = "swiftpm"
)

// AllManagers lists every supported manager in the stable order the installer
// dispatches them.
var AllManagers = []Manager{ManagerCocoaPods, ManagerCarthage, ManagerSwiftPM}

// ParseManager converts a manifest string into a Manager, rejecting unknowns.
func ParseManager(s string) (Manager, error) {
	switch Manager(s) {
	case ManagerCocoaPods, ManagerCarthage, ManagerSwiftPM:
		return Manager(s), nil
	}
	return "", fmt.Errorf("unknown manager %q (supported: cocoapods, carthage, swiftpm)", s)
}

// SourceKind distinguishes where a dependency's code comes from.
type SourceKind string

const (
	SourceRegistry SourceKind = "registry"
	SourceGit      SourceKind = "git"
	SourceLocal    SourceKind = "local"
)

// Source is a dependency's origin: a registry coordinate, a git URL, or a
// path on disk relative to the project root.
type Source struct {
	Kind SourceKind
	// URL holds the git URL or registry coordinate; Path holds the local
	// path. Exactly one of the two is set, matching Kind.
	URL  string
	Path string
}

// Dependency is one declared external dependency.
type Dependency struct {
	Name        string
	Manager     Manager
	Source      Source
	Requirement Requirement
	Platforms   []string
}

// Manifest is the parsed set of a project's dependency declarations.
type Manifest struct {
	Path         string
	Dependencies []Dependency
}

// ByManager partitions the declarations by their owning manager. Order within
// each partition follows declaration order.
func (m *Manifest) ByManager() map[Manager][]Dependency {
	out := make(map[Manager][]Dependency)
	for _, dep := range m.Dependencies {
		out[dep.Manager] = append(out[dep.Manager], dep)
	}
	return out
}
