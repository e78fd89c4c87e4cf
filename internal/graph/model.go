// Package graph models a loaded project graph: the workspace, its projects,
// and the schemes and targets they declare. The runner never inspects the
// graph directly; it goes through the Inspector so tests can substitute the
// whole structure.
package graph

// Graph is the loaded representation of a workspace and its projects.
type Graph struct {
	// Name of the workspace.
	Name string
	// Path is the directory the graph was loaded from.
	Path string
	// WorkspacePath is the .xcworkspace bundle used as the top-level unit
	// for build-tool invocations.
	WorkspacePath string
	Projects      []*Project
}

// Project is one buildable project inside the workspace.
type Project struct {
	Name    string
	Path    string
	Schemes []*Scheme
	Targets []*Target
}

// Scheme is a named, orderable unit of buildable or testable work. Scheme
// order within a graph is declaration order and is never reshuffled.
type Scheme struct {
	Name string
	// BuildTargets and TestTargets name targets of the owning project.
	BuildTargets []string
	TestTargets  []string
}

// Testable reports whether the scheme designates any test targets.
func (s *Scheme) Testable() bool {
	return len(s.TestTargets) > 0
}

// Buildable reports whether the scheme designates any build targets.
func (s *Scheme) Buildable() bool {
	return len(s.BuildTargets) > 0
}

// Target is a single buildable unit with its own build settings.
type Target struct {
	Name string
	// Platform the target builds for, e.g. "ios".
	Platform string
	// SDK passed to the build tool, e.g. "iphoneos" or "iphonesimulator".
	SDK string
	// Settings are extra build settings keyed by name.
	Settings map[string]string
	// Simulated marks targets that run on a simulated device and therefore
	// need a destination resolved before testing.
	Simulated bool
}
