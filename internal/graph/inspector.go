package graph

import (
	"fmt"
	"sort"

	"github.com/lm2s/tuist/internal/xcodebuild"
)

// Inspector answers the build-graph questions the runner needs: which
// schemes are testable, which target a scheme resolves to, where the
// workspace lives, and what arguments a target's build needs.
type Inspector interface {
	TestableSchemes(g *Graph) []*Scheme
	BuildableSchemes(g *Graph) []*Scheme
	TestableTarget(scheme *Scheme, g *Graph) (*Target, error)
	BuildableTarget(scheme *Scheme, g *Graph) (*Target, error)
	WorkspacePath(g *Graph) (string, error)
	// BuildArguments resolves the ordered argument list for a target,
	// optionally narrowed to a single configuration.
	BuildArguments(g *Graph, target *Target, configuration string) ([]xcodebuild.Argument, error)
}

// DefaultInspector is the production Inspector. It is stateless.
type DefaultInspector struct{}

// NewInspector returns the default graph inspector.
func NewInspector() *DefaultInspector {
	return &DefaultInspector{}
}

// TestableSchemes returns the graph's testable schemes in declaration order.
func (i *DefaultInspector) TestableSchemes(g *Graph) []*Scheme {
	var out []*Scheme
	for _, project := range g.Projects {
		for _, scheme := range project.Schemes {
			if scheme.Testable() {
				out = append(out, scheme)
			}
		}
	}
	return out
}

// BuildableSchemes returns the graph's buildable schemes in declaration order.
func (i *DefaultInspector) BuildableSchemes(g *Graph) []*Scheme {
	var out []*Scheme
	for _, project := range g.Projects {
		for _, scheme := range project.Schemes {
			if scheme.Buildable() {
				out = append(out, scheme)
			}
		}
	}
	return out
}

// TestableTarget resolves a scheme's primary test target.
func (i *DefaultInspector) TestableTarget(scheme *Scheme, g *Graph) (*Target, error) {
	if len(scheme.TestTargets) == 0 {
		return nil, fmt.Errorf("scheme '%s' has no test targets", scheme.Name)
	}
	return i.findTarget(g, scheme.TestTargets[0])
}

// BuildableTarget resolves a scheme's primary build target.
func (i *DefaultInspector) BuildableTarget(scheme *Scheme, g *Graph) (*Target, error) {
	if len(scheme.BuildTargets) == 0 {
		return nil, fmt.Errorf("scheme '%s' has no build targets", scheme.Name)
	}
	return i.findTarget(g, scheme.BuildTargets[0])
}

// WorkspacePath returns the workspace bundle location.
func (i *DefaultInspector) WorkspacePath(g *Graph) (string, error) {
	if g.WorkspacePath == "" {
		return "", fmt.Errorf("graph '%s' has no workspace", g.Name)
	}
	return g.WorkspacePath, nil
}

// BuildArguments resolves arguments in a stable order: SDK first, then the
// configuration, then per-target settings sorted by key.
func (i *DefaultInspector) BuildArguments(g *Graph, target *Target, configuration string) ([]xcodebuild.Argument, error) {
	if target == nil {
		return nil, fmt.Errorf("cannot resolve build arguments without a target")
	}

	var args []xcodebuild.Argument
	if target.SDK != "" {
		args = append(args, xcodebuild.SDK(target.SDK))
	}
	if configuration != "" {
		args = append(args, xcodebuild.Configuration(configuration))
	}

	keys := make([]string, 0, len(target.Settings))
	for key := range target.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, xcodebuild.Setting(key, target.Settings[key]))
	}
	return args, nil
}

func (i *DefaultInspector) findTarget(g *Graph, name string) (*Target, error) {
	for _, project := range g.Projects {
		for _, target := range project.Targets {
			if target.Name == name {
				return target, nil
			}
		}
	}
	return nil, fmt.Errorf("target '%s' not found in graph '%s'", name, g.Name)
}
