package graph

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/fsutil"
)

// Loader produces a project graph for a path.
type Loader interface {
	Load(ctx context.Context, path string) (*Graph, error)
}

// WorkspaceLoader is a minimal Loader that discovers the workspace and
// project bundles on disk. It resolves enough of the graph for build-tool
// invocation (workspace location, scheme and target names) without
// consulting a generator.
type WorkspaceLoader struct{}

// NewWorkspaceLoader returns the filesystem-backed graph loader.
func NewWorkspaceLoader() *WorkspaceLoader {
	return &WorkspaceLoader{}
}

// Load implements Loader.
func (l *WorkspaceLoader) Load(ctx context.Context, path string) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading project graph from disk.", "path", path)

	workspaces, err := fsutil.FindDirsByExtension(path, ".xcworkspace")
	if err != nil {
		return nil, fmt.Errorf("failed to scan for workspaces: %w", err)
	}
	if len(workspaces) == 0 {
		return nil, fmt.Errorf("no workspace found at %s", path)
	}
	if len(workspaces) > 1 {
		return nil, fmt.Errorf("multiple workspaces found at %s, cannot choose one", path)
	}
	workspacePath := workspaces[0]

	projects, err := fsutil.FindDirsByExtension(path, ".xcodeproj")
	if err != nil {
		return nil, fmt.Errorf("failed to scan for projects: %w", err)
	}

	g := &Graph{
		Name:          bundleName(workspacePath),
		Path:          path,
		WorkspacePath: workspacePath,
	}
	for _, projectPath := range projects {
		name := bundleName(projectPath)

		// Shared scheme files inside the project bundle name the schemes.
		// Without them the best available shape is one default scheme per
		// project, testable against its conventionally named unit test
		// bundle.
		schemeNames, err := sharedSchemeNames(projectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan for shared schemes: %w", err)
		}
		if len(schemeNames) == 0 {
			schemeNames = []string{name}
		}

		project := &Project{Name: name, Path: projectPath}
		for _, schemeName := range schemeNames {
			project.Schemes = append(project.Schemes, &Scheme{
				Name:         schemeName,
				BuildTargets: []string{schemeName},
				TestTargets:  []string{schemeName + "Tests"},
			})
			project.Targets = append(project.Targets,
				&Target{Name: schemeName, Platform: "ios", SDK: "iphoneos"},
				&Target{Name: schemeName + "Tests", Platform: "ios", SDK: "iphonesimulator", Simulated: true},
			)
		}
		g.Projects = append(g.Projects, project)
	}

	logger.Debug("Project graph loaded.", "workspace", g.WorkspacePath, "projects", len(g.Projects))
	return g, nil
}

// sharedSchemeNames lists the scheme files shared inside a project bundle,
// in stable name order.
func sharedSchemeNames(projectPath string) ([]string, error) {
	files, err := fsutil.FindFilesByExtension(projectPath, ".xcscheme")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, bundleName(file))
	}
	sort.Strings(names)
	return names, nil
}

func bundleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
