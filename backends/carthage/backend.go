package carthage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lm2s/tuist/internal/artifact"
	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
	"github.com/lm2s/tuist/internal/system"
)

// Backend is the Carthage fetch-and-build implementation.
type Backend struct {
	runner system.Runner
}

// FetchBuild implements registry.FetchBuildFn.
func (b *Backend) FetchBuild(ctx context.Context, deps []manifest.Dependency, opts registry.FetchBuildOptions) ([]artifact.Artifact, error) {
	logger := ctxlog.FromContext(ctx)

	workDir := filepath.Join(opts.ProjectPath, "Tuist", ".build", "carthage")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	cartfilePath := filepath.Join(workDir, "Cartfile")
	if err := os.WriteFile(cartfilePath, []byte(renderCartfile(deps)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write Cartfile: %w", err)
	}
	logger.Debug("Cartfile written.", "path", cartfilePath, "entries", len(deps))

	subcommand := "bootstrap"
	if opts.Update {
		subcommand = "update"
	}
	args := []string{subcommand, "--use-xcframeworks", "--cache-builds"}
	if platforms := collectPlatforms(deps); len(platforms) > 0 {
		args = append(args, "--platform", strings.Join(platforms, ","))
	}
	if _, err := b.runner.Run(ctx, system.Command{
		Name: "carthage",
		Args: args,
		Dir:  workDir,
	}); err != nil {
		return nil, fmt.Errorf("carthage %s failed: %w", subcommand, err)
	}

	buildDir := filepath.Join(workDir, "Carthage", "Build")
	var artifacts []artifact.Artifact
	for _, dep := range deps {
		product := filepath.Join(buildDir, dep.Name+".xcframework")
		if _, err := os.Stat(product); err != nil {
			return nil, fmt.Errorf("dependency %s has no build product at %s: %w", dep.Name, product, err)
		}
		// An xcframework bundles every platform slice; the cache records it
		// once per declared platform so lookups stay keyed by name+platform.
		for _, platform := range dep.Platforms {
			artifacts = append(artifacts, artifact.Artifact{
				Name:     dep.Name,
				Platform: platform,
				Path:     product,
			})
		}
	}
	return artifacts, nil
}

// renderCartfile writes one Cartfile line per declaration.
func renderCartfile(deps []manifest.Dependency) string {
	var sb strings.Builder
	for _, dep := range deps {
		sb.WriteString(renderCartfileLine(dep))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderCartfileLine(dep manifest.Dependency) string {
	var origin string
	switch dep.Source.Kind {
	case manifest.SourceRegistry:
		origin = fmt.Sprintf("github %q", dep.Source.URL)
	case manifest.SourceLocal:
		return fmt.Sprintf("git %q", dep.Source.Path)
	default:
		origin = fmt.Sprintf("git %q", dep.Source.URL)
	}

	switch {
	case dep.Requirement.Branch != "":
		return fmt.Sprintf("%s %q", origin, dep.Requirement.Branch)
	case dep.Requirement.Revision != "":
		return fmt.Sprintf("%s %q", origin, dep.Requirement.Revision)
	default:
		return fmt.Sprintf("%s %s", origin, dep.Requirement.Raw)
	}
}

// collectPlatforms unions the declared platforms across dependencies.
func collectPlatforms(deps []manifest.Dependency) []string {
	seen := make(map[string]struct{})
	for _, dep := range deps {
		for _, platform := range dep.Platforms {
			seen[platform] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for platform := range seen {
		out = append(out, platform)
	}
	sort.Strings(out)
	return out
}
