package swiftpm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lm2s/tuist/internal/artifact"
	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
	"github.com/lm2s/tuist/internal/system"
)

// Backend is the Swift Package Manager fetch-and-build implementation.
type Backend struct {
	runner system.Runner
}

// FetchBuild implements registry.FetchBuildFn.
func (b *Backend) FetchBuild(ctx context.Context, deps []manifest.Dependency, opts registry.FetchBuildOptions) ([]artifact.Artifact, error) {
	logger := ctxlog.FromContext(ctx)

	workDir := filepath.Join(opts.ProjectPath, "Tuist", ".build", "swiftpm")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	packagePath := filepath.Join(workDir, "Package.swift")
	packageManifest, err := renderPackageManifest(deps)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(packagePath, []byte(packageManifest), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write Package.swift: %w", err)
	}
	logger.Debug("Package.swift written.", "path", packagePath, "packages", len(deps))

	if opts.Update {
		if _, err := b.runner.Run(ctx, system.Command{
			Name: "swift",
			Args: []string{"package", "update"},
			Dir:  workDir,
		}); err != nil {
			return nil, fmt.Errorf("swift package update failed: %w", err)
		}
	} else {
		if _, err := b.runner.Run(ctx, system.Command{
			Name: "swift",
			Args: []string{"package", "resolve"},
			Dir:  workDir,
		}); err != nil {
			return nil, fmt.Errorf("swift package resolve failed: %w", err)
		}
	}

	if _, err := b.runner.Run(ctx, system.Command{
		Name: "swift",
		Args: []string{"build", "-c", "release"},
		Dir:  workDir,
	}); err != nil {
		return nil, fmt.Errorf("swift build failed: %w", err)
	}

	checkoutsDir := filepath.Join(workDir, ".build", "checkouts")
	var artifacts []artifact.Artifact
	for _, dep := range deps {
		product := filepath.Join(checkoutsDir, dep.Name)
		if _, err := os.Stat(product); err != nil {
			return nil, fmt.Errorf("package %s has no checkout at %s: %w", dep.Name, product, err)
		}
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

// renderPackageManifest writes a Package.swift whose dependencies mirror the
// declarations.
func renderPackageManifest(deps []manifest.Dependency) (string, error) {
	var sb strings.Builder
	sb.WriteString("// swift-tools-version:5.7\n")
	sb.WriteString("import PackageDescription\n\n")
	sb.WriteString("let package = Package(\n")
	sb.WriteString("    name: \"Dependencies\",\n")
	sb.WriteString("    dependencies: [\n")
	for _, dep := range deps {
		line, err := renderPackageDependency(dep)
		if err != nil {
			return "", err
		}
		sb.WriteString("        ")
		sb.WriteString(line)
		sb.WriteString(",\n")
	}
	sb.WriteString("    ]\n")
	sb.WriteString(")\n")
	return sb.String(), nil
}

func renderPackageDependency(dep manifest.Dependency) (string, error) {
	if dep.Source.Kind == manifest.SourceLocal {
		return fmt.Sprintf(".package(path: %q)", dep.Source.Path), nil
	}

	url := dep.Source.URL
	switch {
	case dep.Requirement.Branch != "":
		return fmt.Sprintf(".package(url: %q, branch: %q)", url, dep.Requirement.Branch), nil
	case dep.Requirement.Revision != "":
		return fmt.Sprintf(".package(url: %q, revision: %q)", url, dep.Requirement.Revision), nil
	}

	lower := lowerBound(dep.Requirement.Raw)
	if lower == "" {
		return "", fmt.Errorf("cannot derive a lower bound from requirement %q for package %s", dep.Requirement.Raw, dep.Name)
	}
	return fmt.Sprintf(".package(url: %q, from: %q)", url, lower), nil
}

// lowerBound extracts the base version from a requirement string, e.g.
// "~> 5.6" yields "5.6.0" and ">= 1.2.3" yields "1.2.3".
func lowerBound(raw string) string {
	version := strings.TrimLeft(strings.TrimSpace(raw), "~><=^ ")
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	for strings.Count(version, ".") < 2 {
		version += ".0"
	}
	return version
}
