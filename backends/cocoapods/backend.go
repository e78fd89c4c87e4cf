package cocoapods

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

// Backend is the CocoaPods fetch-and-build implementation.
type Backend struct {
	runner system.Runner
}

// FetchBuild implements registry.FetchBuildFn.
func (b *Backend) FetchBuild(ctx context.Context, deps []manifest.Dependency, opts registry.FetchBuildOptions) ([]artifact.Artifact, error) {
	logger := ctxlog.FromContext(ctx)

	workDir := filepath.Join(opts.ProjectPath, "Tuist", ".build", "cocoapods")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	podfilePath := filepath.Join(workDir, "Podfile")
	if err := os.WriteFile(podfilePath, []byte(renderPodfile(deps)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write Podfile: %w", err)
	}
	logger.Debug("Podfile written.", "path", podfilePath, "pods", len(deps))

	subcommand := "install"
	if opts.Update {
		subcommand = "update"
	}
	if _, err := b.runner.Run(ctx, system.Command{
		Name: "pod",
		Args: []string{subcommand},
		Dir:  workDir,
	}); err != nil {
		return nil, fmt.Errorf("pod %s failed: %w", subcommand, err)
	}

	lock, err := ParseLockfile(filepath.Join(workDir, "Podfile.lock"))
	if err != nil {
		return nil, err
	}

	var artifacts []artifact.Artifact
	for _, dep := range deps {
		resolved, ok := lock.Version(dep.Name)
		if !ok {
			return nil, fmt.Errorf("pod %s missing from Podfile.lock after install", dep.Name)
		}
		if !dep.Requirement.IsGitPin() && dep.Source.Kind != manifest.SourceLocal && !dep.Requirement.Admits(resolved) {
			return nil, fmt.Errorf("pod %s resolved to %s which violates requirement %q", dep.Name, resolved, dep.Requirement.Raw)
		}
		logger.Debug("Pod resolved.", "name", dep.Name, "version", resolved)

		product := filepath.Join(workDir, "Pods", dep.Name)
		if _, err := os.Stat(product); err != nil {
			return nil, fmt.Errorf("pod %s has no build product at %s: %w", dep.Name, product, err)
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

// renderPodfile writes a non-integrating Podfile covering the declarations.
func renderPodfile(deps []manifest.Dependency) string {
	var sb strings.Builder
	sb.WriteString("install! 'cocoapods', integrate_targets: false\n")
	sb.WriteString("platform :ios, '13.0'\n\n")
	sb.WriteString("target 'Dependencies' do\n")
	for _, dep := range deps {
		sb.WriteString("  ")
		sb.WriteString(renderPodLine(dep))
		sb.WriteString("\n")
	}
	sb.WriteString("end\n")
	return sb.String()
}

func renderPodLine(dep manifest.Dependency) string {
	switch {
	case dep.Source.Kind == manifest.SourceLocal:
		return fmt.Sprintf("pod '%s', :path => '%s'", dep.Name, dep.Source.Path)
	case dep.Requirement.Branch != "":
		return fmt.Sprintf("pod '%s', :git => '%s', :branch => '%s'", dep.Name, dep.Source.URL, dep.Requirement.Branch)
	case dep.Requirement.Revision != "":
		return fmt.Sprintf("pod '%s', :git => '%s', :commit => '%s'", dep.Name, dep.Source.URL, dep.Requirement.Revision)
	case dep.Source.Kind == manifest.SourceGit:
		return fmt.Sprintf("pod '%s', :git => '%s'", dep.Name, dep.Source.URL)
	default:
		return fmt.Sprintf("pod '%s', '%s'", dep.Name, dep.Requirement.Raw)
	}
}
