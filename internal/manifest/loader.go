package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lm2s/tuist/internal/ctxlog"
)

// FileName is the manifest file looked up at the project root.
const FileName = "Dependencies.hcl"

// ErrInvalid marks any failure to parse or validate a manifest. Callers
// match it with errors.Is.
var ErrInvalid = errors.New("invalid dependency manifest")

// Loader reads dependency declarations for a project.
type Loader interface {
	// Load parses the manifest at the project root. A missing manifest file
	// is an error; a project without external dependencies should carry an
	// empty manifest rather than none.
	Load(ctx context.Context, projectPath string) (*Manifest, error)
}

// HCLLoader is the production Loader for Dependencies.hcl files.
type HCLLoader struct{}

// NewLoader returns the HCL-backed manifest loader.
func NewLoader() *HCLLoader {
	return &HCLLoader{}
}

// Load implements Loader.
func (l *HCLLoader) Load(ctx context.Context, projectPath string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	path := filepath.Join(projectPath, FileName)
	logger.Debug("Loading dependency manifest.", "path", path)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrInvalid, path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, diags.Error())
	}

	var file manifestFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, diags.Error())
	}

	m := &Manifest{Path: path}
	seen := make(map[string]struct{})
	for _, block := range file.Dependencies {
		dep, err := translateDependency(block)
		if err != nil {
			return nil, fmt.Errorf("%w: dependency %q: %v", ErrInvalid, block.Name, err)
		}
		if _, dup := seen[dep.Name]; dup {
			return nil, fmt.Errorf("%w: dependency %q declared more than once", ErrInvalid, dep.Name)
		}
		seen[dep.Name] = struct{}{}
		m.Dependencies = append(m.Dependencies, dep)
	}

	logger.Debug("Dependency manifest loaded.", "dependencies", len(m.Dependencies))
	return m, nil
}

// translateDependency converts a raw HCL block into the validated model.
func translateDependency(block *dependencyBlock) (Dependency, error) {
	if block.Name == "" {
		return Dependency{}, fmt.Errorf("name must not be empty")
	}

	manager, err := ParseManager(block.Manager)
	if err != nil {
		return Dependency{}, err
	}

	source, err := translateSource(block)
	if err != nil {
		return Dependency{}, err
	}

	var requirement Requirement
	if source.Kind != SourceLocal {
		requirement, err = ParseRequirement(block.Requirement)
		if err != nil {
			return Dependency{}, err
		}
	} else if block.Requirement != "" {
		return Dependency{}, fmt.Errorf("local dependencies must not declare a requirement")
	}

	platforms := block.Platforms
	if len(platforms) == 0 {
		platforms = []string{"ios"}
	}
	for _, p := range platforms {
		if strings.TrimSpace(p) == "" {
			return Dependency{}, fmt.Errorf("platforms must not contain empty entries")
		}
	}

	return Dependency{
		Name:        block.Name,
		Manager:     manager,
		Source:      source,
		Requirement: requirement,
		Platforms:   platforms,
	}, nil
}

func translateSource(block *dependencyBlock) (Source, error) {
	switch {
	case block.Source != "" && block.Path != "":
		return Source{}, fmt.Errorf("source and path are mutually exclusive")
	case block.Path != "":
		return Source{Kind: SourceLocal, Path: block.Path}, nil
	case block.Source == "":
		return Source{}, fmt.Errorf("either source or path is required")
	case strings.HasSuffix(block.Source, ".git") || strings.HasPrefix(block.Source, "git@"):
		return Source{Kind: SourceGit, URL: block.Source}, nil
	case strings.Contains(block.Source, "://"):
		return Source{Kind: SourceGit, URL: block.Source}, nil
	default:
		return Source{Kind: SourceRegistry, URL: block.Source}, nil
	}
}
