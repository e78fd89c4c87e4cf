package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is a dependency's version requirement. Semver-style
// requirements carry a parsed constraint; git pins (branch:, revision:)
// carry the raw reference instead.
type Requirement struct {
	// Raw is the requirement string exactly as written in the manifest.
	Raw string
	// Constraint is set for semver requirements, nil for git pins.
	Constraint *semver.Constraints
	// Branch or Revision is set for git pins.
	Branch   string
	Revision string
}

// ParseRequirement validates and normalizes a requirement string.
//
// Accepted forms:
//   - semver constraints: "5.6.0", ">= 5.0, < 6.0", "~> 5.6" (up-to-next-minor)
//   - "branch:main" — track a git branch
//   - "revision:<sha>" — pin a git revision
func ParseRequirement(raw string) (Requirement, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Requirement{}, fmt.Errorf("requirement must not be empty")
	}

	if ref, ok := strings.CutPrefix(trimmed, "branch:"); ok {
		if ref == "" {
			return Requirement{}, fmt.Errorf("branch requirement %q names no branch", raw)
		}
		return Requirement{Raw: raw, Branch: ref}, nil
	}
	if ref, ok := strings.CutPrefix(trimmed, "revision:"); ok {
		if ref == "" {
			return Requirement{}, fmt.Errorf("revision requirement %q names no revision", raw)
		}
		return Requirement{Raw: raw, Revision: ref}, nil
	}

	// "~>" is the pessimistic operator used by CocoaPods and Carthage;
	// Masterminds spells the same range "~".
	normalized := trimmed
	if rest, ok := strings.CutPrefix(trimmed, "~>"); ok {
		normalized = "~" + strings.TrimSpace(rest)
	}

	constraint, err := semver.NewConstraint(normalized)
	if err != nil {
		return Requirement{}, fmt.Errorf("invalid version requirement %q: %w", raw, err)
	}
	return Requirement{Raw: raw, Constraint: constraint}, nil
}

// IsGitPin reports whether the requirement tracks a branch or revision
// instead of a semver range.
func (r Requirement) IsGitPin() bool {
	return r.Branch != "" || r.Revision != ""
}

// Admits reports whether the given version satisfies the requirement. Git
// pins admit nothing; they are resolved by reference, not by version.
func (r Requirement) Admits(version string) bool {
	if r.Constraint == nil {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return r.Constraint.Check(v)
}
