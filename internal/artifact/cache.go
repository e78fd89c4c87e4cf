package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lm2s/tuist/internal/ctxlog"
)

// CacheDirName is the dependencies cache directory, relative to the project
// root. The layout below it is one subdirectory per dependency name, one
// platform directory inside it, and the artifact bundle within:
//
//	Tuist/Dependencies/<name>/<platform>/<Bundle>.framework
//
// The layout is stable across installer invocations so other tooling can
// locate artifacts by name and platform alone.
const CacheDirName = "Tuist/Dependencies"

// Cache persists built artifacts under a project's dependencies directory.
type Cache struct {
	root string
}

// NewCache returns a cache rooted at the given project path.
func NewCache(projectPath string) *Cache {
	return &Cache{root: filepath.Join(projectPath, CacheDirName)}
}

// Root returns the cache directory.
func (c *Cache) Root() string {
	return c.root
}

// SlotPath returns the deterministic cache location for a dependency name
// and platform.
func (c *Cache) SlotPath(name, platform string) string {
	return filepath.Join(c.root, name, platform)
}

// Store copies each artifact into its cache slot, replacing any stale
// artifact occupying the same name+platform key. The slot is swapped in
// whole: a re-install never merges new files into an old bundle.
func (c *Cache) Store(ctx context.Context, artifacts []Artifact) error {
	logger := ctxlog.FromContext(ctx)

	for _, a := range artifacts {
		if err := a.Validate(); err != nil {
			return err
		}
		slot := c.SlotPath(a.Name, a.Platform)
		if err := os.RemoveAll(slot); err != nil {
			return fmt.Errorf("failed to clear cache slot for %s/%s: %w", a.Name, a.Platform, err)
		}
		if err := os.MkdirAll(slot, 0o755); err != nil {
			return fmt.Errorf("failed to create cache slot for %s/%s: %w", a.Name, a.Platform, err)
		}
		dest := filepath.Join(slot, a.CachedName())
		if err := copyTree(a.Path, dest); err != nil {
			return fmt.Errorf("failed to cache artifact %s/%s: %w", a.Name, a.Platform, err)
		}
		logger.Debug("Artifact cached.", "name", a.Name, "platform", a.Platform, "path", dest)
	}
	return nil
}

// Contains reports whether a cached artifact exists for name+platform.
func (c *Cache) Contains(name, platform string) bool {
	entries, err := os.ReadDir(c.SlotPath(name, platform))
	return err == nil && len(entries) > 0
}

// copyTree copies a file or directory tree from src to dest.
func copyTree(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return copyFile(src, dest, info.Mode())
	}

	if err := os.MkdirAll(dest, info.Mode()); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, mode)
}
