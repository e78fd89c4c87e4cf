// Package installer resolves a project's declared external dependencies,
// dispatches the package-manager backends that fetch and build them, and
// persists the resulting artifacts in the project-local dependencies cache.
package installer

import (
	"fmt"

	"github.com/lm2s/tuist/internal/manifest"
)

type methodKind int

const (
	methodAll methodKind = iota
	methodOnly
)

// Method selects which backends an install invocation dispatches. It is
// supplied per call and never persisted. Artifacts produced under one method
// are not considered valid under another; the installer rewrites the cache
// slots a method covers rather than merging into them.
type Method struct {
	kind methodKind
	only manifest.Manager
}

// MethodAll dispatches every backend that has declarations in the manifest.
func MethodAll() Method {
	return Method{kind: methodAll}
}

// MethodOnly dispatches a single manager's backend; declarations belonging
// to other managers are ignored for the run.
func MethodOnly(manager manifest.Manager) Method {
	return Method{kind: methodOnly, only: manager}
}

// Covers reports whether the method selects the given manager.
func (m Method) Covers(manager manifest.Manager) bool {
	switch m.kind {
	case methodAll:
		return true
	case methodOnly:
		return m.only == manager
	default:
		panic(fmt.Sprintf("unhandled method kind %d", m.kind))
	}
}

// String renders the method for logs and error messages.
func (m Method) String() string {
	switch m.kind {
	case methodAll:
		return "all"
	case methodOnly:
		return string(m.only)
	default:
		panic(fmt.Sprintf("unhandled method kind %d", m.kind))
	}
}
