package installer

import (
	"errors"
	"fmt"

	"github.com/lm2s/tuist/internal/manifest"
)

// ErrUnimplemented is returned when no backend serves the requested method.
// It is fatal and non-retryable: callers must be able to distinguish
// "nothing to do" from "not yet supported", so the installer never silently
// no-ops in this situation.
var ErrUnimplemented = errors.New("installation method not supported")

// BackendError wraps a failure from one backend's fetch-and-build step. It
// is fatal for the run; any cache state written before the failure must not
// be assumed usable.
type BackendError struct {
	Manager manifest.Manager
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Manager, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
