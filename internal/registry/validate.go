package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/manifest"
)

// Validate performs a strict parity check between the registered backends
// and the closed set of supported managers. Adding a manager to the manifest
// model without compiling in its backend is caught here at startup rather
// than at dispatch time.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	for manager, backend := range r.BackendRegistry {
		known := false
		for _, m := range manifest.AllManagers {
			if manager == m {
				known = true
				break
			}
		}
		if !known {
			errs = append(errs, fmt.Sprintf("backend registered for unknown manager '%s'", manager))
		}
		if backend.Manager != manager {
			errs = append(errs, fmt.Sprintf("backend registered under '%s' reports manager '%s'", manager, backend.Manager))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "backends", len(r.BackendRegistry))
	return nil
}
