package registry

import (
	"github.com/lm2s/tuist/internal/manifest"
)

// Module is the interface that all backend modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered package-manager backends for a single
// application instance.
type Registry struct {
	BackendRegistry map[manifest.Manager]*RegisteredBackend
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		BackendRegistry: make(map[manifest.Manager]*RegisteredBackend),
	}
}

// Backend returns the registered backend for a manager, if any.
func (r *Registry) Backend(manager manifest.Manager) (*RegisteredBackend, bool) {
	backend, ok := r.BackendRegistry[manager]
	return backend, ok
}

// Managers returns the managers with a registered backend, in the stable
// dispatch order.
func (r *Registry) Managers() []manifest.Manager {
	var out []manifest.Manager
	for _, m := range manifest.AllManagers {
		if _, ok := r.BackendRegistry[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
