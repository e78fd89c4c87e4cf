package testutil

import (
	"context"
	"sync"

	"github.com/lm2s/tuist/internal/artifact"
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
)

// FetchBuildCall records one dispatch a fake backend received.
type FetchBuildCall struct {
	Manager      manifest.Manager
	Dependencies []manifest.Dependency
	Options      registry.FetchBuildOptions
}

// FakeBackendModule registers a scripted backend for a manager and records
// every fetch-and-build dispatch it receives.
type FakeBackendModule struct {
	Manager manifest.Manager
	// Artifacts returned on success.
	Artifacts []artifact.Artifact
	// Err, when set, fails every dispatch.
	Err error

	mu    sync.Mutex
	calls []FetchBuildCall
}

// Register implements registry.Module.
func (m *FakeBackendModule) Register(r *registry.Registry) {
	r.RegisterBackend(&registry.RegisteredBackend{
		Manager: m.Manager,
		FetchBuild: func(ctx context.Context, deps []manifest.Dependency, opts registry.FetchBuildOptions) ([]artifact.Artifact, error) {
			m.mu.Lock()
			m.calls = append(m.calls, FetchBuildCall{Manager: m.Manager, Dependencies: deps, Options: opts})
			m.mu.Unlock()
			if m.Err != nil {
				return nil, m.Err
			}
			return m.Artifacts, nil
		},
	})
}

// Calls returns the recorded dispatches in order.
func (m *FakeBackendModule) Calls() []FetchBuildCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]FetchBuildCall, len(m.calls))
	copy(out, m.calls)
	return out
}
