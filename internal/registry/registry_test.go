package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lm2s/tuist/internal/artifact"
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/registry"
)

func noopFetchBuild(ctx context.Context, deps []manifest.Dependency, opts registry.FetchBuildOptions) ([]artifact.Artifact, error) {
	return nil, nil
}

func TestRegisterBackend(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.RegisterBackend(&registry.RegisteredBackend{
		Manager:    manifest.ManagerCocoaPods,
		FetchBuild: noopFetchBuild,
	})

	backend, ok := r.Backend(manifest.ManagerCocoaPods)
	require.True(t, ok)
	assert.Equal(t, manifest.ManagerCocoaPods, backend.Manager)

	_, ok = r.Backend(manifest.ManagerCarthage)
	assert.False(t, ok)
}

func TestRegisterBackend_DuplicatePanics(t *testing.T) {
	t.Parallel()

	r := registry.New()
	backend := &registry.RegisteredBackend{
		Manager:    manifest.ManagerCocoaPods,
		FetchBuild: noopFetchBuild,
	}
	r.RegisterBackend(backend)

	assert.PanicsWithValue(t, "backend for manager 'cocoapods' already registered", func() {
		r.RegisterBackend(backend)
	})
}

func TestRegisterBackend_IncompletePanics(t *testing.T) {
	t.Parallel()

	r := registry.New()
	assert.Panics(t, func() {
		r.RegisterBackend(&registry.RegisteredBackend{Manager: manifest.ManagerCocoaPods})
	})
}

func TestManagersFollowDispatchOrder(t *testing.T) {
	t.Parallel()

	r := registry.New()
	// Register out of dispatch order on purpose.
	r.RegisterBackend(&registry.RegisteredBackend{Manager: manifest.ManagerSwiftPM, FetchBuild: noopFetchBuild})
	r.RegisterBackend(&registry.RegisteredBackend{Manager: manifest.ManagerCocoaPods, FetchBuild: noopFetchBuild})

	assert.Equal(t, []manifest.Manager{manifest.ManagerCocoaPods, manifest.ManagerSwiftPM}, r.Managers())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("passes for a well-formed registry", func(t *testing.T) {
		t.Parallel()
		r := registry.New()
		r.RegisterBackend(&registry.RegisteredBackend{Manager: manifest.ManagerCocoaPods, FetchBuild: noopFetchBuild})
		require.NoError(t, r.Validate(context.Background()))
	})

	t.Run("rejects a backend for an unknown manager", func(t *testing.T) {
		t.Parallel()
		r := registry.New()
		r.BackendRegistry["npm"] = &registry.RegisteredBackend{Manager: "npm", FetchBuild: noopFetchBuild}
		err := r.Validate(context.Background())
		require.ErrorContains(t, err, "unknown manager 'npm'")
	})

	t.Run("rejects a mismatched registration key", func(t *testing.T) {
		t.Parallel()
		r := registry.New()
		r.BackendRegistry[manifest.ManagerCarthage] = &registry.RegisteredBackend{
			Manager:    manifest.ManagerCocoaPods,
			FetchBuild: noopFetchBuild,
		}
		err := r.Validate(context.Background())
		require.ErrorContains(t, err, "reports manager 'cocoapods'")
	})
}
