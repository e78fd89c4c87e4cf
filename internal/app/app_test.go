package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lm2s/tuist/internal/app"
	"github.com/lm2s/tuist/internal/artifact"
	"github.com/lm2s/tuist/internal/installer"
	"github.com/lm2s/tuist/internal/manifest"
	"github.com/lm2s/tuist/internal/testutil"
)

// setupProject creates a project directory with a dependency manifest and a
// fake build product the scripted backend can hand back as an artifact.
func setupProject(t *testing.T, manifestBody string) (string, string) {
	t.Helper()

	projectPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectPath, manifest.FileName), []byte(manifestBody), 0o644))

	productPath := filepath.Join(projectPath, "product")
	require.NoError(t, os.MkdirAll(productPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(productPath, "binary"), []byte("payload"), 0o644))

	return projectPath, productPath
}

func TestAppRun_InstallDispatchesAndCaches(t *testing.T) {
	t.Parallel()

	projectPath, productPath := setupProject(t, `
dependency "Alamofire" {
  manager     = "cocoapods"
  source      = "Alamofire"
  requirement = "~> 5.6"
  platforms   = ["ios"]
}
`)

	pods := &testutil.FakeBackendModule{
		Manager:   manifest.ManagerCocoaPods,
		Artifacts: []artifact.Artifact{{Name: "Alamofire", Platform: "ios", Path: productPath}},
	}
	config, err := app.NewConfig(app.Config{
		Command:     app.CommandInstall,
		ProjectPath: projectPath,
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	testApp, logBuffer := app.SetupAppTest(t, config, pods)
	require.NoError(t, testApp.Run(context.Background()))

	calls := pods.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Alamofire", calls[0].Dependencies[0].Name)
	assert.Equal(t, projectPath, calls[0].Options.ProjectPath)
	assert.False(t, calls[0].Options.Update)

	cached := filepath.Join(projectPath, "Tuist", "Dependencies", "Alamofire", "ios", "product", "binary")
	_, statErr := os.Stat(cached)
	assert.NoError(t, statErr, "artifact must land in the dependencies cache")

	assert.Contains(t, logBuffer.String(), "Dependencies installed.")
}

func TestAppRun_InstallSingleManagerSkipsOthers(t *testing.T) {
	t.Parallel()

	projectPath, productPath := setupProject(t, `
dependency "Alamofire" {
  manager     = "cocoapods"
  source      = "Alamofire"
  requirement = "~> 5.6"
}

dependency "RxSwift" {
  manager     = "carthage"
  source      = "ReactiveX/RxSwift"
  requirement = "~> 6.5"
}
`)

	pods := &testutil.FakeBackendModule{
		Manager:   manifest.ManagerCocoaPods,
		Artifacts: []artifact.Artifact{{Name: "Alamofire", Platform: "ios", Path: productPath}},
	}
	carthage := &testutil.FakeBackendModule{Manager: manifest.ManagerCarthage}

	config, err := app.NewConfig(app.Config{
		Command:     app.CommandInstall,
		ProjectPath: projectPath,
		Manager:     "cocoapods",
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	testApp, _ := app.SetupAppTest(t, config, pods, carthage)
	require.NoError(t, testApp.Run(context.Background()))

	assert.Len(t, pods.Calls(), 1)
	assert.Empty(t, carthage.Calls(), "the narrowed method must not dispatch other managers")
}

func TestAppRun_InstallUpdateForwarded(t *testing.T) {
	t.Parallel()

	projectPath, productPath := setupProject(t, `
dependency "Alamofire" {
  manager     = "cocoapods"
  source      = "Alamofire"
  requirement = "~> 5.6"
}
`)

	pods := &testutil.FakeBackendModule{
		Manager:   manifest.ManagerCocoaPods,
		Artifacts: []artifact.Artifact{{Name: "Alamofire", Platform: "ios", Path: productPath}},
	}
	config, err := app.NewConfig(app.Config{
		Command:     app.CommandInstall,
		ProjectPath: projectPath,
		Update:      true,
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	testApp, _ := app.SetupAppTest(t, config, pods)
	require.NoError(t, testApp.Run(context.Background()))

	calls := pods.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Options.Update)
}

func TestAppRun_InstallMissingBackend(t *testing.T) {
	t.Parallel()

	projectPath, _ := setupProject(t, `
dependency "RxSwift" {
  manager     = "carthage"
  source      = "ReactiveX/RxSwift"
  requirement = "~> 6.5"
}
`)

	// Only the cocoapods backend is compiled in for this run.
	pods := &testutil.FakeBackendModule{Manager: manifest.ManagerCocoaPods}
	config, err := app.NewConfig(app.Config{
		Command:     app.CommandInstall,
		ProjectPath: projectPath,
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	testApp, _ := app.SetupAppTest(t, config, pods)
	runErr := testApp.Run(context.Background())

	require.ErrorIs(t, runErr, installer.ErrUnimplemented)
	assert.Empty(t, pods.Calls())
}

func TestAppRun_InstallBackendFailure(t *testing.T) {
	t.Parallel()

	projectPath, _ := setupProject(t, `
dependency "Alamofire" {
  manager     = "cocoapods"
  source      = "Alamofire"
  requirement = "~> 5.6"
}
`)

	backendErr := errors.New("pod install failed")
	pods := &testutil.FakeBackendModule{Manager: manifest.ManagerCocoaPods, Err: backendErr}
	config, err := app.NewConfig(app.Config{
		Command:     app.CommandInstall,
		ProjectPath: projectPath,
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	testApp, _ := app.SetupAppTest(t, config, pods)
	runErr := testApp.Run(context.Background())

	require.ErrorIs(t, runErr, backendErr)

	var backendFailure *installer.BackendError
	require.ErrorAs(t, runErr, &backendFailure)
	assert.Equal(t, manifest.ManagerCocoaPods, backendFailure.Manager)
}

func TestAppRun_TestWithoutWorkspace(t *testing.T) {
	t.Parallel()

	config, err := app.NewConfig(app.Config{
		Command:     app.CommandTest,
		ProjectPath: t.TempDir(),
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	pods := &testutil.FakeBackendModule{Manager: manifest.ManagerCocoaPods}
	testApp, _ := app.SetupAppTest(t, config, pods)
	runErr := testApp.Run(context.Background())

	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "test run failed")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires a project path", func(t *testing.T) {
		t.Parallel()
		_, err := app.NewConfig(app.Config{Command: app.CommandInstall})
		require.ErrorContains(t, err, "ProjectPath")
	})

	t.Run("rejects unknown commands", func(t *testing.T) {
		t.Parallel()
		_, err := app.NewConfig(app.Config{Command: "deploy", ProjectPath: "."})
		require.ErrorContains(t, err, "unknown command")
	})

	t.Run("rejects unknown managers", func(t *testing.T) {
		t.Parallel()
		_, err := app.NewConfig(app.Config{Command: app.CommandInstall, ProjectPath: ".", Manager: "npm"})
		require.ErrorContains(t, err, "unknown manager")
	})
}
