// Package runner drives per-scheme test invocations against the build tool.
//
// A run is strictly sequential: the clean tracker and the build tool's
// working directory are shared mutable resources, so schemes are processed
// one at a time and each invocation's output stream is drained to its
// terminal event before the next begins.
package runner

import (
	"context"
	"errors"

	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/generator"
	"github.com/lm2s/tuist/internal/graph"
	"github.com/lm2s/tuist/internal/simulator"
	"github.com/lm2s/tuist/internal/xcodebuild"
)

// Options describes one test run.
type Options struct {
	// Path is the project directory.
	Path string
	// Scheme, when non-empty, selects exactly one testable scheme by name.
	// Empty selects all testable schemes in discovery order.
	Scheme string
	// Generate asks the generator to materialize project files before the
	// graph is loaded.
	Generate bool
	// Configuration optionally narrows resolved build arguments.
	Configuration string
}

// TestRunner selects schemes from a loaded project graph and tests each one.
// All collaborators are injected; the runner holds no cross-run state.
type TestRunner struct {
	generator generator.Generator
	loader    graph.Loader
	inspector graph.Inspector
	locator   simulator.Locator
	client    xcodebuild.Client
}

// New constructs a TestRunner from its collaborators. The generator may be
// nil when project generation is unavailable; runs requesting it then fail.
func New(
	gen generator.Generator,
	loader graph.Loader,
	inspector graph.Inspector,
	locator simulator.Locator,
	client xcodebuild.Client,
) *TestRunner {
	return &TestRunner{
		generator: gen,
		loader:    loader,
		inspector: inspector,
		locator:   locator,
		client:    client,
	}
}

// Run executes the test flow: optional generation, graph load, scheme
// selection, then one build-tool invocation per scheme in order. The first
// invocation of a run is the only one that requests a clean build; a failure
// anywhere aborts the remaining schemes.
func (r *TestRunner) Run(ctx context.Context, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Test run started.", "path", opts.Path, "scheme", opts.Scheme, "generate", opts.Generate)

	if opts.Generate {
		if r.generator == nil {
			return errors.New("project generation requested but no generator is configured")
		}
		logger.Info("⚙️ Generating project.", "path", opts.Path)
		if err := r.generator.Generate(ctx, opts.Path); err != nil {
			return err
		}
	}

	g, err := r.loader.Load(ctx, opts.Path)
	if err != nil {
		return err
	}

	schemes, err := r.selectSchemes(ctx, g, opts.Scheme)
	if err != nil {
		return err
	}

	// The clean tracker belongs to this run alone: true for the first
	// invocation, false for every one after it.
	clean := true
	for _, scheme := range schemes {
		if err := r.testScheme(ctx, g, scheme, opts.Configuration, clean); err != nil {
			return err
		}
		clean = false
	}

	logger.Info("🏁 Test run finished.", "schemes", len(schemes))
	return nil
}

// selectSchemes resolves the scheme list for a run. Discovery is logged
// before any failure so the operator sees what was found.
func (r *TestRunner) selectSchemes(ctx context.Context, g *graph.Graph, name string) ([]*graph.Scheme, error) {
	logger := ctxlog.FromContext(ctx)

	testable := r.inspector.TestableSchemes(g)
	names := make([]string, 0, len(testable))
	for _, scheme := range testable {
		names = append(names, scheme.Name)
	}
	logger.Info("Found the following testable schemes:", "schemes", names)

	if name != "" {
		for _, scheme := range testable {
			if scheme.Name == name {
				return []*graph.Scheme{scheme}, nil
			}
		}
		return nil, &SchemeNotFoundError{Scheme: name, Available: names}
	}

	if len(testable) == 0 {
		return nil, ErrNoTestableSchemes
	}
	return testable, nil
}

// testScheme resolves one scheme's invocation inputs and drives the build
// tool, draining the output stream to its terminal event.
func (r *TestRunner) testScheme(ctx context.Context, g *graph.Graph, scheme *graph.Scheme, configuration string, clean bool) error {
	logger := ctxlog.FromContext(ctx).With("scheme", scheme.Name)
	logger.Info("▶️ Testing scheme.", "clean", clean)

	target, err := r.inspector.TestableTarget(scheme, g)
	if err != nil {
		return err
	}
	workspacePath, err := r.inspector.WorkspacePath(g)
	if err != nil {
		return err
	}
	args, err := r.inspector.BuildArguments(g, target, configuration)
	if err != nil {
		return err
	}

	var destination *simulator.Device
	if target.Simulated {
		// The one blocking step of the flow: wait for a device.
		device, err := r.locator.FindAvailable(ctx, simulator.Query{Platform: target.Platform})
		if err != nil {
			return err
		}
		destination = &device
	}

	events := r.client.Test(ctx, xcodebuild.TestParams{
		WorkspacePath: workspacePath,
		Scheme:        scheme.Name,
		Clean:         clean,
		Destination:   destination,
		Arguments:     args,
	})

	for event := range events {
		if event.Terminal {
			if event.Err != nil {
				return &InvocationError{Scheme: scheme.Name, Err: event.Err}
			}
			break
		}
		logger.Debug(event.Line)
	}

	logger.Info("✅ Scheme tested.")
	return nil
}
