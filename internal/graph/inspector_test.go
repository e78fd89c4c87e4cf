package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lm2s/tuist/internal/xcodebuild"
)

func fixtureGraph() *Graph {
	return &Graph{
		Name:          "App",
		Path:          "/P",
		WorkspacePath: "/P/App.xcworkspace",
		Projects: []*Project{
			{
				Name: "App",
				Schemes: []*Scheme{
					{Name: "A", BuildTargets: []string{"App"}, TestTargets: []string{"AppTests"}},
					{Name: "B", BuildTargets: []string{"Kit"}, TestTargets: []string{"KitTests"}},
					{Name: "Docs", BuildTargets: []string{"Docs"}},
				},
				Targets: []*Target{
					{Name: "App", Platform: "ios", SDK: "iphoneos"},
					{Name: "AppTests", Platform: "ios", SDK: "iphonesimulator", Simulated: true},
					{Name: "Kit", Platform: "ios", SDK: "iphoneos"},
					{Name: "KitTests", Platform: "ios", SDK: "iphonesimulator", Simulated: true},
					{Name: "Docs", Platform: "macos", SDK: "macosx"},
				},
			},
		},
	}
}

func TestInspector_SchemeSelection(t *testing.T) {
	t.Parallel()

	inspector := NewInspector()
	g := fixtureGraph()

	testable := inspector.TestableSchemes(g)
	require.Len(t, testable, 2)
	require.Equal(t, "A", testable[0].Name, "scheme order is declaration order")
	require.Equal(t, "B", testable[1].Name)

	buildable := inspector.BuildableSchemes(g)
	require.Len(t, buildable, 3)
}

func TestInspector_TargetResolution(t *testing.T) {
	t.Parallel()

	inspector := NewInspector()
	g := fixtureGraph()

	target, err := inspector.TestableTarget(g.Projects[0].Schemes[0], g)
	require.NoError(t, err)
	require.Equal(t, "AppTests", target.Name)
	require.True(t, target.Simulated)

	buildTarget, err := inspector.BuildableTarget(g.Projects[0].Schemes[0], g)
	require.NoError(t, err)
	require.Equal(t, "App", buildTarget.Name)

	_, err = inspector.TestableTarget(g.Projects[0].Schemes[2], g)
	require.Error(t, err, "a scheme without test targets has no testable target")
}

func TestInspector_WorkspacePath(t *testing.T) {
	t.Parallel()

	inspector := NewInspector()
	g := fixtureGraph()

	path, err := inspector.WorkspacePath(g)
	require.NoError(t, err)
	require.Equal(t, "/P/App.xcworkspace", path)

	_, err = inspector.WorkspacePath(&Graph{Name: "empty"})
	require.Error(t, err)
}

func TestInspector_BuildArgumentsOrder(t *testing.T) {
	t.Parallel()

	inspector := NewInspector()
	g := fixtureGraph()
	target := &Target{
		Name:     "App",
		Platform: "ios",
		SDK:      "iphoneos",
		Settings: map[string]string{
			"SWIFT_VERSION":   "5.7",
			"CODE_SIGNING":    "NO",
			"BUILD_LIBRARIES": "YES",
		},
	}

	args, err := inspector.BuildArguments(g, target, "Debug")
	require.NoError(t, err)

	rendered := xcodebuild.RenderAll(args)
	require.Equal(t, []string{
		"-sdk", "iphoneos",
		"-configuration", "Debug",
		"BUILD_LIBRARIES=YES",
		"CODE_SIGNING=NO",
		"SWIFT_VERSION=5.7",
	}, rendered, "arguments are SDK, configuration, then settings sorted by key")

	// Without a configuration filter the configuration argument is omitted.
	args, err = inspector.BuildArguments(g, &Target{Name: "App", SDK: "iphoneos"}, "")
	require.NoError(t, err)
	require.Equal(t, []string{"-sdk", "iphoneos"}, xcodebuild.RenderAll(args))
}
