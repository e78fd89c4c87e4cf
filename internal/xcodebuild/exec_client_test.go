package xcodebuild_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lm2s/tuist/internal/simulator"
	"github.com/lm2s/tuist/internal/system"
	"github.com/lm2s/tuist/internal/testutil"
	"github.com/lm2s/tuist/internal/xcodebuild"
)

// drain consumes an event stream and returns the output lines and the
// terminal event.
func drain(t *testing.T, events <-chan xcodebuild.Event) ([]string, xcodebuild.Event) {
	t.Helper()

	var lines []string
	for event := range events {
		if event.Terminal {
			return lines, event
		}
		lines = append(lines, event.Line)
	}
	t.Fatal("event stream closed without a terminal event")
	return nil, xcodebuild.Event{}
}

func TestExecClient_BuildsInvocation(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeRunner{}
	client := xcodebuild.NewClient(fake)

	device := &simulator.Device{Name: "iPhone 15", UDID: "ABC-123", Platform: "ios"}
	events := client.Test(context.Background(), xcodebuild.TestParams{
		WorkspacePath: "/P/App.xcworkspace",
		Scheme:        "A",
		Clean:         true,
		Destination:   device,
		Arguments:     []xcodebuild.Argument{xcodebuild.SDK("iphoneos")},
	})
	_, terminal := drain(t, events)
	require.NoError(t, terminal.Err)

	invocation := fake.LastInvocation()
	require.Equal(t, "xcodebuild", invocation.Name)

	want := []string{
		"clean", "test",
		"-workspace", "/P/App.xcworkspace",
		"-scheme", "A",
		"-destination", "id=ABC-123",
		"-sdk", "iphoneos",
	}
	if diff := cmp.Diff(want, invocation.Args); diff != "" {
		t.Fatalf("unexpected invocation arguments (-want +got):\n%s", diff)
	}
}

func TestExecClient_NoCleanNoDestination(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeRunner{}
	client := xcodebuild.NewClient(fake)

	events := client.Test(context.Background(), xcodebuild.TestParams{
		WorkspacePath: "/P/App.xcworkspace",
		Scheme:        "B",
	})
	_, terminal := drain(t, events)
	require.NoError(t, terminal.Err)

	args := fake.LastInvocation().Args
	require.Equal(t, "test", args[0], "clean must not be requested")
	require.NotContains(t, args, "-destination")
}

func TestExecClient_StreamsLinesBeforeCompletion(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeRunner{
		OnStream: func(cmd system.Command) ([]string, error) {
			return []string{"Building...", "Testing...", "** TEST SUCCEEDED **"}, nil
		},
	}
	client := xcodebuild.NewClient(fake)

	events := client.Test(context.Background(), xcodebuild.TestParams{
		WorkspacePath: "/P/App.xcworkspace",
		Scheme:        "A",
	})
	lines, terminal := drain(t, events)
	require.Equal(t, []string{"Building...", "Testing...", "** TEST SUCCEEDED **"}, lines)
	require.NoError(t, terminal.Err)
}

func TestExecClient_FailureSignalsInTerminalEvent(t *testing.T) {
	t.Parallel()

	toolErr := errors.New("xcodebuild exited with status 65")
	fake := &testutil.FakeRunner{
		OnStream: func(cmd system.Command) ([]string, error) {
			return []string{"** TEST FAILED **"}, toolErr
		},
	}
	client := xcodebuild.NewClient(fake)

	events := client.Test(context.Background(), xcodebuild.TestParams{
		WorkspacePath: "/P/App.xcworkspace",
		Scheme:        "A",
	})
	lines, terminal := drain(t, events)
	require.Equal(t, []string{"** TEST FAILED **"}, lines)
	require.ErrorIs(t, terminal.Err, toolErr)
}

func TestExecClient_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &testutil.FakeRunner{}
	client := xcodebuild.NewClient(fake)

	events := client.Test(ctx, xcodebuild.TestParams{
		WorkspacePath: "/P/App.xcworkspace",
		Scheme:        "A",
	})
	_, terminal := drain(t, events)
	require.ErrorIs(t, terminal.Err, context.Canceled)
}
