package xcodebuild

import (
	"context"
	"fmt"

	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/system"
)

const toolName = "xcodebuild"

// ExecClient shells out to the real build tool through a system.Runner.
type ExecClient struct {
	runner system.Runner
}

// NewClient returns a Client backed by the given process runner.
func NewClient(runner system.Runner) *ExecClient {
	return &ExecClient{runner: runner}
}

// Test implements Client.
func (c *ExecClient) Test(ctx context.Context, params TestParams) <-chan Event {
	events := make(chan Event, 1)

	go func() {
		defer close(events)
		logger := ctxlog.FromContext(ctx).With("scheme", params.Scheme)

		args := testArguments(params)
		logger.Debug("Invoking build tool.", "tool", toolName, "args", args)

		lines, wait, err := c.runner.Stream(ctx, system.Command{Name: toolName, Args: args})
		if err != nil {
			events <- CompletionEvent(fmt.Errorf("failed to launch %s: %w", toolName, err))
			return
		}
		for line := range lines {
			events <- LineEvent(line)
		}
		events <- CompletionEvent(wait())
	}()

	return events
}

// testArguments renders the full argument list for a test invocation.
func testArguments(params TestParams) []string {
	var args []string
	if params.Clean {
		args = append(args, "clean")
	}
	args = append(args, "test")
	args = append(args, "-workspace", params.WorkspacePath)
	args = append(args, "-scheme", params.Scheme)
	if params.Destination != nil {
		args = append(args, "-destination", fmt.Sprintf("id=%s", params.Destination.UDID))
	}
	args = append(args, RenderAll(params.Arguments)...)
	return args
}
