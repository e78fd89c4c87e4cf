package xcodebuild

import (
	"context"

	"github.com/lm2s/tuist/internal/simulator"
)

// Event is one element of an invocation's output stream: either a line of
// tool output or the terminal completion signal. Exactly one Completion is
// delivered, last, and the channel is closed after it.
type Event struct {
	// Line is a single line of tool output. Empty for the completion event.
	Line string
	// Terminal marks the completion event.
	Terminal bool
	// Err is the invocation's failure, nil on success. Only meaningful on
	// the completion event.
	Err error
}

// LineEvent builds an output-line event.
func LineEvent(line string) Event {
	return Event{Line: line}
}

// CompletionEvent builds the terminal event.
func CompletionEvent(err error) Event {
	return Event{Terminal: true, Err: err}
}

// TestParams describes one test invocation.
type TestParams struct {
	// WorkspacePath is the workspace bundle the tool is pointed at.
	WorkspacePath string
	// Scheme is the scheme to test.
	Scheme string
	// Clean requests that prior intermediate artifacts be discarded before
	// compiling.
	Clean bool
	// Destination is the resolved simulator device, nil when the target
	// runs on a physical-device SDK.
	Destination *simulator.Device
	// Arguments is the ordered build-argument list.
	Arguments []Argument
}

// Client drives the external build/test tool. Invocations are long-running;
// callers must drain the returned channel to the completion event before
// starting another invocation against the same workspace.
type Client interface {
	Test(ctx context.Context, params TestParams) <-chan Event
}
