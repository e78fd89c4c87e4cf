// Package system abstracts process execution so that every shell-out in the
// application goes through a single, swappable seam. Backends and the build
// tool client depend on the Runner interface, never on os/exec directly,
// which keeps them testable without spawning processes.
package system

import (
	"context"
)

// Command describes a single external process invocation.
type Command struct {
	// Name is the executable to run, resolved via PATH when not absolute.
	Name string
	// Args are the arguments passed to the executable, excluding Name.
	Args []string
	// Dir is the working directory for the process. Empty means inherit.
	Dir string
	// Env lists extra environment entries in KEY=VALUE form, appended to the
	// parent environment.
	Env []string
}

// Result captures the outcome of a completed, non-streaming invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// Run executes the command to completion and returns its captured output.
	// A non-zero exit status is reported as an error; Result is still
	// populated with whatever output was produced.
	Run(ctx context.Context, cmd Command) (Result, error)

	// Stream starts the command and returns a channel of combined
	// stdout/stderr lines plus a wait function. The channel is closed when
	// the process exits; wait reports the process exit error and must be
	// called exactly once, after the channel is drained.
	Stream(ctx context.Context, cmd Command) (<-chan string, func() error, error)
}
