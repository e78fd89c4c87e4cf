// Package testutil provides shared fakes and helpers for the test suites.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/lm2s/tuist/internal/system"
)

// Invocation records one command the fake runner received.
type Invocation struct {
	Name string
	Args []string
	Dir  string
}

// CommandLine renders the invocation for matching in assertions.
func (i Invocation) CommandLine() string {
	return strings.Join(append([]string{i.Name}, i.Args...), " ")
}

// FakeRunner is a scripted system.Runner. Each invocation is recorded and
// answered by the configured hook, so backend and client tests never spawn
// processes.
type FakeRunner struct {
	mu          sync.Mutex
	invocations []Invocation

	// OnRun answers Run calls. Nil means succeed with empty output.
	OnRun func(cmd system.Command) (system.Result, error)
	// OnStream answers Stream calls with the lines to emit and the exit
	// error. Nil means succeed with no output.
	OnStream func(cmd system.Command) ([]string, error)
}

// Run implements system.Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd system.Command) (system.Result, error) {
	f.record(cmd)
	if err := ctx.Err(); err != nil {
		return system.Result{}, err
	}
	if f.OnRun == nil {
		return system.Result{}, nil
	}
	return f.OnRun(cmd)
}

// Stream implements system.Runner.
func (f *FakeRunner) Stream(ctx context.Context, cmd system.Command) (<-chan string, func() error, error) {
	f.record(cmd)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var scripted []string
	var exitErr error
	if f.OnStream != nil {
		scripted, exitErr = f.OnStream(cmd)
	}

	lines := make(chan string, len(scripted))
	for _, line := range scripted {
		lines <- line
	}
	close(lines)

	return lines, func() error { return exitErr }, nil
}

// Invocations returns a copy of everything the runner was asked to execute,
// in order.
func (f *FakeRunner) Invocations() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Invocation, len(f.invocations))
	copy(out, f.invocations)
	return out
}

// LastInvocation returns the most recent invocation, failing loudly when
// none happened.
func (f *FakeRunner) LastInvocation() Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.invocations) == 0 {
		panic("FakeRunner has no invocations")
	}
	return f.invocations[len(f.invocations)-1]
}

func (f *FakeRunner) record(cmd system.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invocations = append(f.invocations, Invocation{Name: cmd.Name, Args: cmd.Args, Dir: cmd.Dir})
}
